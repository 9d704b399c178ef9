package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

const (
	discordAvatarURL        = "https://cdn.discordapp.com/avatars/%s/%s.png"
	discordDefaultAvatarURL = "https://cdn.discordapp.com/embed/avatars/%d.png"
)

// DiscordUser mirrors the identity provider's user object as kept in the session.
type DiscordUser struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Avatar        string `json:"avatar"`
	GlobalName    string `json:"global_name,omitempty"`
}

// AvatarURL builds the CDN URL for the user's avatar. Users without a custom
// avatar get one of Discord's embed defaults.
func (u DiscordUser) AvatarURL() string {
	if u.Avatar != "" {
		return fmt.Sprintf(discordAvatarURL, u.ID, u.Avatar)
	}
	return fmt.Sprintf(discordDefaultAvatarURL, u.defaultAvatarIndex())
}

func (u DiscordUser) defaultAvatarIndex() int {
	if u.Discriminator != "" && u.Discriminator != "0" {
		if d, err := strconv.Atoi(u.Discriminator); err == nil {
			return d % 5
		}
	}
	// Users on the unique-username system
	id, err := strconv.ParseUint(u.ID, 10, 64)
	if err != nil {
		return 0
	}
	return int((id >> 22) % 6)
}

// Tag renders username#discriminator the way the dashboard shows it.
func (u DiscordUser) Tag() string {
	return u.Username + "#" + u.Discriminator
}

// Encode serializes the user for session storage.
func (u DiscordUser) Encode() (string, error) {
	b, err := json.Marshal(u)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeDiscordUser is the inverse of Encode.
func DecodeDiscordUser(raw string) (*DiscordUser, error) {
	var u DiscordUser
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, err
	}
	if u.ID == "" {
		return nil, fmt.Errorf("stored discord user has no id")
	}
	return &u, nil
}
