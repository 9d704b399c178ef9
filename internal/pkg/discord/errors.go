package discord

import (
	"errors"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

var (
	ErrGuildNotFound   = errors.New("guild not found")
	ErrMemberNotFound  = errors.New("member not found")
	ErrChannelNotFound = errors.New("channel not found")
)

// IsUnknownResource reports whether Discord answered a lookup with 404 or one
// of its "unknown ..." JSON error codes.
func IsUnknownResource(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound {
		return true
	}
	if restErr.Message == nil {
		return false
	}
	switch restErr.Message.Code {
	case discordgo.ErrCodeUnknownGuild, discordgo.ErrCodeUnknownMember, discordgo.ErrCodeUnknownChannel, discordgo.ErrCodeUnknownUser:
		return true
	default:
		return false
	}
}
