package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscordUserAvatarURL(t *testing.T) {
	u := DiscordUser{ID: "80351110224678912", Avatar: "8342729096ea3675442027381ff50dfe"}
	assert.Equal(t, "https://cdn.discordapp.com/avatars/80351110224678912/8342729096ea3675442027381ff50dfe.png", u.AvatarURL())
}

func TestDiscordUserAvatarURL_Defaults(t *testing.T) {
	legacy := DiscordUser{ID: "80351110224678912", Discriminator: "1337"}
	assert.Equal(t, "https://cdn.discordapp.com/embed/avatars/2.png", legacy.AvatarURL())

	// (80351110224678912 >> 22) % 6 == 5
	unique := DiscordUser{ID: "80351110224678912", Discriminator: "0"}
	assert.Equal(t, "https://cdn.discordapp.com/embed/avatars/5.png", unique.AvatarURL())
}

func TestDiscordUserEncodeDecode(t *testing.T) {
	u := DiscordUser{ID: "42", Username: "Nelly", Discriminator: "1337", Avatar: "abc"}
	raw, err := u.Encode()
	require.NoError(t, err)

	got, err := DecodeDiscordUser(raw)
	require.NoError(t, err)
	assert.Equal(t, u, *got)
	assert.Equal(t, "Nelly#1337", got.Tag())
}

func TestDecodeDiscordUser_RejectsMissingID(t *testing.T) {
	_, err := DecodeDiscordUser(`{"username":"ghost"}`)
	assert.Error(t, err)

	_, err = DecodeDiscordUser(`not json`)
	assert.Error(t, err)
}
