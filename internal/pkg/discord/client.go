package discord

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"
	"github.com/gofiber/fiber/v2/log"

	"github.com/corestudios/rolebridge/app/models"
	"github.com/corestudios/rolebridge/internal/pkg/config"
)

// Intents requested by the bot: guild metadata and guild members.
const Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

// restSession is the subset of *discordgo.Session used for REST calls.
type restSession interface {
	Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error)
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Client is the process-wide bot connection.
type Client struct {
	session *discordgo.Session
	rest    restSession
	ready   atomic.Bool

	connectedLog sync.Once
}

// New creates a bot client for the configured token. Call Open to connect.
func New(cfg config.DiscordConfig) (*Client, error) {
	s, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = Intents

	c := &Client{session: s, rest: s}
	s.AddHandler(c.onReady)
	s.AddHandler(c.onDisconnect)
	s.AddHandler(c.onResumed)
	return c, nil
}

// Open connects to the gateway.
func (c *Client) Open() error {
	if err := c.session.Open(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}
	return nil
}

// Close disconnects from the gateway.
func (c *Client) Close() error {
	c.ready.Store(false)
	return c.session.Close()
}

// Ready reports whether the gateway connection is established.
func (c *Client) Ready() bool {
	return c.ready.Load()
}

// EnsureMember fetches the guild and then the member within it.
func (c *Client) EnsureMember(ctx context.Context, guildID, userID string) error {
	if _, err := c.rest.Guild(guildID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrGuildNotFound, guildID, err)
	}
	if _, err := c.rest.GuildMember(guildID, userID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("%w: %s in guild %s: %w", ErrMemberNotFound, userID, guildID, err)
	}
	return nil
}

// AddMemberRole adds a role to a member. Adding a role the member already
// holds succeeds.
func (c *Client) AddMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	return c.rest.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx))
}

// SendPaymentLog fetches the log channel and posts the payment embed.
func (c *Client) SendPaymentLog(ctx context.Context, channelID string, entry models.PaymentLog) error {
	ch, err := c.rest.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrChannelNotFound, channelID, err)
	}
	if _, err := c.rest.ChannelMessageSendEmbed(ch.ID, PaymentEmbed(entry), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send payment log to %s: %w", ch.ID, err)
	}
	return nil
}

// onReady runs on every identify, including the re-identify that follows a
// failed resume.
func (c *Client) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	c.ready.Store(true)
	c.connectedLog.Do(func() {
		log.Infof("[Discord] Bot conectado como %s", userTag(r.User))
	})
}

func (c *Client) onDisconnect(_ *discordgo.Session, _ *discordgo.Disconnect) {
	c.ready.Store(false)
	log.Warn("[Discord] Gateway disconnected, waiting for reconnect")
}

func (c *Client) onResumed(_ *discordgo.Session, _ *discordgo.Resumed) {
	c.ready.Store(true)
	log.Info("[Discord] Gateway session resumed")
}

func userTag(u *discordgo.User) string {
	if u == nil {
		return "unknown"
	}
	if u.Discriminator == "" || u.Discriminator == "0" {
		return u.Username
	}
	return u.Username + "#" + u.Discriminator
}
