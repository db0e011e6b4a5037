package messenger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"runeshot/internal/logging"
)

// Discord posts to text channels of a single guild.
type Discord struct {
	session *discordgo.Session
	guildID string
	logger  *slog.Logger
}

// NewDiscord builds a REST-only Discord client for the guild.
func NewDiscord(token, guildID string, timeout time.Duration, logger *slog.Logger) (*Discord, error) {
	token = strings.TrimSpace(token)
	guildID = strings.TrimSpace(guildID)
	if token == "" {
		return nil, errors.New("discord token is required")
	}
	if guildID == "" {
		return nil, errors.New("discord guild id is required")
	}
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	if timeout > 0 {
		session.Client.Timeout = timeout
	}
	session.ShouldRetryOnRateLimit = true
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Discord{
		session: session,
		guildID: guildID,
		logger:  logging.NewComponentLogger(logger, "discord"),
	}, nil
}

// FindChannel returns the first text channel in the guild named name.
func (d *Discord) FindChannel(ctx context.Context, name string) (Channel, bool, error) {
	channels, err := d.session.GuildChannels(d.guildID, discordgo.WithContext(ctx))
	if err != nil {
		return Channel{}, false, fmt.Errorf("list guild channels: %w", err)
	}
	for _, ch := range channels {
		if ch == nil || ch.Type != discordgo.ChannelTypeGuildText {
			continue
		}
		if ch.Name == name {
			return Channel{ID: ch.ID, Name: ch.Name}, true, nil
		}
	}
	return Channel{}, false, nil
}

// CreateChannel creates a text channel in the guild.
func (d *Discord) CreateChannel(ctx context.Context, name string) (Channel, error) {
	ch, err := d.session.GuildChannelCreate(d.guildID, name, discordgo.ChannelTypeGuildText, discordgo.WithContext(ctx))
	if err != nil {
		return Channel{}, fmt.Errorf("create channel %s: %w", name, err)
	}
	d.logger.Info("created discord channel",
		logging.String(logging.FieldEventType, "channel_created"),
		logging.String(logging.FieldDestination, name),
		logging.String("channel_id", ch.ID),
	)
	return Channel{ID: ch.ID, Name: ch.Name}, nil
}

// Send uploads the attachment with the caption as message content.
func (d *Discord) Send(ctx context.Context, channelID string, msg Message) error {
	file, err := os.Open(msg.Attachment.Path)
	if err != nil {
		return fmt.Errorf("open attachment: %w", err)
	}
	defer file.Close()

	name := msg.Attachment.Name
	if name == "" {
		name = filepath.Base(msg.Attachment.Path)
	}
	send := &discordgo.MessageSend{
		Content: msg.Caption,
		Files: []*discordgo.File{{
			Name:        name,
			ContentType: contentType(name),
			Reader:      file,
		}},
	}
	if _, err := d.session.ChannelMessageSendComplex(channelID, send, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send message to %s: %w", channelID, err)
	}
	return nil
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
