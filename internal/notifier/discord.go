package notifier

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/jadralna-sola/sailing-school-web/internal/catalog"
	"github.com/jadralna-sola/sailing-school-web/internal/config"
	"github.com/jadralna-sola/sailing-school-web/internal/models"
	"github.com/rs/zerolog"
)

// Notifier is told about every stored signup. Failures are logged by the
// caller and never fail the signup itself.
type Notifier interface {
	NotifySignup(ctx context.Context, signup models.Signup) error
}

type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
	log       zerolog.Logger
}

func NewDiscordNotifier(cfg *config.Config, log zerolog.Logger) (*DiscordNotifier, error) {
	if cfg.DiscordBotToken == "" {
		return nil, fmt.Errorf("discord bot token is empty")
	}
	if cfg.DiscordNotificationsChannelID == "" {
		return nil, fmt.Errorf("discord channel ID is empty")
	}

	session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	return &DiscordNotifier{
		session:   session,
		channelID: cfg.DiscordNotificationsChannelID,
		log:       log,
	}, nil
}

func (n *DiscordNotifier) NotifySignup(ctx context.Context, signup models.Signup) error {
	notesStr := ""
	if signup.Notes != "" {
		notesStr = fmt.Sprintf("\n**Opombe:** %s", signup.Notes)
	}

	message := fmt.Sprintf("⛵ **Nova prijava**\n**Tečaj:** %s\n**Ime:** %s\n**E-pošta:** %s\n**Telefon:** %s\n**Število oseb:** %d%s",
		catalog.CourseName(signup.Course),
		signup.FullName,
		signup.Email,
		signup.Phone,
		signup.Participants,
		notesStr,
	)

	_, err := n.session.ChannelMessageSend(n.channelID, message, discordgo.WithContext(ctx))
	if err != nil {
		n.log.Error().Err(err).Msg("failed to send discord message")
		return err
	}

	return nil
}
