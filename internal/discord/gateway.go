package discord

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/ashureev/ledgerbot/internal/bot"
	"github.com/ashureev/ledgerbot/internal/domain"
)

// interactionTimeout bounds the work done for one interaction. Discord keeps
// interaction tokens valid for 15 minutes.
const interactionTimeout = 30 * time.Second

// Handler reacts to platform events. *bot.Controller implements it.
type Handler interface {
	Start(ctx context.Context, r bot.Responder, activity domain.Activity)
	Activate(ctx context.Context, r bot.Responder, messageID, controlID string)
	Submit(ctx context.Context, r bot.Responder, rawTag, value string)
}

// Gateway owns the Discord connection.
type Gateway struct {
	session *discordgo.Session
	guildID string
	handler Handler
	logger  *slog.Logger
}

// NewGateway creates a gateway for the bot token. Commands are registered in
// guildID once the connection is ready.
func NewGateway(token, guildID string, handler Handler, logger *slog.Logger) (*Gateway, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds

	g := &Gateway{session: s, guildID: guildID, handler: handler, logger: logger}
	s.AddHandler(g.onReady)
	s.AddHandler(g.onInteraction)
	return g, nil
}

// Run opens the connection and blocks until ctx is done.
func (g *Gateway) Run(ctx context.Context) error {
	if err := g.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	<-ctx.Done()
	g.logger.Info("Closing Discord session")
	if err := g.session.Close(); err != nil {
		return fmt.Errorf("close discord session: %w", err)
	}
	return nil
}

func (g *Gateway) onReady(s *discordgo.Session, r *discordgo.Ready) {
	g.logger.Info("Logged in", "user", r.User.String())
	if _, err := s.ApplicationCommandBulkOverwrite(r.User.ID, g.guildID, Commands()); err != nil {
		g.logger.Error("Failed to register commands", "guild_id", g.guildID, "error", err)
		return
	}
	g.logger.Info("Commands registered", "guild_id", g.guildID, "count", len(domain.Activities))
}

func (g *Gateway) onInteraction(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()
	dispatch(ctx, g.handler, newResponder(s, ic.Interaction), ic.Interaction)
}

// dispatch routes one interaction to the handler by type. Anything else is
// ignored.
func dispatch(ctx context.Context, h Handler, r bot.Responder, i *discordgo.Interaction) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		activity, ok := domain.ParseCommand(i.ApplicationCommandData().Name)
		if !ok {
			return
		}
		h.Start(ctx, r, activity)
	case discordgo.InteractionMessageComponent:
		if i.Message == nil {
			return
		}
		h.Activate(ctx, r, i.Message.ID, i.MessageComponentData().CustomID)
	case discordgo.InteractionModalSubmit:
		data := i.ModalSubmitData()
		h.Submit(ctx, r, data.CustomID, TextValue(data.Components, ValueInputID))
	}
}
