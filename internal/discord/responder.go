package discord

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/ashureev/ledgerbot/internal/tracker"
)

// restAPI is the part of *discordgo.Session a responder needs.
type restAPI interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponse(interaction *discordgo.Interaction, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEdit(channelID, messageID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// responder answers one interaction. An interaction accepts exactly one
// initial response; notices after that go out as ephemeral follow-ups.
type responder struct {
	api         restAPI
	interaction *discordgo.Interaction

	mu        sync.Mutex
	responded bool
}

func newResponder(api restAPI, interaction *discordgo.Interaction) *responder {
	return &responder{api: api, interaction: interaction}
}

func (r *responder) respond(ctx context.Context, resp *discordgo.InteractionResponse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.responded {
		return errors.New("interaction already answered")
	}
	if err := r.api.InteractionRespond(r.interaction, resp, discordgo.WithContext(ctx)); err != nil {
		return err
	}
	r.responded = true
	return nil
}

func (r *responder) Display(ctx context.Context, text string, groups []tracker.ControlGroup) (string, error) {
	err := r.respond(ctx, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    text,
			Components: Rows(groups),
		},
	})
	if err != nil {
		return "", fmt.Errorf("reply with session: %w", err)
	}

	msg, err := r.api.InteractionResponse(r.interaction, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("fetch reply: %w", err)
	}
	return msg.ID, nil
}

func (r *responder) UpdateDisplay(ctx context.Context, messageID, text string) error {
	if _, err := r.api.ChannelMessageEdit(r.interaction.ChannelID, messageID, text, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("edit message %s: %w", messageID, err)
	}
	return nil
}

func (r *responder) DisableControls(ctx context.Context, messageID string, groups []tracker.ControlGroup) error {
	if r.interaction.Message == nil || r.interaction.Message.ID != messageID {
		return fmt.Errorf("disable controls: interaction is not attached to message %s", messageID)
	}
	err := r.respond(ctx, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{Components: Rows(groups)},
	})
	if err != nil {
		return fmt.Errorf("update message components: %w", err)
	}
	return nil
}

func (r *responder) OpenForm(ctx context.Context, form tracker.Form) error {
	err := r.respond(ctx, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: Modal(form),
	})
	if err != nil {
		return fmt.Errorf("show modal: %w", err)
	}
	return nil
}

func (r *responder) Acknowledge(ctx context.Context, text string) error {
	if !r.Responded() {
		err := r.respond(ctx, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: text,
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
		if err != nil {
			return fmt.Errorf("send ephemeral reply: %w", err)
		}
		return nil
	}

	_, err := r.api.FollowupMessageCreate(r.interaction, true, &discordgo.WebhookParams{
		Content: text,
		Flags:   discordgo.MessageFlagsEphemeral,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("send ephemeral follow-up: %w", err)
	}
	return nil
}

func (r *responder) Responded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.responded
}
