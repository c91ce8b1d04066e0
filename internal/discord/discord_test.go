package discord

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashureev/ledgerbot/internal/bot"
	"github.com/ashureev/ledgerbot/internal/domain"
	"github.com/ashureev/ledgerbot/internal/tracker"
)

func TestCommands(t *testing.T) {
	cmds := Commands()
	require.Len(t, cmds, 3)
	assert.Equal(t, "diamonds", cmds[0].Name)
	assert.Equal(t, "Track diamonds", cmds[0].Description)
	assert.Equal(t, "trades", cmds[1].Name)
	assert.Equal(t, "levels", cmds[2].Name)
}

func TestRowsMapsControls(t *testing.T) {
	rows := Rows(tracker.Layout(domain.ActivityTrade))
	require.Len(t, rows, len(tracker.Layout(domain.ActivityTrade)))

	first, ok := rows[0].(discordgo.ActionsRow)
	require.True(t, ok)
	button, ok := first.Components[0].(discordgo.Button)
	require.True(t, ok)
	assert.Equal(t, "add_with", button.CustomID)
	assert.False(t, button.Disabled)

	disabled := Rows(tracker.Disable(tracker.Layout(domain.ActivityTrade)))
	for _, row := range disabled {
		for _, c := range row.(discordgo.ActionsRow).Components {
			assert.True(t, c.(discordgo.Button).Disabled)
		}
	}
}

func TestButtonStyle(t *testing.T) {
	assert.Equal(t, discordgo.PrimaryButton, buttonStyle(tracker.StylePrimary))
	assert.Equal(t, discordgo.SecondaryButton, buttonStyle(tracker.StyleSecondary))
	assert.Equal(t, discordgo.SuccessButton, buttonStyle(tracker.StyleSuccess))
	assert.Equal(t, discordgo.DangerButton, buttonStyle(tracker.StyleDanger))
	assert.Equal(t, discordgo.SecondaryButton, buttonStyle("unknown"))
}

func TestModal(t *testing.T) {
	form := tracker.FormFor(tracker.Route(domain.ActivityTrade, "set_profit_loss"), "m1")
	data := Modal(form)

	assert.Equal(t, "modal|set_profit_loss|m1", data.CustomID)
	assert.Equal(t, "Profit/Loss (e.g., +1251 or -1561)", data.Title)
	row := data.Components[0].(discordgo.ActionsRow)
	input := row.Components[0].(discordgo.TextInput)
	assert.Equal(t, ValueInputID, input.CustomID)
	assert.Equal(t, "Profit/Loss (+/-)", input.Label)
	assert.Equal(t, discordgo.TextInputShort, input.Style)
	assert.True(t, input.Required)
}

func TestTextValue(t *testing.T) {
	components := []discordgo.MessageComponent{
		&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			&discordgo.TextInput{CustomID: "other", Value: "nope"},
		}},
		&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			&discordgo.TextInput{CustomID: ValueInputID, Value: "1500"},
		}},
	}
	assert.Equal(t, "1500", TextValue(components, ValueInputID))
	assert.Empty(t, TextValue(components, "missing"))
	assert.Empty(t, TextValue(nil, ValueInputID))
}

type fakeAPI struct {
	responses []*discordgo.InteractionResponse
	edits     []string
	followups []*discordgo.WebhookParams
	respondFn func() error
}

func (f *fakeAPI) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	if f.respondFn != nil {
		if err := f.respondFn(); err != nil {
			return err
		}
	}
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeAPI) InteractionResponse(_ *discordgo.Interaction, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	return &discordgo.Message{ID: "msg-1"}, nil
}

func (f *fakeAPI) ChannelMessageEdit(channelID, messageID, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.edits = append(f.edits, channelID+"/"+messageID+":"+content)
	return &discordgo.Message{ID: messageID}, nil
}

func (f *fakeAPI) FollowupMessageCreate(_ *discordgo.Interaction, _ bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.followups = append(f.followups, data)
	return &discordgo.Message{}, nil
}

func TestResponderDisplay(t *testing.T) {
	api := &fakeAPI{}
	r := newResponder(api, &discordgo.Interaction{ChannelID: "c1"})

	id, err := r.Display(context.Background(), "text", tracker.Layout(domain.ActivityCurrency))
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)
	assert.True(t, r.Responded())
	require.Len(t, api.responses, 1)
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, api.responses[0].Type)
	assert.Equal(t, "text", api.responses[0].Data.Content)

	_, err = r.Display(context.Background(), "again", nil)
	assert.Error(t, err)
}

func TestResponderUpdateDisplayEditsChannelMessage(t *testing.T) {
	api := &fakeAPI{}
	r := newResponder(api, &discordgo.Interaction{ChannelID: "c1"})

	require.NoError(t, r.UpdateDisplay(context.Background(), "m1", "new"))
	assert.Equal(t, []string{"c1/m1:new"}, api.edits)
	assert.False(t, r.Responded())
}

func TestResponderAcknowledgeFallsBackToFollowup(t *testing.T) {
	api := &fakeAPI{}
	r := newResponder(api, &discordgo.Interaction{ChannelID: "c1"})

	require.NoError(t, r.Acknowledge(context.Background(), "first"))
	require.Len(t, api.responses, 1)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, api.responses[0].Data.Flags)

	require.NoError(t, r.Acknowledge(context.Background(), "second"))
	require.Len(t, api.followups, 1)
	assert.Equal(t, "second", api.followups[0].Content)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, api.followups[0].Flags)
}

func TestResponderDisableControls(t *testing.T) {
	api := &fakeAPI{}
	i := &discordgo.Interaction{ChannelID: "c1", Message: &discordgo.Message{ID: "m1"}}
	r := newResponder(api, i)

	assert.Error(t, r.DisableControls(context.Background(), "other", nil))
	require.NoError(t, r.DisableControls(context.Background(), "m1", tracker.Disable(tracker.Layout(domain.ActivityLeveling))))
	require.Len(t, api.responses, 1)
	assert.Equal(t, discordgo.InteractionResponseUpdateMessage, api.responses[0].Type)
}

func TestResponderOpenFormFailureLeavesUnanswered(t *testing.T) {
	api := &fakeAPI{respondFn: func() error { return errors.New("unknown interaction") }}
	r := newResponder(api, &discordgo.Interaction{})

	err := r.OpenForm(context.Background(), tracker.FormFor(tracker.Route(domain.ActivityCurrency, "add_start"), "m1"))
	assert.ErrorContains(t, err, "show modal")
	assert.False(t, r.Responded())
}

type recordingHandler struct {
	calls []string
}

func (h *recordingHandler) Start(_ context.Context, _ bot.Responder, a domain.Activity) {
	h.calls = append(h.calls, "start:"+string(a))
}

func (h *recordingHandler) Activate(_ context.Context, _ bot.Responder, messageID, controlID string) {
	h.calls = append(h.calls, "activate:"+messageID+":"+controlID)
}

func (h *recordingHandler) Submit(_ context.Context, _ bot.Responder, tag, value string) {
	h.calls = append(h.calls, "submit:"+tag+":"+value)
}

func TestDispatch(t *testing.T) {
	tests := []struct {
		name        string
		interaction *discordgo.Interaction
		want        []string
	}{
		{
			name: "command",
			interaction: &discordgo.Interaction{
				Type: discordgo.InteractionApplicationCommand,
				Data: discordgo.ApplicationCommandInteractionData{Name: "levels"},
			},
			want: []string{"start:Leveling"},
		},
		{
			name: "unknown command",
			interaction: &discordgo.Interaction{
				Type: discordgo.InteractionApplicationCommand,
				Data: discordgo.ApplicationCommandInteractionData{Name: "weather"},
			},
		},
		{
			name: "button",
			interaction: &discordgo.Interaction{
				Type:    discordgo.InteractionMessageComponent,
				Message: &discordgo.Message{ID: "m1"},
				Data:    discordgo.MessageComponentInteractionData{CustomID: "add_end"},
			},
			want: []string{"activate:m1:add_end"},
		},
		{
			name: "modal",
			interaction: &discordgo.Interaction{
				Type: discordgo.InteractionModalSubmit,
				Data: discordgo.ModalSubmitInteractionData{
					CustomID: "modal|add_end|m1",
					Components: []discordgo.MessageComponent{
						&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
							&discordgo.TextInput{CustomID: ValueInputID, Value: "42"},
						}},
					},
				},
			},
			want: []string{"submit:modal|add_end|m1:42"},
		},
		{
			name:        "ping",
			interaction: &discordgo.Interaction{Type: discordgo.InteractionPing},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := &recordingHandler{}
			dispatch(context.Background(), h, newResponder(&fakeAPI{}, tc.interaction), tc.interaction)
			assert.Equal(t, tc.want, h.calls)
		})
	}
}
