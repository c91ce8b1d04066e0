// Package discord connects the controller to Discord: slash commands start
// sessions, buttons activate controls and modals collect form values.
package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/ashureev/ledgerbot/internal/domain"
	"github.com/ashureev/ledgerbot/internal/tracker"
)

// ValueInputID is the custom id of the single text input in every modal.
const ValueInputID = "value_input"

// Commands returns the slash commands for every activity.
func Commands() []*discordgo.ApplicationCommand {
	cmds := make([]*discordgo.ApplicationCommand, 0, len(domain.Activities))
	for _, a := range domain.Activities {
		cmds = append(cmds, &discordgo.ApplicationCommand{
			Name:        a.Command(),
			Description: a.Description(),
		})
	}
	return cmds
}

// Rows converts control groups to Discord action rows of buttons.
func Rows(groups []tracker.ControlGroup) []discordgo.MessageComponent {
	rows := make([]discordgo.MessageComponent, 0, len(groups))
	for _, group := range groups {
		buttons := make([]discordgo.MessageComponent, 0, len(group))
		for _, c := range group {
			buttons = append(buttons, discordgo.Button{
				CustomID: c.ID,
				Label:    c.Label,
				Style:    buttonStyle(c.Style),
				Disabled: c.Disabled,
			})
		}
		rows = append(rows, discordgo.ActionsRow{Components: buttons})
	}
	return rows
}

func buttonStyle(s tracker.Style) discordgo.ButtonStyle {
	switch s {
	case tracker.StylePrimary:
		return discordgo.PrimaryButton
	case tracker.StyleSuccess:
		return discordgo.SuccessButton
	case tracker.StyleDanger:
		return discordgo.DangerButton
	case tracker.StyleSecondary:
	}
	return discordgo.SecondaryButton
}

// Modal builds the modal response data for a form.
func Modal(form tracker.Form) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: form.Tag.String(),
		Title:    form.Title,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID: ValueInputID,
						Label:    form.Label,
						Style:    discordgo.TextInputShort,
						Required: true,
					},
				},
			},
		},
	}
}

// TextValue returns the value of the text input with customID from a modal
// submission, or "" if the submission has no such input.
func TextValue(components []discordgo.MessageComponent, customID string) string {
	for _, component := range components {
		var children []discordgo.MessageComponent
		switch row := component.(type) {
		case *discordgo.ActionsRow:
			children = row.Components
		case discordgo.ActionsRow:
			children = row.Components
		default:
			continue
		}
		for _, child := range children {
			switch input := child.(type) {
			case *discordgo.TextInput:
				if input.CustomID == customID {
					return input.Value
				}
			case discordgo.TextInput:
				if input.CustomID == customID {
					return input.Value
				}
			}
		}
	}
	return ""
}
