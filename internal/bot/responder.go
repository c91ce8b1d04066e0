// Package bot reacts to platform trigger events by driving tracking sessions
// through the session store and the tracker.
package bot

import (
	"context"

	"github.com/ashureev/ledgerbot/internal/tracker"
)

// Responder is the platform collaborator for one trigger event. Display,
// DisableControls, OpenForm and Acknowledge answer the trigger; UpdateDisplay
// edits an existing message and does not.
type Responder interface {
	// Display posts text with controls and returns the new message identity.
	Display(ctx context.Context, text string, groups []tracker.ControlGroup) (string, error)

	// UpdateDisplay replaces the text of an existing message.
	UpdateDisplay(ctx context.Context, messageID, text string) error

	// DisableControls replaces the controls of a message with groups, which
	// the controller passes fully disabled.
	DisableControls(ctx context.Context, messageID string, groups []tracker.ControlGroup) error

	// OpenForm asks the user for one line of text correlated by form.Tag.
	OpenForm(ctx context.Context, form tracker.Form) error

	// Acknowledge sends a short notice visible only to the triggering user.
	Acknowledge(ctx context.Context, text string) error

	// Responded reports whether the trigger has been answered already.
	Responded() bool
}
