package console

import "github.com/ashureev/ledgerbot/internal/tracker"

// Inbound frame types.
const (
	FrameStart    = "start"
	FrameActivate = "activate"
	FrameSubmit   = "submit"
	FramePing     = "ping"
)

// Outbound frame types.
const (
	FrameHello   = "hello"
	FrameDisplay = "display"
	FrameUpdate  = "update"
	FrameDisable = "disable"
	FrameForm    = "form"
	FrameAck     = "ack"
	FramePong    = "pong"
	FrameError   = "error"
)

// Frame is the JSON message exchanged with a console in both directions.
type Frame struct {
	Type string `json:"type"`

	// Inbound.
	Activity  string `json:"activity,omitempty"`
	ControlID string `json:"control_id,omitempty"`
	Tag       string `json:"tag,omitempty"`
	Value     string `json:"value,omitempty"`

	// Outbound.
	ClientID string                 `json:"client_id,omitempty"`
	Text     string                 `json:"text,omitempty"`
	Controls []tracker.ControlGroup `json:"controls,omitempty"`
	Form     *FormFrame             `json:"form,omitempty"`
	Error    string                 `json:"error,omitempty"`

	MessageID string `json:"message_id,omitempty"`
}

// FormFrame asks the console for one value.
type FormFrame struct {
	Tag   string `json:"tag"`
	Title string `json:"title"`
	Label string `json:"label"`
}
