// Package tracker implements the tracking-session state machine: building
// sessions, rendering them, laying out their controls, routing control
// activations to actions and applying those actions.
package tracker

// Kind classifies what an action does to a session.
type Kind int

const (
	KindUnknown Kind = iota
	// KindSetText stores raw text verbatim in a free-form field.
	KindSetText
	// KindSetAmount parses raw text into a diamond count.
	KindSetAmount
	// KindAppendItem pushes raw text onto an item list.
	KindAppendItem
	// KindPopItem removes the last item of a list.
	KindPopItem
	// KindFinish moves the session to its terminal state.
	KindFinish
)

func (k Kind) String() string {
	switch k {
	case KindSetText:
		return "set_text"
	case KindSetAmount:
		return "set_amount"
	case KindAppendItem:
		return "append_item"
	case KindPopItem:
		return "pop_item"
	case KindFinish:
		return "finish"
	}
	return "unknown"
}

// Field names a free-form text field of one of the activity entries.
type Field int

const (
	FieldNone Field = iota

	FieldCurrencyStart
	FieldCurrencyEnd
	FieldCurrencyTotal
	FieldCurrencyEarned
	FieldCurrencySpent

	FieldTradeWith
	FieldTradeProfitLoss

	FieldLevelingStart
	FieldLevelingEnd
	FieldLevelingBefore
	FieldLevelingEarned
	FieldLevelingCurrent
	FieldLevelingAfter
)

// Side selects a party of a trade.
type Side int

const (
	SideNone Side = iota
	SideGave
	SideGot
)

func (s Side) String() string {
	switch s {
	case SideGave:
		return "Gave"
	case SideGot:
		return "Got"
	}
	return ""
}

// Action is the routed meaning of a control activation. Field is set for
// KindSetText; Side is set for KindSetAmount, KindAppendItem and KindPopItem.
type Action struct {
	ID    string
	Kind  Kind
	Field Field
	Side  Side
}

// Unknown is returned for control identifiers that are not part of an
// activity's catalog.
var Unknown = Action{Kind: KindUnknown}

// NeedsInput reports whether the action needs a free-text value from a form.
func (a Action) NeedsInput() bool {
	switch a.Kind {
	case KindSetText, KindSetAmount, KindAppendItem:
		return true
	}
	return false
}

// Structural reports whether the action applies without any input.
func (a Action) Structural() bool {
	return a.Kind == KindPopItem || a.Kind == KindFinish
}

// Form describes the one-line prompt shown for an input action.
type Form struct {
	Tag   FormTag
	Title string
	Label string
}

const (
	defaultFormTitle = "Enter value"
	defaultFormLabel = "Enter value"
)

// FormFor builds the prompt for an input action on the given session.
func FormFor(action Action, sessionID string) Form {
	f := Form{
		Tag:   FormTag{Action: action.ID, SessionID: sessionID},
		Title: defaultFormTitle,
		Label: defaultFormLabel,
	}
	if action.Kind == KindSetText && action.Field == FieldTradeProfitLoss {
		f.Title = "Profit/Loss (e.g., +1251 or -1561)"
		f.Label = "Profit/Loss (+/-)"
	}
	return f
}
