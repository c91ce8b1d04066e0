package tracker

import "github.com/ashureev/ledgerbot/internal/domain"

// Style is the cosmetic look of a control.
type Style string

const (
	StylePrimary   Style = "primary"
	StyleSecondary Style = "secondary"
	StyleSuccess   Style = "success"
	StyleDanger    Style = "danger"
)

// Control is one interactive element shown with a rendered session.
type Control struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Style    Style  `json:"style"`
	Disabled bool   `json:"disabled,omitempty"`
}

// ControlGroup is a row of controls displayed together.
type ControlGroup []Control

type catalogEntry struct {
	control Control
	action  Action
}

const finishID = "finish"

var finishEntry = catalogEntry{
	control: Control{ID: finishID, Label: "Finish ✅", Style: StyleSecondary},
	action:  Action{ID: finishID, Kind: KindFinish},
}

func setText(id, label string, style Style, field Field) catalogEntry {
	return catalogEntry{
		control: Control{ID: id, Label: label, Style: style},
		action:  Action{ID: id, Kind: KindSetText, Field: field},
	}
}

func onSide(id, label string, style Style, kind Kind, side Side) catalogEntry {
	return catalogEntry{
		control: Control{ID: id, Label: label, Style: style},
		action:  Action{ID: id, Kind: kind, Side: side},
	}
}

// catalogs is the single source for both Layout and Route. Every catalog
// ends with finish alone in its own row.
var catalogs = map[domain.Activity][][]catalogEntry{
	domain.ActivityCurrency: {
		{
			setText("add_start", "Add Start", StylePrimary, FieldCurrencyStart),
			setText("add_end", "Add End", StylePrimary, FieldCurrencyEnd),
			setText("add_total", "Add Total", StyleSecondary, FieldCurrencyTotal),
			setText("add_earned", "Add Earned", StyleSuccess, FieldCurrencyEarned),
			setText("add_spent", "Add Spent", StyleDanger, FieldCurrencySpent),
		},
		{finishEntry},
	},
	domain.ActivityTrade: {
		{
			setText("add_with", "Add With", StylePrimary, FieldTradeWith),
			onSide("add_gave_diamonds", "Gave Diamonds", StyleSecondary, KindSetAmount, SideGave),
			onSide("add_gave_item", "Gave Item", StyleSuccess, KindAppendItem, SideGave),
			onSide("add_got_diamonds", "Got Diamonds", StyleSecondary, KindSetAmount, SideGot),
			onSide("add_got_item", "Got Item", StyleSuccess, KindAppendItem, SideGot),
		},
		{
			onSide("delete_gave_item", "Delete Gave Item", StyleDanger, KindPopItem, SideGave),
			onSide("delete_got_item", "Delete Got Item", StyleDanger, KindPopItem, SideGot),
			setText("set_profit_loss", "Set Profit/Loss", StylePrimary, FieldTradeProfitLoss),
		},
		{finishEntry},
	},
	domain.ActivityLeveling: {
		{
			setText("add_start", "Add Start", StylePrimary, FieldLevelingStart),
			setText("add_end", "Add End", StylePrimary, FieldLevelingEnd),
			setText("add_before", "Before Level", StyleSecondary, FieldLevelingBefore),
			setText("add_earned", "Add Earned", StyleSuccess, FieldLevelingEarned),
			setText("add_current", "Add Current", StyleSecondary, FieldLevelingCurrent),
		},
		{setText("add_after", "After Level", StylePrimary, FieldLevelingAfter)},
		{finishEntry},
	},
}

// Layout returns the control rows for an activity. The result is a fresh
// copy the caller may modify.
func Layout(activity domain.Activity) []ControlGroup {
	rows := catalogs[activity]
	groups := make([]ControlGroup, 0, len(rows))
	for _, row := range rows {
		group := make(ControlGroup, 0, len(row))
		for _, entry := range row {
			group = append(group, entry.control)
		}
		groups = append(groups, group)
	}
	return groups
}

// Disable returns a copy of groups with every control disabled.
func Disable(groups []ControlGroup) []ControlGroup {
	out := make([]ControlGroup, 0, len(groups))
	for _, group := range groups {
		g := make(ControlGroup, len(group))
		for i, c := range group {
			c.Disabled = true
			g[i] = c
		}
		out = append(out, g)
	}
	return out
}
