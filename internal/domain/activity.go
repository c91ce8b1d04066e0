// Package domain contains the tracking session model shared by every layer.
package domain

// Activity identifies which ledger a session tracks. It fixes the session's
// fields, its template and its controls for the session's whole lifetime.
type Activity string

const (
	ActivityCurrency Activity = "Currency"
	ActivityTrade    Activity = "Trade"
	ActivityLeveling Activity = "Leveling"
)

// Activities lists every supported activity in trigger registration order.
var Activities = []Activity{ActivityCurrency, ActivityTrade, ActivityLeveling}

// Command returns the trigger name users invoke to start the activity.
func (a Activity) Command() string {
	switch a {
	case ActivityCurrency:
		return "diamonds"
	case ActivityTrade:
		return "trades"
	case ActivityLeveling:
		return "levels"
	}
	return ""
}

// Description returns the short help text shown next to the trigger.
func (a Activity) Description() string {
	switch a {
	case ActivityCurrency:
		return "Track diamonds"
	case ActivityTrade:
		return "Track trades"
	case ActivityLeveling:
		return "Track levels"
	}
	return ""
}

// Valid reports whether a is one of the supported activities.
func (a Activity) Valid() bool {
	switch a {
	case ActivityCurrency, ActivityTrade, ActivityLeveling:
		return true
	}
	return false
}

// ParseCommand maps a trigger name to its activity.
func ParseCommand(name string) (Activity, bool) {
	for _, a := range Activities {
		if a.Command() == name {
			return a, true
		}
	}
	return "", false
}
