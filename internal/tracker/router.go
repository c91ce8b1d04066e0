package tracker

import "github.com/ashureev/ledgerbot/internal/domain"

// Route returns the action bound to controlID for the activity, or Unknown
// when the activity has no such control.
func Route(activity domain.Activity, controlID string) Action {
	for _, row := range catalogs[activity] {
		for _, entry := range row {
			if entry.control.ID == controlID {
				return entry.action
			}
		}
	}
	return Unknown
}
