package tracker

import (
	"time"

	"github.com/ashureev/ledgerbot/internal/domain"
)

// DateLayout is the fixed German short date (day.month.year, unpadded).
const DateLayout = "2.1.2006"

// NewSession builds an editing session for activity with every field unset.
// The caller is responsible for converting now to the display time zone.
// The identity is left empty until the session is stored under its message.
func NewSession(activity domain.Activity, now time.Time) *domain.Session {
	s := &domain.Session{
		Activity:  activity,
		Date:      now.Format(DateLayout),
		Status:    domain.StatusEditing,
		CreatedAt: now,
		UpdatedAt: now,
	}
	switch activity {
	case domain.ActivityCurrency:
		s.Currency = &domain.CurrencyEntry{}
	case domain.ActivityTrade:
		s.Trade = &domain.TradeEntry{
			Gave: domain.TradeSide{Items: []string{}},
			Got:  domain.TradeSide{Items: []string{}},
		}
	case domain.ActivityLeveling:
		s.Leveling = &domain.LevelingEntry{}
	}
	return s
}
