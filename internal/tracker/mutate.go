package tracker

import "github.com/ashureev/ledgerbot/internal/domain"

// Outcome reports what Apply did to a session.
type Outcome int

const (
	// Unchanged means the session was left as it was.
	Unchanged Outcome = iota
	// Changed means a field or list was written.
	Changed
	// Completed means the session moved to its finished state.
	Completed
)

func (o Outcome) String() string {
	switch o {
	case Changed:
		return "changed"
	case Completed:
		return "completed"
	}
	return "unchanged"
}

// Apply performs action on s using value as the raw input. It never fails:
// input is stored as given, popping an empty list does nothing and actions
// that do not belong to the session's activity leave it untouched.
func Apply(s *domain.Session, action Action, value string) Outcome {
	switch action.Kind {
	case KindSetText:
		field := textField(s, action.Field)
		if field == nil {
			return Unchanged
		}
		*field = domain.NewText(value)
		return Changed
	case KindSetAmount:
		side := tradeSide(s, action.Side)
		if side == nil {
			return Unchanged
		}
		side.Diamonds = domain.ParseAmount(value)
		return Changed
	case KindAppendItem:
		side := tradeSide(s, action.Side)
		if side == nil {
			return Unchanged
		}
		side.Items = append(side.Items, value)
		return Changed
	case KindPopItem:
		side := tradeSide(s, action.Side)
		if side == nil || len(side.Items) == 0 {
			return Unchanged
		}
		side.Items = side.Items[:len(side.Items)-1]
		return Changed
	case KindFinish:
		if s.Status == domain.StatusFinished {
			return Unchanged
		}
		s.Status = domain.StatusFinished
		return Completed
	case KindUnknown:
	}
	return Unchanged
}

func textField(s *domain.Session, f Field) *domain.Text {
	switch s.Activity {
	case domain.ActivityCurrency:
		if s.Currency == nil {
			s.Currency = &domain.CurrencyEntry{}
		}
		switch f {
		case FieldCurrencyStart:
			return &s.Currency.Start
		case FieldCurrencyEnd:
			return &s.Currency.End
		case FieldCurrencyTotal:
			return &s.Currency.Total
		case FieldCurrencyEarned:
			return &s.Currency.Earned
		case FieldCurrencySpent:
			return &s.Currency.Spent
		}
	case domain.ActivityTrade:
		if s.Trade == nil {
			s.Trade = &domain.TradeEntry{}
		}
		switch f {
		case FieldTradeWith:
			return &s.Trade.With
		case FieldTradeProfitLoss:
			return &s.Trade.ProfitLoss
		}
	case domain.ActivityLeveling:
		if s.Leveling == nil {
			s.Leveling = &domain.LevelingEntry{}
		}
		switch f {
		case FieldLevelingStart:
			return &s.Leveling.StartTime
		case FieldLevelingEnd:
			return &s.Leveling.EndTime
		case FieldLevelingBefore:
			return &s.Leveling.BeforeLevel
		case FieldLevelingEarned:
			return &s.Leveling.EarnedLevels
		case FieldLevelingCurrent:
			return &s.Leveling.CurrentPercent
		case FieldLevelingAfter:
			return &s.Leveling.AfterLevel
		}
	}
	return nil
}

func tradeSide(s *domain.Session, side Side) *domain.TradeSide {
	if s.Activity != domain.ActivityTrade {
		return nil
	}
	if s.Trade == nil {
		s.Trade = &domain.TradeEntry{}
	}
	switch side {
	case SideGave:
		return &s.Trade.Gave
	case SideGot:
		return &s.Trade.Got
	}
	return nil
}
