package tracker

import (
	"strings"

	"github.com/ashureev/ledgerbot/internal/domain"
)

const (
	// Placeholder is shown for every field that has not been written yet.
	Placeholder = "[Add]"
	separator   = "**----------------------------------------------------**"
)

// Render formats the session as the message text shown to users. It is a
// pure function of the session's state.
func Render(s *domain.Session) string {
	switch s.Activity {
	case domain.ActivityCurrency:
		return renderCurrency(s.Date, s.Currency)
	case domain.ActivityTrade:
		return renderTrade(s.Date, s.Trade)
	case domain.ActivityLeveling:
		return renderLeveling(s.Date, s.Leveling)
	}
	return ""
}

func renderCurrency(date string, e *domain.CurrencyEntry) string {
	if e == nil {
		e = &domain.CurrencyEntry{}
	}
	var b strings.Builder
	line(&b, "**Day** - ", date, " - **[Start]** ", e.Start.Or(Placeholder), " - **[End]** ", e.End.Or(Placeholder))
	line(&b, separator)
	line(&b, "**Total Amount** - ", e.Total.Or(Placeholder), " Diamonds 💎")
	line(&b, separator)
	line(&b, "**Earned** - ", e.Earned.Or(Placeholder), " Diamonds 💎")
	line(&b, "**Spent** - ", e.Spent.Or(Placeholder), " Diamonds 💎")
	b.WriteString(separator)
	return b.String()
}

func renderTrade(date string, e *domain.TradeEntry) string {
	if e == nil {
		e = &domain.TradeEntry{}
	}
	var b strings.Builder
	line(&b, "**Date** - ", date)
	line(&b, separator)
	line(&b, "**With** - ", e.With.Or(Placeholder))
	line(&b, separator)
	line(&b, "**Gave**")
	writeSide(&b, e.Gave)
	line(&b, separator)
	line(&b, "**Got**")
	writeSide(&b, e.Got)
	line(&b, separator)
	b.WriteString("**Profit/Loss:** " + e.ProfitLoss.Or("0"))
	return b.String()
}

// writeSide writes the optional diamond line followed by the items, then
// always terminates the block with a newline so an empty side leaves a
// blank line before the separator.
func writeSide(b *strings.Builder, side domain.TradeSide) {
	if !side.Diamonds.IsZero() {
		line(b, "- ", side.Diamonds.String(), " Diamonds 💎")
	}
	items := make([]string, len(side.Items))
	for i, item := range side.Items {
		items[i] = "- " + item
	}
	line(b, strings.Join(items, "\n"))
}

func renderLeveling(date string, e *domain.LevelingEntry) string {
	if e == nil {
		e = &domain.LevelingEntry{}
	}
	var b strings.Builder
	line(&b, "**Date** - ", date)
	line(&b, separator)
	line(&b, "**Time** - **[Start]** ", e.StartTime.Or(Placeholder), " - **[End]** ", e.EndTime.Or(Placeholder))
	line(&b, separator)
	line(&b, "**Before Level** - ", e.BeforeLevel.Or(Placeholder))
	line(&b, "**Earned** - ", e.EarnedLevels.Or(Placeholder), " Levels ⭐")
	line(&b, "**Current** - ", e.CurrentPercent.Or(Placeholder), " %")
	line(&b, "**After Level** - ", e.AfterLevel.Or(Placeholder))
	b.WriteString(separator)
	return b.String()
}

func line(b *strings.Builder, parts ...string) {
	for _, p := range parts {
		b.WriteString(p)
	}
	b.WriteByte('\n')
}
