package tracker

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashureev/ledgerbot/internal/domain"
)

var testDay = time.Date(2026, time.March, 4, 18, 30, 0, 0, time.UTC)

const sep = "**----------------------------------------------------**"

func TestNewSessionDefaults(t *testing.T) {
	t.Parallel()

	for _, a := range domain.Activities {
		s := NewSession(a, testDay)
		assert.Equal(t, a, s.Activity)
		assert.Equal(t, domain.StatusEditing, s.Status)
		assert.Equal(t, "4.3.2026", s.Date)
		assert.Empty(t, s.ID)
	}

	trade := NewSession(domain.ActivityTrade, testDay)
	require.NotNil(t, trade.Trade)
	assert.Empty(t, trade.Trade.Gave.Items)
	assert.True(t, trade.Trade.Got.Diamonds.IsZero())
}

func TestRenderNewSessions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		activity domain.Activity
		want     string
	}{
		{
			activity: domain.ActivityCurrency,
			want: strings.Join([]string{
				"**Day** - 4.3.2026 - **[Start]** [Add] - **[End]** [Add]",
				sep,
				"**Total Amount** - [Add] Diamonds 💎",
				sep,
				"**Earned** - [Add] Diamonds 💎",
				"**Spent** - [Add] Diamonds 💎",
				sep,
			}, "\n"),
		},
		{
			activity: domain.ActivityTrade,
			want: strings.Join([]string{
				"**Date** - 4.3.2026",
				sep,
				"**With** - [Add]",
				sep,
				"**Gave**",
				"",
				sep,
				"**Got**",
				"",
				sep,
				"**Profit/Loss:** 0",
			}, "\n"),
		},
		{
			activity: domain.ActivityLeveling,
			want: strings.Join([]string{
				"**Date** - 4.3.2026",
				sep,
				"**Time** - **[Start]** [Add] - **[End]** [Add]",
				sep,
				"**Before Level** - [Add]",
				"**Earned** - [Add] Levels ⭐",
				"**Current** - [Add] %",
				"**After Level** - [Add]",
				sep,
			}, "\n"),
		},
	}

	for _, tc := range tests {
		t.Run(string(tc.activity), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Render(NewSession(tc.activity, testDay)))
		})
	}
}

func TestRenderTradeDiamondLine(t *testing.T) {
	t.Parallel()

	s := NewSession(domain.ActivityTrade, testDay)
	Apply(s, Route(domain.ActivityTrade, "add_gave_diamonds"), "50")
	assert.Contains(t, Render(s), "**Gave**\n- 50 Diamonds 💎\n\n"+sep)

	Apply(s, Route(domain.ActivityTrade, "add_gave_item"), "Sword")
	assert.Contains(t, Render(s), "**Gave**\n- 50 Diamonds 💎\n- Sword\n"+sep)

	Apply(s, Route(domain.ActivityTrade, "add_gave_diamonds"), "0")
	out := Render(s)
	assert.NotContains(t, out, "Diamonds 💎")
	assert.Contains(t, out, "**Gave**\n- Sword\n"+sep)
}

func TestRenderTradeInvalidAmountIsLiteral(t *testing.T) {
	t.Parallel()

	s := NewSession(domain.ActivityTrade, testDay)
	Apply(s, Route(domain.ActivityTrade, "add_got_diamonds"), "lots")
	assert.Contains(t, Render(s), "**Got**\n- NaN Diamonds 💎\n")
}

func TestTradeScenario(t *testing.T) {
	t.Parallel()

	s := NewSession(domain.ActivityTrade, testDay)

	assert.Equal(t, Changed, Apply(s, Route(domain.ActivityTrade, "add_gave_item"), "Pickaxe"))
	assert.Contains(t, strings.Split(Render(s), "\n"), "- Pickaxe")

	assert.Equal(t, Changed, Apply(s, Route(domain.ActivityTrade, "set_profit_loss"), "-1561"))
	assert.Contains(t, Render(s), "**Profit/Loss:** -1561")

	assert.Equal(t, Completed, Apply(s, Route(domain.ActivityTrade, "finish"), ""))
	assert.True(t, s.Finished())
}

func TestLevelingScenario(t *testing.T) {
	t.Parallel()

	s := NewSession(domain.ActivityLeveling, testDay)
	Apply(s, Route(domain.ActivityLeveling, "add_before"), "42")
	Apply(s, Route(domain.ActivityLeveling, "add_after"), "45")

	out := Render(s)
	assert.Contains(t, out, "**Before Level** - 42")
	assert.Contains(t, out, "**After Level** - 45")
	assert.Contains(t, out, "**Time** - **[Start]** [Add] - **[End]** [Add]")
	assert.Contains(t, out, "**Earned** - [Add] Levels ⭐")
	assert.Contains(t, out, "**Current** - [Add] %")
}

func TestRenderCurrencyFields(t *testing.T) {
	t.Parallel()

	s := NewSession(domain.ActivityCurrency, testDay)
	Apply(s, Route(domain.ActivityCurrency, "add_start"), "10:00")
	Apply(s, Route(domain.ActivityCurrency, "add_total"), "12.500")
	Apply(s, Route(domain.ActivityCurrency, "add_spent"), "")

	out := Render(s)
	assert.Contains(t, out, "**Day** - 4.3.2026 - **[Start]** 10:00 - **[End]** [Add]")
	assert.Contains(t, out, "**Total Amount** - 12.500 Diamonds 💎")
	assert.Contains(t, out, "**Spent** -  Diamonds 💎")
}
