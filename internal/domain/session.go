package domain

import (
	"encoding/json"
	"errors"
	"math"
	"math/big"
	"slices"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrSessionNotFound is returned when no session is stored under a message identity.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExists is returned when a message identity is already taken.
	ErrSessionExists = errors.New("session already exists")
	// ErrSessionFinished is returned when a finished session would be mutated.
	ErrSessionFinished = errors.New("session finished")
)

// Status is the lifecycle state of a session.
type Status string

const (
	StatusEditing  Status = "Editing"
	StatusFinished Status = "Finished"
)

// Text is an optional free-form value. The zero value is unset.
type Text struct {
	Value string `json:"value"`
	Set   bool   `json:"set"`
}

// NewText returns a set Text holding v verbatim.
func NewText(v string) Text {
	return Text{Value: v, Set: true}
}

// Or returns the value, or fallback when unset.
func (t Text) Or(fallback string) string {
	if !t.Set {
		return fallback
	}
	return t.Value
}

// Amount is a diamond count. Unparseable input is kept as NaN so the user
// sees what was stored instead of losing it.
type Amount float64

// ParseAmount converts raw text with JavaScript Number() rules: blank text
// is zero, "Infinity" keeps its sign, unsigned 0x/0o/0b literals are
// integers and anything else that is not a plain decimal becomes NaN.
func ParseAmount(raw string) Amount {
	raw = strings.TrimSpace(raw)
	switch raw {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return Amount(math.Inf(1))
	case "-Infinity":
		return Amount(math.Inf(-1))
	}
	if v, ok := parseRadixLiteral(raw); ok {
		return Amount(v)
	}
	if strings.IndexFunc(raw, notDecimalRune) >= 0 {
		return Amount(math.NaN())
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Amount(math.NaN())
	}
	return Amount(v)
}

// notDecimalRune rejects what strconv accepts but Number() does not:
// underscores, hex floats, "inf" and "nan" spellings.
func notDecimalRune(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return false
	case r == '.', r == 'e', r == 'E', r == '+', r == '-':
		return false
	}
	return true
}

func parseRadixLiteral(raw string) (float64, bool) {
	if len(raw) < 3 || raw[0] != '0' {
		return 0, false
	}
	var base int
	switch raw[1] {
	case 'x', 'X':
		base = 16
	case 'o', 'O':
		base = 8
	case 'b', 'B':
		base = 2
	default:
		return 0, false
	}
	digits := raw[2:]
	if strings.ContainsRune(digits, '_') {
		return math.NaN(), true
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok || strings.ContainsAny(digits[:1], "+-") {
		return math.NaN(), true
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	return f, true
}

// IsNaN reports whether the amount holds the invalid-number sentinel.
func (a Amount) IsNaN() bool {
	return math.IsNaN(float64(a))
}

// IsZero reports whether the amount is exactly zero.
func (a Amount) IsZero() bool {
	return float64(a) == 0
}

func (a Amount) String() string {
	v := float64(a)
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// MarshalJSON encodes finite amounts as numbers and the rest as strings,
// since JSON has no NaN or Infinity.
func (a Amount) MarshalJSON() ([]byte, error) {
	v := float64(a)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return json.Marshal(a.String())
	}
	return json.Marshal(v)
}

// UnmarshalJSON accepts both encodings produced by MarshalJSON.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch s {
		case "Infinity":
			*a = Amount(math.Inf(1))
		case "-Infinity":
			*a = Amount(math.Inf(-1))
		default:
			*a = Amount(math.NaN())
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Amount(v)
	return nil
}

// CurrencyEntry is the diamond ledger for one day.
type CurrencyEntry struct {
	Start  Text `json:"start"`
	End    Text `json:"end"`
	Total  Text `json:"total"`
	Earned Text `json:"earned"`
	Spent  Text `json:"spent"`
}

// TradeSide is what one party handed over in a trade.
type TradeSide struct {
	Diamonds Amount   `json:"diamonds"`
	Items    []string `json:"items"`
}

// TradeEntry records a single trade with another user.
type TradeEntry struct {
	With       Text      `json:"with"`
	Gave       TradeSide `json:"gave"`
	Got        TradeSide `json:"got"`
	ProfitLoss Text      `json:"profit_loss"`
}

// LevelingEntry records one leveling run.
type LevelingEntry struct {
	StartTime      Text `json:"start_time"`
	EndTime        Text `json:"end_time"`
	BeforeLevel    Text `json:"before_level"`
	EarnedLevels   Text `json:"earned_levels"`
	CurrentPercent Text `json:"current_percent"`
	AfterLevel     Text `json:"after_level"`
}

// Session is the state behind one rendered tracking message. Exactly one of
// Currency, Trade and Leveling is non-nil, matching Activity.
type Session struct {
	ID        string         `json:"id"`
	Activity  Activity       `json:"activity"`
	Date      string         `json:"date"`
	Status    Status         `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Currency  *CurrencyEntry `json:"currency,omitempty"`
	Trade     *TradeEntry    `json:"trade,omitempty"`
	Leveling  *LevelingEntry `json:"leveling,omitempty"`
}

// Finished reports whether the session reached its terminal state.
func (s *Session) Finished() bool {
	return s.Status == StatusFinished
}

// Clone returns a deep copy of s.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	if s.Currency != nil {
		c := *s.Currency
		out.Currency = &c
	}
	if s.Trade != nil {
		t := *s.Trade
		t.Gave.Items = slices.Clone(s.Trade.Gave.Items)
		t.Got.Items = slices.Clone(s.Trade.Got.Items)
		out.Trade = &t
	}
	if s.Leveling != nil {
		l := *s.Leveling
		out.Leveling = &l
	}
	return &out
}
