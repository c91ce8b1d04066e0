package tracker

import (
	"fmt"
	"strings"
)

const formTagPrefix = "modal"

// FormTag correlates a submitted form with the session and action that
// opened it.
type FormTag struct {
	Action    string
	SessionID string
}

// String encodes the tag as "modal|<action>|<session id>".
func (t FormTag) String() string {
	return formTagPrefix + "|" + t.Action + "|" + t.SessionID
}

// ParseFormTag decodes a tag produced by FormTag.String.
func ParseFormTag(s string) (FormTag, error) {
	parts := strings.Split(s, "|")
	if len(parts) != 3 {
		return FormTag{}, fmt.Errorf("parse form tag %q: want 3 parts, got %d", s, len(parts))
	}
	if parts[0] != formTagPrefix {
		return FormTag{}, fmt.Errorf("parse form tag %q: unexpected prefix %q", s, parts[0])
	}
	if parts[1] == "" || parts[2] == "" {
		return FormTag{}, fmt.Errorf("parse form tag %q: empty action or session", s)
	}
	return FormTag{Action: parts[1], SessionID: parts[2]}, nil
}
