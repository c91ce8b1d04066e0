package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ashureev/ledgerbot/internal/domain"
	"github.com/ashureev/ledgerbot/internal/store"
	"github.com/ashureev/ledgerbot/internal/tracker"
)

// Notices sent back to the triggering user.
const (
	MsgError           = "❌ Error occurred"
	MsgAlreadyFinished = "This entry is already finished."
	MsgNothingToDelete = "Nothing to delete."
	msgSavedPrefix     = "✅ Saved: "
)

const archiveTimeout = 5 * time.Second

var errNotInputAction = errors.New("control does not take input")

// Options configures a Controller. Zero values fall back to defaults.
type Options struct {
	// Archive records finished entries when set.
	Archive store.Archive
	// Now defaults to time.Now.
	Now func() time.Time
	// Location is the zone session dates are written in. Defaults to time.Local.
	Location *time.Location
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Controller handles activity triggers, control activations and form
// submissions. It is safe for concurrent use; the session store serializes
// changes to any one session.
type Controller struct {
	sessions store.SessionStore
	archive  store.Archive
	now      func() time.Time
	location *time.Location
	logger   *slog.Logger
}

// NewController creates a controller over sessions.
func NewController(sessions store.SessionStore, opts Options) *Controller {
	c := &Controller{
		sessions: sessions,
		archive:  opts.Archive,
		now:      opts.Now,
		location: opts.Location,
		logger:   opts.Logger,
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.location == nil {
		c.location = time.Local
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Start creates a session for activity and displays it with its controls.
func (c *Controller) Start(ctx context.Context, r Responder, activity domain.Activity) {
	c.react(ctx, r, "start", func() error {
		if !activity.Valid() {
			return fmt.Errorf("start session: unknown activity %q", activity)
		}

		s := tracker.NewSession(activity, c.now().In(c.location))
		messageID, err := r.Display(ctx, tracker.Render(s), tracker.Layout(activity))
		if err != nil {
			return fmt.Errorf("display %s session: %w", activity, err)
		}

		s.ID = messageID
		if err := c.sessions.Insert(s); err != nil {
			return fmt.Errorf("store %s session: %w", activity, err)
		}
		c.logger.Info("Session started", "session_id", messageID, "activity", activity)
		return nil
	})
}

// Activate handles a control on messageID. Unknown sessions and controls
// are ignored.
func (c *Controller) Activate(ctx context.Context, r Responder, messageID, controlID string) {
	c.react(ctx, r, "activate", func() error {
		s, ok := c.sessions.Get(messageID)
		if !ok {
			c.logger.Debug("Control for unknown session ignored", "session_id", messageID, "control", controlID)
			return nil
		}

		action := tracker.Route(s.Activity, controlID)
		switch action.Kind {
		case tracker.KindFinish:
			return c.finish(ctx, r, s, action)
		case tracker.KindPopItem:
			return c.popItem(ctx, r, s, action)
		case tracker.KindSetText, tracker.KindSetAmount, tracker.KindAppendItem:
			if s.Finished() {
				return r.Acknowledge(ctx, MsgAlreadyFinished)
			}
			if err := r.OpenForm(ctx, tracker.FormFor(action, s.ID)); err != nil {
				return fmt.Errorf("open form %s: %w", action.ID, err)
			}
			return nil
		case tracker.KindUnknown:
		}

		c.logger.Debug("Unknown control ignored", "session_id", messageID, "activity", s.Activity, "control", controlID)
		return nil
	})
}

// Submit applies a submitted form value to the session named by its tag.
// Malformed tags and unknown sessions are ignored.
func (c *Controller) Submit(ctx context.Context, r Responder, rawTag, value string) {
	c.react(ctx, r, "submit", func() error {
		tag, err := tracker.ParseFormTag(rawTag)
		if err != nil {
			c.logger.Debug("Form with foreign tag ignored", "tag", rawTag, "error", err)
			return nil
		}
		value = strings.TrimSpace(value)

		updated, err := c.sessions.Update(tag.SessionID, func(s *domain.Session) error {
			if s.Finished() {
				return domain.ErrSessionFinished
			}
			action := tracker.Route(s.Activity, tag.Action)
			if !action.NeedsInput() {
				return errNotInputAction
			}
			tracker.Apply(s, action, value)
			return nil
		})
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			c.logger.Debug("Form for unknown session ignored", "session_id", tag.SessionID, "action", tag.Action)
			return nil
		case errors.Is(err, errNotInputAction):
			c.logger.Debug("Form for non-input action ignored", "session_id", tag.SessionID, "action", tag.Action)
			return nil
		case errors.Is(err, domain.ErrSessionFinished):
			return r.Acknowledge(ctx, MsgAlreadyFinished)
		case err != nil:
			return fmt.Errorf("apply %s: %w", tag.Action, err)
		}

		if err := c.redisplay(ctx, r, updated); err != nil {
			return err
		}
		c.logger.Debug("Form value saved", "session_id", updated.ID, "action", tag.Action)
		return r.Acknowledge(ctx, msgSavedPrefix+value)
	})
}

// finish marks the session finished before disabling its controls, so a
// form opened earlier can no longer change it even if disabling fails.
func (c *Controller) finish(ctx context.Context, r Responder, s *domain.Session, action tracker.Action) error {
	var completed bool
	updated, err := c.sessions.Update(s.ID, func(w *domain.Session) error {
		completed = tracker.Apply(w, action, "") == tracker.Completed
		return nil
	})
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("finish session %s: %w", s.ID, err)
	}

	if err := r.DisableControls(ctx, s.ID, tracker.Disable(tracker.Layout(s.Activity))); err != nil {
		return fmt.Errorf("disable controls of %s: %w", s.ID, err)
	}

	if completed {
		c.logger.Info("Session finished", "session_id", s.ID, "activity", s.Activity)
		c.archiveEntry(ctx, updated)
	}
	return nil
}

func (c *Controller) popItem(ctx context.Context, r Responder, s *domain.Session, action tracker.Action) error {
	outcome := tracker.Unchanged
	updated, err := c.sessions.Update(s.ID, func(w *domain.Session) error {
		if w.Finished() {
			return domain.ErrSessionFinished
		}
		outcome = tracker.Apply(w, action, "")
		return nil
	})
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return nil
	case errors.Is(err, domain.ErrSessionFinished):
		return r.Acknowledge(ctx, MsgAlreadyFinished)
	case err != nil:
		return fmt.Errorf("delete item on %s: %w", s.ID, err)
	}

	if outcome == tracker.Unchanged {
		return r.Acknowledge(ctx, MsgNothingToDelete)
	}
	if err := c.redisplay(ctx, r, updated); err != nil {
		return err
	}
	return r.Acknowledge(ctx, fmt.Sprintf("✅ Last %s Item deleted", action.Side))
}

// redisplay renders the newest stored state rather than the state this
// reaction committed, so a change committed concurrently in between is not
// overwritten on screen by an older render.
func (c *Controller) redisplay(ctx context.Context, r Responder, committed *domain.Session) error {
	s := committed
	if latest, ok := c.sessions.Get(committed.ID); ok {
		s = latest
	}
	if err := r.UpdateDisplay(ctx, s.ID, tracker.Render(s)); err != nil {
		return fmt.Errorf("redisplay session %s: %w", s.ID, err)
	}
	return nil
}

func (c *Controller) archiveEntry(ctx context.Context, s *domain.Session) {
	if c.archive == nil {
		return
	}

	var payload any
	switch s.Activity {
	case domain.ActivityCurrency:
		payload = s.Currency
	case domain.ActivityTrade:
		payload = s.Trade
	case domain.ActivityLeveling:
		payload = s.Leveling
	}
	fields, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error("Failed to encode finished entry", "session_id", s.ID, "error", err)
		return
	}

	archiveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), archiveTimeout)
	defer cancel()

	entry := store.Entry{
		ID:         uuid.NewString(),
		SessionID:  s.ID,
		Activity:   s.Activity,
		Date:       s.Date,
		Text:       tracker.Render(s),
		Fields:     fields,
		FinishedAt: c.now(),
	}
	if err := c.archive.Record(archiveCtx, entry); err != nil {
		c.logger.Error("Failed to archive finished entry", "session_id", s.ID, "error", err)
		return
	}
	c.logger.Info("Finished entry archived", "session_id", s.ID, "entry_id", entry.ID)
}

// react runs one reaction. Errors and panics stop there: they are logged
// and, if the trigger has not been answered yet, reported with MsgError.
func (c *Controller) react(ctx context.Context, r Responder, reaction string, fn func() error) {
	defer func() {
		if p := recover(); p != nil {
			c.fail(ctx, r, reaction, fmt.Errorf("panic: %v", p))
		}
	}()
	if err := fn(); err != nil {
		c.fail(ctx, r, reaction, err)
	}
}

func (c *Controller) fail(ctx context.Context, r Responder, reaction string, err error) {
	c.logger.Error("Reaction failed", "reaction", reaction, "error", err)
	if r.Responded() {
		return
	}
	if ackErr := r.Acknowledge(ctx, MsgError); ackErr != nil {
		c.logger.Warn("Failed to send failure notice", "reaction", reaction, "error", ackErr)
	}
}
