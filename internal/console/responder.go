package console

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ashureev/ledgerbot/internal/tracker"
)

// responder answers one inbound frame. Session messages are broadcast to the
// hub; forms and notices go only to the console that sent the frame.
type responder struct {
	hub    *Hub
	origin *client

	mu        sync.Mutex
	responded bool
}

func (r *responder) markResponded() {
	r.mu.Lock()
	r.responded = true
	r.mu.Unlock()
}

func (r *responder) Display(ctx context.Context, text string, groups []tracker.ControlGroup) (string, error) {
	id := uuid.NewString()
	if err := r.hub.Broadcast(ctx, Frame{Type: FrameDisplay, MessageID: id, Text: text, Controls: groups}); err != nil {
		return "", fmt.Errorf("broadcast display: %w", err)
	}
	r.markResponded()
	return id, nil
}

func (r *responder) UpdateDisplay(ctx context.Context, messageID, text string) error {
	if err := r.hub.Broadcast(ctx, Frame{Type: FrameUpdate, MessageID: messageID, Text: text}); err != nil {
		return fmt.Errorf("broadcast update: %w", err)
	}
	return nil
}

func (r *responder) DisableControls(ctx context.Context, messageID string, groups []tracker.ControlGroup) error {
	if err := r.hub.Broadcast(ctx, Frame{Type: FrameDisable, MessageID: messageID, Controls: groups}); err != nil {
		return fmt.Errorf("broadcast disable: %w", err)
	}
	r.markResponded()
	return nil
}

func (r *responder) OpenForm(ctx context.Context, form tracker.Form) error {
	f := Frame{
		Type: FrameForm,
		Form: &FormFrame{Tag: form.Tag.String(), Title: form.Title, Label: form.Label},
	}
	if err := r.origin.send(ctx, f); err != nil {
		return fmt.Errorf("send form: %w", err)
	}
	r.markResponded()
	return nil
}

func (r *responder) Acknowledge(ctx context.Context, text string) error {
	if err := r.origin.send(ctx, Frame{Type: FrameAck, Text: text}); err != nil {
		return fmt.Errorf("send ack: %w", err)
	}
	r.markResponded()
	return nil
}

func (r *responder) Responded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.responded
}
