// Package dnd turns drag gestures into item moves. A front-end (mouse or
// keyboard) drives a Session; the Session forwards start, move and end
// events to a Handler that knows what a drop means for its widget.
package dnd

import "context"

// StartEvent is sent when an item is picked up.
type StartEvent struct {
	ActiveID string
}

// MoveEvent is sent whenever the dragged item moves. DeltaX and DeltaY
// are measured from where the drag started.
type MoveEvent struct {
	ActiveID string
	OverID   string
	DeltaX   float64
	DeltaY   float64
}

// EndEvent is sent when the item is dropped. OverID is empty when the
// item was dropped outside any target.
type EndEvent struct {
	ActiveID string
	OverID   string
	DeltaX   float64
	DeltaY   float64
}

// Handler reacts to a drag gesture.
type Handler interface {
	OnDragStart(StartEvent)
	OnDragMove(MoveEvent)
	OnDragEnd(ctx context.Context, ev EndEvent) error
}

// Session tracks the drag in progress, if any.
type Session struct {
	handler    Handler
	editable   bool
	onDragging func(bool)

	active string
	over   string
	dx, dy float64
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithDragging registers a callback told when a drag begins and ends.
func WithDragging(fn func(bool)) SessionOption {
	return func(s *Session) { s.onDragging = fn }
}

// WithEditable enables or disables dragging. Disabled sessions ignore
// every gesture.
func WithEditable(editable bool) SessionOption {
	return func(s *Session) { s.editable = editable }
}

func NewSession(h Handler, opts ...SessionOption) *Session {
	s := &Session{handler: h, editable: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start picks up id. It reports false when editing is disabled or a drag
// is already in progress.
func (s *Session) Start(id string) bool {
	if !s.editable || s.active != "" || id == "" {
		return false
	}
	s.active, s.over, s.dx, s.dy = id, "", 0, 0
	s.setDragging(true)
	s.handler.OnDragStart(StartEvent{ActiveID: id})
	return true
}

// Move adds (dx, dy) to the drag offset and sets the current drop target.
func (s *Session) Move(dx, dy float64, over string) {
	if s.active == "" {
		return
	}
	s.dx += dx
	s.dy += dy
	s.over = over
	s.handler.OnDragMove(MoveEvent{ActiveID: s.active, OverID: over, DeltaX: s.dx, DeltaY: s.dy})
}

// End drops the item and returns the handler's error. The session is
// reset either way.
func (s *Session) End(ctx context.Context) error {
	if s.active == "" {
		return nil
	}
	ev := EndEvent{ActiveID: s.active, OverID: s.over, DeltaX: s.dx, DeltaY: s.dy}
	s.reset()
	return s.handler.OnDragEnd(ctx, ev)
}

// Cancel abandons the drag without calling OnDragEnd.
func (s *Session) Cancel() {
	if s.active != "" {
		s.reset()
	}
}

// Active returns the id being dragged.
func (s *Session) Active() (string, bool) { return s.active, s.active != "" }

// Over returns the current drop target.
func (s *Session) Over() string { return s.over }

// Delta returns the accumulated offset of the drag.
func (s *Session) Delta() (float64, float64) { return s.dx, s.dy }

func (s *Session) Editable() bool { return s.editable }

func (s *Session) reset() {
	s.active, s.over, s.dx, s.dy = "", "", 0, 0
	s.setDragging(false)
}

func (s *Session) setDragging(d bool) {
	if s.onDragging != nil {
		s.onDragging(d)
	}
}
