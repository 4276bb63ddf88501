package history

// DefaultWindowLimit bounds the number of turns kept as model context.
const DefaultWindowLimit = 10

// Window is the in-memory tail of recent turns used as completion
// context. Appends are unbounded; the caller trims with Truncate after
// a completed exchange, which mirrors the session loop's contract that
// the window only shrinks once an exchange has actually happened.
type Window struct {
	limit int
	turns []Turn
}

// NewWindow seeds a window, keeping only the last limit seed turns.
func NewWindow(limit int, seed []Turn) *Window {
	if limit <= 0 {
		limit = DefaultWindowLimit
	}
	w := &Window{limit: limit}
	w.turns = append(w.turns, seed...)
	w.Truncate()
	return w
}

// Append adds one turn to the back of the window.
func (w *Window) Append(t Turn) {
	w.turns = append(w.turns, t)
}

// Truncate drops the oldest turns until the window fits its limit.
func (w *Window) Truncate() {
	if len(w.turns) > w.limit {
		w.turns = w.turns[len(w.turns)-w.limit:]
	}
}

// Turns returns a copy of the window contents in conversation order.
func (w *Window) Turns() []Turn {
	out := make([]Turn, len(w.turns))
	copy(out, w.turns)
	return out
}

// Len reports the number of turns currently held.
func (w *Window) Len() int {
	return len(w.turns)
}

// Limit reports the configured bound.
func (w *Window) Limit() int {
	return w.limit
}
