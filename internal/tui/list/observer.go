package listview

import tea "github.com/charmbracelet/bubbletea"

// VisibleFunc builds the message sent when the observed item becomes visible.
type VisibleFunc func(index int) tea.Msg

// Observer watches a single item index and fires when it enters the visible
// range. Observe acquires the observation and releases any previous one;
// Disconnect releases it. Firing is edge-triggered: the callback runs once each
// time the target moves from outside to inside the range.
type Observer struct {
	target       int
	callback     VisibleFunc
	active       bool
	intersecting bool
}

// Observe attaches the observer to index, releasing the previous target first.
// The intersection state of the new target starts as "not visible", so a target
// that is already on screen fires on the next Notify.
func (o *Observer) Observe(index int, callback VisibleFunc) {
	o.Disconnect()
	if index < 0 || callback == nil {
		return
	}
	o.target = index
	o.callback = callback
	o.active = true
}

// Disconnect releases the current observation. It is safe to call repeatedly.
func (o *Observer) Disconnect() {
	o.active = false
	o.intersecting = false
	o.callback = nil
	o.target = -1
}

// Active reports whether an observation is held.
func (o *Observer) Active() bool {
	return o.active
}

// Target returns the observed index, or -1 when disconnected.
func (o *Observer) Target() int {
	if !o.active {
		return -1
	}
	return o.target
}

// Notify reports a new visible range [from, to) and returns the callback
// command when the target has just entered it.
func (o *Observer) Notify(from, to int) tea.Cmd {
	if !o.active {
		return nil
	}

	visible := o.target >= from && o.target < to
	entered := visible && !o.intersecting
	o.intersecting = visible
	if !entered {
		return nil
	}

	cb, idx := o.callback, o.target
	return func() tea.Msg {
		return cb(idx)
	}
}
