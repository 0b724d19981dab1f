// Package scroll decides whether a growing message list should follow
// its newest content.
package scroll

// DefaultThreshold is the distance from the bottom, in logical units,
// within which the list still counts as "at the bottom".
const DefaultThreshold = 100

// Decision is the reaction to a content change.
type Decision int

const (
	// AutoScroll means the view should move to the end.
	AutoScroll Decision = iota + 1
	// ShowJumpButton means the user has scrolled away; leave the view and
	// offer a jump to the bottom instead.
	ShowJumpButton
)

func (d Decision) String() string {
	switch d {
	case AutoScroll:
		return "auto_scroll"
	case ShowJumpButton:
		return "show_jump_button"
	default:
		return "unknown"
	}
}

// Tracker remembers how far the view is from the bottom. It is not safe
// for concurrent use; it belongs to the UI loop.
type Tracker struct {
	threshold   int
	distance    int
	jumpVisible bool
}

// NewTracker creates a Tracker. A non-positive threshold uses DefaultThreshold.
func NewTracker(threshold int) *Tracker {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Tracker{threshold: threshold}
}

// Observe records a scroll position. offset is the top of the viewport
// within the content.
func (t *Tracker) Observe(offset, viewportHeight, contentHeight int) {
	d := contentHeight - (offset + viewportHeight)
	if d < 0 {
		d = 0
	}
	t.distance = d
	if t.nearBottom() {
		t.jumpVisible = false
	}
}

// ContentChanged decides what to do after the list changed, based on
// the distance recorded before the change.
func (t *Tracker) ContentChanged() Decision {
	if t.nearBottom() {
		t.distance = 0
		t.jumpVisible = false
		return AutoScroll
	}
	t.jumpVisible = true
	return ShowJumpButton
}

// JumpToBottom records that the view was moved to the end.
func (t *Tracker) JumpToBottom() {
	t.distance = 0
	t.jumpVisible = false
}

// JumpVisible reports whether the jump-to-bottom affordance is shown.
func (t *Tracker) JumpVisible() bool {
	return t.jumpVisible
}

// Distance returns the last recorded distance from the bottom.
func (t *Tracker) Distance() int {
	return t.distance
}

// Threshold returns the configured threshold.
func (t *Tracker) Threshold() int {
	return t.threshold
}

func (t *Tracker) nearBottom() bool {
	return t.distance <= t.threshold
}
