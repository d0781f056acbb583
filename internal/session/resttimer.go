package session

// Rest timer durations offered in settings, in seconds.
var RestPresets = []int{30, 60, 90, 120, 180}

// DefaultRestSeconds is used until the user picks a preset.
const DefaultRestSeconds = 60

// RestTimer is the countdown that runs between completed sets. It is
// transient: a reload simply loses an in-progress countdown.
type RestTimer struct {
	counting  bool
	remaining int
	duration  int
}

func NewRestTimer() *RestTimer {
	return &RestTimer{duration: DefaultRestSeconds}
}

func (r *RestTimer) Counting() bool { return r.counting }
func (r *RestTimer) Remaining() int { return r.remaining }
func (r *RestTimer) Duration() int  { return r.duration }

// Start begins a countdown at the configured duration.
func (r *RestTimer) Start() {
	r.remaining = r.duration
	r.counting = true
}

// Tick counts down one second. It reports true exactly once, on the tick
// that reaches zero; the caller uses that to fire the rest-over alert.
func (r *RestTimer) Tick() (expired bool) {
	if !r.counting {
		return false
	}
	r.remaining--
	if r.remaining <= 0 {
		r.remaining = 0
		r.counting = false
		return true
	}
	return false
}

// Skip abandons the countdown without firing the alert.
func (r *RestTimer) Skip() {
	r.counting = false
	r.remaining = 0
}

// SetDuration changes the configured duration. A running countdown
// restarts at the new duration rather than being prorated.
func (r *RestTimer) SetDuration(seconds int) {
	if seconds <= 0 {
		seconds = DefaultRestSeconds
	}
	r.duration = seconds
	if r.counting {
		r.remaining = seconds
	}
}
