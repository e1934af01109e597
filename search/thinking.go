package search

// ThinkingFunc is told when a search starts (true) and stops (false). A nil
// ThinkingFunc is ignored.
type ThinkingFunc func(thinking bool)

// Notify calls f if it is set.
func (f ThinkingFunc) Notify(thinking bool) {
	if f != nil {
		f(thinking)
	}
}
