package plan

import "log"

// Notifier receives advisory diagnostics from Compute: corrections the
// pipeline applied that the operator should know about but that do not
// invalidate the result. Implementations must be safe for concurrent
// use if the planner is shared.
type Notifier interface {
	Advise(msg string)
}

// LogNotifier writes advisories to the standard logger.
type LogNotifier struct {
	Prefix string
}

func (l LogNotifier) Advise(msg string) {
	log.Printf("%s%s", l.Prefix, msg)
}

var defaultNotifier Notifier = LogNotifier{Prefix: "[plan] "}

// MultiNotifier fans one advisory out to several sinks, so a caller can
// route the same text to a log and to a user-facing warning channel.
type MultiNotifier []Notifier

func (m MultiNotifier) Advise(msg string) {
	for _, n := range m {
		n.Advise(msg)
	}
}

// Recorder collects advisories in order. Useful in tests and for
// echoing corrections back in API responses.
type Recorder struct {
	Advisories []string
}

func (r *Recorder) Advise(msg string) {
	r.Advisories = append(r.Advisories, msg)
}
