package store

// phase is the position of a slice's most recent operation in its
// idle → pending → fulfilled | rejected cycle.
type phase int

const (
	phaseIdle phase = iota
	phasePending
	phaseFulfilled
	phaseRejected
)

// lifecycle tracks one request cycle. Starting a new cycle supersedes any
// terminal state left by the previous one, so a stale error never coexists
// with a fresh pending request.
type lifecycle struct {
	phase phase
	err   string
}

func (l *lifecycle) start() {
	l.phase = phasePending
	l.err = ""
}

func (l *lifecycle) fulfill() {
	l.phase = phaseFulfilled
	l.err = ""
}

func (l *lifecycle) reject(msg string) {
	l.phase = phaseRejected
	l.err = msg
}

// clearError drops the stored message without touching the phase, mirroring
// an explicit clear action from the view layer.
func (l *lifecycle) clearError() {
	l.err = ""
}

func (l lifecycle) loading() bool {
	return l.phase == phasePending
}

func (l lifecycle) errMessage() string {
	return l.err
}
