package master

type resultKind uint8

const (
	kindContinue resultKind = iota
	kindStop
	kindStopWithError
)

// Result is returned by every Handler callback and decides whether the
// watcher keeps waiting for changes.
type Result struct {
	kind resultKind
	err  error
}

var (
	// Continue waits for the next clipboard change.
	Continue = Result{kind: kindContinue}
	// Stop ends Run successfully.
	Stop = Result{kind: kindStop}
)

// StopWithError ends Run and makes it return err. A nil err behaves as Stop.
func StopWithError(err error) Result {
	if err == nil {
		return Stop
	}
	return Result{kind: kindStopWithError, err: err}
}

// IsContinue reports whether the watcher should keep running.
func (r Result) IsContinue() bool { return r.kind == kindContinue }

// Err returns the error carried by StopWithError, nil otherwise.
func (r Result) Err() error { return r.err }

func (r Result) String() string {
	switch r.kind {
	case kindContinue:
		return "Continue"
	case kindStop:
		return "Stop"
	default:
		return "StopWithError(" + r.err.Error() + ")"
	}
}

// outcome converts r into loop control: stop reports whether the loop
// must exit, err is what Run returns in that case.
func (r Result) outcome() (stop bool, err error) {
	switch r.kind {
	case kindContinue:
		return false, nil
	case kindStop:
		return true, nil
	default:
		return true, r.err
	}
}
