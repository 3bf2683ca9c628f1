package shell

import "fmt"

// Side-effect markers the UI may interpret. Ignoring them never
// changes core behavior.
const (
	// EffectClearScreen asks the UI to wipe its scrollback
	EffectClearScreen = "clearScreen"
	// EffectMatrix asks the UI to run its matrix rain animation
	EffectMatrix = "matrix"
)

// Result is the sole channel between a command and the executor/UI:
// rendered output, a success flag, a numeric exit code and optional
// side-effect markers. It is immutable once constructed.
//
// A result may also be deferred: the digest commands compute off the
// executing goroutine and hand back a pending channel. The executor
// resolves every result before returning it, so callers always see a
// completed one.
type Result struct {
	Output   string
	OK       bool
	ExitCode int
	Effects  []string

	wait <-chan Result
}

// Success builds a successful result with exit code 0.
func Success(output string) Result {
	return Result{Output: output, OK: true}
}

// Failure builds a failed result with the given exit code.
func Failure(output string, code int) Result {
	return Result{Output: output, OK: false, ExitCode: code}
}

// Errorf builds a failed result (exit code 1) with a formatted message.
func Errorf(format string, args ...interface{}) Result {
	return Failure(fmt.Sprintf(format, args...)+"\n", 1)
}

// Deferred wraps a pending computation. The channel must eventually
// deliver exactly one completed result.
func Deferred(ch <-chan Result) Result {
	return Result{wait: ch}
}

// resolve blocks until a deferred result completes. Completed results
// pass through unchanged.
func (r Result) resolve() Result {
	if r.wait != nil {
		return <-r.wait
	}
	return r
}

// withEffect returns a copy carrying an extra side-effect marker.
func (r Result) withEffect(effect string) Result {
	r.Effects = append(append([]string(nil), r.Effects...), effect)
	return r
}
