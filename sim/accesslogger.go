package sim

import (
	"log"
)

// AccessLogger is a hook that prints one line per processed access, the
// access label followed by its outcome, in trace order.
type AccessLogger struct {
	LogHookBase
}

// NewAccessLogger returns a new AccessLogger which will write to the logger
func NewAccessLogger(logger *log.Logger) *AccessLogger {
	l := new(AccessLogger)
	l.Logger = logger
	return l
}

// Func writes the access label and outcome into the logger
func (l *AccessLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosAccessDone {
		return
	}

	result, ok := ctx.Item.(AccessResult)
	if !ok {
		return
	}

	l.Printf("%s %s", result.Access.Label, result.Outcome)
}
