package sim

import (
	"log"
)

// A LogHook is a hook that is responsible for writing information from the
// simulation to a logger
type LogHook interface {
	Hook
}

// LogHookBase provides the common logic for all LogHooks
type LogHookBase struct {
	*log.Logger
}
