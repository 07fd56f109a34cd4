package types

import "errors"

// ErrPromptCancelled is returned by a Prompter when the user aborts the
// whole run rather than answering. Files already written are kept.
var ErrPromptCancelled = errors.New("prompt cancelled by user")

// Prompter is the capability interface through which the engine asks for
// user decisions. A non-interactive implementation answers
// deterministically from a default policy so the engine behaves
// identically under CI.
type Prompter interface {
	// Confirm asks a yes/no question. def is the answer assumed when the
	// user just accepts the default.
	Confirm(message string, def bool) (bool, error)

	// Choose asks the user to pick one of options.
	Choose(message string, options []string) (string, error)
}
