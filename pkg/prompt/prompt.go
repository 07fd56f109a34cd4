// Package prompt provides the Prompter implementations the engine
// consumes. Business logic never talks to a terminal directly: it asks
// through types.Prompter, so a deterministic implementation can stand in
// under CI and the core stays independently testable.
package prompt

import (
	"github.com/pterm/pterm"

	"github.com/getcodekit/codekit/pkg/types"
)

// Interactive asks the user through pterm prompts on the terminal.
type Interactive struct{}

// NewInteractive creates a terminal-backed Prompter.
func NewInteractive() *Interactive {
	return &Interactive{}
}

// Confirm implements types.Prompter.
func (p *Interactive) Confirm(message string, def bool) (bool, error) {
	return pterm.DefaultInteractiveConfirm.
		WithDefaultValue(def).
		Show(message)
}

// Choose implements types.Prompter.
func (p *Interactive) Choose(message string, options []string) (string, error) {
	return pterm.DefaultInteractiveSelect.
		WithOptions(options).
		Show(message)
}

// NonInteractive resolves every prompt deterministically from a supplied
// default policy, so batch and CI runs behave identically every time.
type NonInteractive struct {
	// ConfirmAnswer is returned for every Confirm call.
	ConfirmAnswer bool
}

// NewNonInteractive creates a Prompter that answers every confirmation
// with the given value and every choice with its first option.
func NewNonInteractive(confirmAnswer bool) *NonInteractive {
	return &NonInteractive{ConfirmAnswer: confirmAnswer}
}

// Confirm implements types.Prompter.
func (p *NonInteractive) Confirm(message string, def bool) (bool, error) {
	return p.ConfirmAnswer, nil
}

// Choose implements types.Prompter.
func (p *NonInteractive) Choose(message string, options []string) (string, error) {
	if len(options) == 0 {
		return "", nil
	}
	return options[0], nil
}

// Scripted replays a fixed sequence of answers; test use only. Once the
// script is exhausted it cancels, which surfaces accidental extra prompts.
type Scripted struct {
	Confirms []bool
	Choices  []string

	confirmIdx int
	choiceIdx  int
}

// Confirm implements types.Prompter.
func (p *Scripted) Confirm(message string, def bool) (bool, error) {
	if p.confirmIdx >= len(p.Confirms) {
		return false, types.ErrPromptCancelled
	}
	answer := p.Confirms[p.confirmIdx]
	p.confirmIdx++
	return answer, nil
}

// Choose implements types.Prompter.
func (p *Scripted) Choose(message string, options []string) (string, error) {
	if p.choiceIdx >= len(p.Choices) {
		return "", types.ErrPromptCancelled
	}
	choice := p.Choices[p.choiceIdx]
	p.choiceIdx++
	return choice, nil
}
