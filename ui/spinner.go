package ui

import (
	"github.com/charmbracelet/huh/spinner"
)

// SpinnerAction runs an action with a spinner, returning any error from the action
type SpinnerAction func() error

// RunWithSpinner runs an action with a spinner display.
// Outside a terminal, or in verbose mode where the action prints its own
// progress, it just runs the action.
func (p *Printer) RunWithSpinner(title string, action SpinnerAction) error {
	if !IsTTY() || p.verbose {
		return action()
	}

	var actionErr error
	spinErr := spinner.New().
		Title(title).
		Action(func() {
			actionErr = action()
		}).
		Run()

	if spinErr != nil {
		return spinErr
	}
	return actionErr
}
