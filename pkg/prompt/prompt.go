package prompt

import (
	"github.com/AlecAivazis/survey/v2"
)

// Prompter asks the user to confirm an action before it runs.
type Prompter interface {
	// Confirm asks the given yes/no question. def is the answer
	// used when the user presses enter without typing anything.
	Confirm(message string, def bool) (bool, error)
}

// Terminal prompts on the controlling terminal.
type Terminal struct{}

func NewTerminal() *Terminal {
	return &Terminal{}
}

func (t *Terminal) Confirm(message string, def bool) (bool, error) {
	p := &survey.Confirm{
		Message: message,
		Default: def,
	}
	confirmed := false
	if err := survey.AskOne(p, &confirmed); err != nil {
		return false, err
	}
	return confirmed, nil
}

// AutoApprove answers yes to every question without prompting,
// for use with the -no-confirm flag.
type AutoApprove struct{}

func (AutoApprove) Confirm(message string, def bool) (bool, error) {
	return true, nil
}
