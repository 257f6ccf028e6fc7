package console

import (
	"strings"

	"github.com/chzyer/readline"
)

const (
	Yes = "y"
	No  = "n"
)

func YesOrNo(question string) (string, error) {
	return Prompt(question, Yes, No)
}

// Prompt reads a line from the terminal. With constraints the first one is
// the default, shown uppercase; any answer outside the set falls back to it.
func Prompt(question string, constraints ...string) (string, error) {
	if len(constraints) == 0 {
		rl, err := readline.New(question)
		if err != nil {
			return "", err
		}
		defer func() { _ = rl.Close() }()
		return rl.Readline()
	}
	choices := append([]string{strings.ToUpper(constraints[0])}, constraints[1:]...)
	rl, err := readline.New(question + " [" + strings.Join(choices, "/") + "]:")
	if err != nil {
		return "", err
	}
	defer func() { _ = rl.Close() }()
	response, err := rl.Readline()
	if err != nil {
		return "", err
	}
	normalized := strings.ToLower(strings.TrimSpace(response))
	for _, c := range constraints {
		if normalized == c {
			return normalized, nil
		}
	}
	return constraints[0], nil
}
