package repl

import (
	"strings"

	"github.com/yndnr/respkv/internal/core/command"
)

var builtins = []string{"help", "exit", "quit"}

// Completer provides command completion for the REPL.
type Completer struct {
	commands []string
}

// NewCompleter creates a Completer over the server command table and
// the REPL built-ins.
func NewCompleter() *Completer {
	cmds := command.Names()
	cmds = append(cmds, builtins...)
	return &Completer{commands: cmds}
}

// Commands returns every completable word.
func (c *Completer) Commands() []string {
	return c.commands
}

// Complete returns completion suggestions for the given prefix.
// Matching ignores case so "mg" completes to "MGET".
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	for _, cmd := range c.commands {
		if len(prefix) <= len(cmd) && strings.EqualFold(cmd[:len(prefix)], prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
