package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Message affiché à l'arrêt par Ctrl+C / SIGTERM
const StoppedMessage = "subclip arrêté par l'utilisateur"

type terminalUI struct {
	out   io.Writer
	err   io.Writer
	fancy bool // emojis seulement dans un vrai terminal
}

// NewTerminal écrit sur la sortie standard et la sortie d'erreur du processus.
func NewTerminal() Interface {
	fancy := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return &terminalUI{out: os.Stdout, err: os.Stderr, fancy: fancy}
}

// NewWriters construit une UI sur des writers arbitraires (tests, sortie cobra).
func NewWriters(out, err io.Writer) Interface {
	return &terminalUI{out: out, err: err}
}

func (t *terminalUI) PrintBanner(ctx context.Context, triggerName, exitCombo string) {
	prefix := ""
	if t.fancy {
		prefix = "📋 "
	}
	fmt.Fprintf(t.out, "%ssubclip actif : %s pour résumer le presse-papier, %s dans cette console pour quitter.\n",
		prefix, triggerName, exitCombo)
}

func (t *terminalUI) PrintStopped(ctx context.Context) {
	fmt.Fprintln(t.out, StoppedMessage)
}

func (t *terminalUI) PrintInfo(ctx context.Context, s string) {
	fmt.Fprintln(t.out, s)
}

func (t *terminalUI) PrintError(ctx context.Context, s string) {
	if t.fancy {
		s = "❌ " + s
	}
	fmt.Fprintln(t.err, s)
}
