// calc is an interactive terminal calculator. Each input line is a
// run of calculator keys ("5+3=", "12.5*4") or a single named key
// ("Enter", "Backspace", "Delete", "Escape"); both displays are
// printed after every line.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"calcpad/internal/engine"
	"calcpad/internal/keymap"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var errorReset time.Duration

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Interactive terminal calculator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.InOrStdin(), cmd.OutOrStdout(), errorReset)
		},
	}
	cmd.Flags().DurationVar(&errorReset, "error-reset", 2*time.Second, "how long an error stays on screen before the calculator clears itself")
	return cmd
}

func run(in io.Reader, out io.Writer, errorReset time.Duration) error {
	var mu sync.Mutex
	eng := engine.New()

	render := func() {
		primary, secondary := eng.Display()
		if secondary != "" {
			fmt.Fprintf(out, "  %s\n", secondary)
		}
		fmt.Fprintf(out, "> %s\n", primary)
	}

	armReset := func() {
		if !eng.InError() || errorReset <= 0 {
			return
		}
		time.AfterFunc(errorReset, func() {
			mu.Lock()
			defer mu.Unlock()
			if eng.InError() {
				eng.ClearAll()
				render()
			}
		})
	}

	fmt.Fprintln(out, `Type keys ("5+3=") or named keys (Enter, Backspace, Delete, Escape). "quit" exits.`)
	render()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "quit" || line == "exit" {
			return nil
		}

		mu.Lock()
		if err := applyLine(eng, line); err != nil {
			fmt.Fprintf(out, "! %v\n", err)
		}
		render()
		armReset()
		mu.Unlock()
	}
	return scanner.Err()
}

// applyLine feeds one input line to the engine: a whole-line named key
// when the keymap recognises it, otherwise one key per rune with
// spaces skipped.
func applyLine(eng *engine.Engine, line string) error {
	if ev, err := keymap.Translate(line); err == nil {
		return eng.Apply(ev)
	}

	for _, r := range line {
		if r == ' ' || r == '\t' {
			continue
		}
		ev, err := keymap.Translate(string(r))
		if err != nil {
			return err
		}
		if err := eng.Apply(ev); err != nil {
			return err
		}
	}
	return nil
}
