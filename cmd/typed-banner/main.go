// typed-banner plays the portfolio's hero typing effect in a terminal.
//
// With no --phrase flags it cycles the same phrases the site shows.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/dtrivino/portfolio/internal/banner"
	"github.com/dtrivino/portfolio/internal/content"
	"github.com/dtrivino/portfolio/internal/typed"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flagSet := pflag.NewFlagSet("typed-banner", pflag.ContinueOnError)
	phrases := flagSet.StringArray("phrase", nil, "phrase to type (repeatable)")
	prefix := flagSet.String("prefix", "I'm a ", "text shown before the typed phrase")
	speed := flagSet.Float64("speed", 1, "delay multiplier, below 1 is faster")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if *speed <= 0 {
		return fmt.Errorf("--speed must be positive, got %v", *speed)
	}

	list := *phrases
	if len(list) == 0 {
		list = content.HeroPhrases
	}

	model, err := banner.New(list, banner.Options{
		Prefix: *prefix,
		Timing: typed.DefaultTiming.Scale(*speed),
	})
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
