/*
unitcalc is a console calculator for physical quantities.
Usage is

	unitcalc [--catalog <file>] [--debug] [--no-color] [<expression> ...]

With arguments unitcalc evaluates joined arguments and prints the result,
otherwise it reads expressions from standard input line by line.

	unitcalc forest <expression> ...

prints parse forest of the expression, alternative derivations of ambiguous nodes are marked with |.

	unitcalc rules

prints rules of the expression grammar.

--catalog <file> loads unit catalog from TOML file instead of the embedded one;

--debug writes tokens, forest statistics, and results to standard error;

--no-color disables colored error messages.
*/
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ava12/unitcalc/calc"
	"github.com/ava12/unitcalc/units"
)

var (
	catalogFile string
	debug       bool
	noColor     bool
)

var rootCmd = &cobra.Command{
	Use:   "unitcalc [expression...]",
	Short: "Calculator for physical quantities",
	Long: `unitcalc evaluates arithmetic expressions with units of length, mass, and time
and their combinations, e.g. "9.81 m/s^2 * 80 kg" or "60 mph -> km/h".

Without arguments runs interactive session, type help for quick help.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "unit catalog file (TOML)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log evaluation details to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.AddCommand(forestCmd, rulesCmd)
}

func newCalculator() (*calc.Calculator, error) {
	registry := units.Default()
	if catalogFile != "" {
		var e error
		registry, e = units.LoadFile(catalogFile)
		if e != nil {
			return nil, e
		}
	}

	var opts []calc.Option
	if debug {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, calc.WithLogger(slog.New(handler)))
	}
	return calc.New(registry, opts...)
}

func run(cmd *cobra.Command, args []string) error {
	if noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}

	c, e := newCalculator()
	if e != nil {
		return e
	}

	if len(args) > 0 {
		q, e := c.Evaluate(strings.Join(args, " "))
		if e != nil {
			return e
		}

		fmt.Fprintln(cmd.OutOrStdout(), q.String())
		return nil
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	return newSession(c, cmd.InOrStdin(), cmd.OutOrStdout(), interactive).run()
}

func main() {
	if e := rootCmd.Execute(); e != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %s", e.Error()))
		os.Exit(1)
	}
}
