package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ava12/unitcalc/tree"
)

var forestCmd = &cobra.Command{
	Use:   "forest <expression>...",
	Short: "Print parse forest of an expression",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, e := newCalculator()
		if e != nil {
			return e
		}

		root, e := c.Parse(strings.Join(args, " "))
		if e != nil {
			return e
		}

		w := bufio.NewWriter(cmd.OutOrStdout())
		if e = tree.Dump(w, root); e != nil {
			return e
		}
		fmt.Fprintf(w, "%d node(s), %d tree(s)\n", tree.CountNodes(root), tree.CountTrees(root))
		return w.Flush()
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print expression grammar rules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, e := newCalculator()
		if e != nil {
			return e
		}

		for _, r := range c.Grammar().Rules {
			fmt.Fprintln(cmd.OutOrStdout(), r.Name)
		}
		return nil
	},
}
