package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var factsCmd = &cobra.Command{
	Use:   "facts [flags] problem.sl",
	Short: "Print the ground inhabitation facts of a problem",
	Long:  `Facts extracts inhabitation evidence from the problem's hypotheses and grounds it against the declared atomic types`,
	Args:  cobra.ExactArgs(1),
	RunE:  runFacts,
}

func runFacts(cmd *cobra.Command, args []string) error {
	res, err := runOne(cmd, args[0], nil)
	if err != nil {
		return err
	}
	if !quiet(cmd) {
		printBag(os.Stderr, res.Bag, useColor(cmd, os.Stderr))
	}

	out := cmd.OutOrStdout()
	for _, fact := range res.Facts {
		fmt.Fprintf(out, "%s : %s\n", fact.Proof, fact.Type)
	}
	if showTimings(cmd) {
		fmt.Fprintf(os.Stderr, "%s", timingSummary(res))
	}
	return nil
}
