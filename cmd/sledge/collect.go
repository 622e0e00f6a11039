package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var collectCmd = &cobra.Command{
	Use:   "collect [flags] problem.sl",
	Short: "Collect the simple inductive types of a problem",
	Long:  `Collect walks the problem's goal, hypotheses, targets and atoms and prints every discovered instantiated inductive group`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCollect,
}

func runCollect(cmd *cobra.Command, args []string) error {
	res, err := runOne(cmd, args[0], nil)
	if err != nil {
		return err
	}
	if !quiet(cmd) {
		printBag(os.Stderr, res.Bag, useColor(cmd, os.Stderr))
	}

	out := cmd.OutOrStdout()
	for i, group := range res.Forest.Groups() {
		fmt.Fprintf(out, "group %d:\n", i)
		for _, inst := range group {
			fmt.Fprintf(out, "  %s := %s\n", inst.Name, inst.Type)
			for _, ctor := range inst.Ctors {
				fmt.Fprintf(out, "    %s : %s\n", ctor.Ctor, ctor.Type)
			}
		}
	}
	if showTimings(cmd) {
		fmt.Fprintf(os.Stderr, "%s", timingSummary(res))
	}
	return nil
}
