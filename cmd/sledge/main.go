package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sledge/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "sledge",
	Short: "Inductive collection and inhabitation bridge",
	Long:  `Sledge discovers simple inductive types in problem files and grounds inhabitation facts against their atomic types`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(factsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to keep (0 = manifest or default)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}
