package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sledge/internal/export"
	"sledge/internal/pipeline"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] problem.sl|dir",
	Short: "Run the full pipeline on a problem file or directory",
	Long:  `Check collects inductive groups and grounds inhabitation facts, optionally exporting snapshots for the downstream reifier`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("out", "", "write msgpack snapshot(s) to this file (or directory for directory runs)")
	checkCmd.Flags().Bool("ui", false, "show interactive progress for directory runs")
	checkCmd.Flags().Int("jobs", 0, "number of parallel workers for directory runs (0 = manifest or all CPUs)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return checkDir(cmd, path)
	}
	return checkFile(cmd, path)
}

func checkFile(cmd *cobra.Command, path string) error {
	res, err := runOne(cmd, path, nil)
	if err != nil {
		return err
	}
	if !quiet(cmd) {
		printBag(os.Stderr, res.Bag, useColor(cmd, os.Stderr))
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d groups, %d facts\n", path, res.Forest.GroupCount(), len(res.Facts))
	if showTimings(cmd) {
		fmt.Fprintf(os.Stderr, "%s", timingSummary(res))
	}

	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" {
		return nil
	}
	return export.WriteFile(outPath, export.BuildSnapshot(res))
}

func checkDir(cmd *cobra.Command, dir string) error {
	manifest, err := loadManifest(dir)
	if err != nil {
		return err
	}
	jobs, _ := cmd.Flags().GetInt("jobs")
	if jobs <= 0 {
		jobs = manifest.Jobs
	}
	opts := pipeline.Options{MaxDiagnostics: maxDiagnostics(cmd, manifest)}

	var results []pipeline.DirResult
	wantUI, _ := cmd.Flags().GetBool("ui")
	if wantUI && isTerminal(os.Stdout) {
		results, err = runDirWithUI(cmdContext(cmd), dir, jobs, opts)
	} else {
		results, err = pipeline.RunDir(cmdContext(cmd), dir, jobs, opts)
	}
	if err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("out")
	out := cmd.OutOrStdout()
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(out, "%s: %v\n", r.Path, r.Err)
			continue
		}
		if !quiet(cmd) {
			printBag(os.Stderr, r.Result.Bag, useColor(cmd, os.Stderr))
		}
		fmt.Fprintf(out, "%s: %d groups, %d facts\n", r.Path, r.Result.Forest.GroupCount(), len(r.Result.Facts))
		if outDir != "" {
			name := strings.TrimSuffix(filepath.Base(r.Path), pipeline.ProblemExt) + ".mp"
			if err := export.WriteFile(filepath.Join(outDir, name), export.BuildSnapshot(r.Result)); err != nil {
				return err
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d problems failed", failed, len(results))
	}
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
