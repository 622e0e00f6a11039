package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sledge/internal/diag"
	"sledge/internal/pipeline"
	"sledge/internal/project"
)

// loadManifest reads the sledge.toml sitting next to the given
// problem file or directory, when one exists.
func loadManifest(path string) (project.Manifest, error) {
	dir := path
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		dir = filepath.Dir(path)
	}
	return project.LoadIfPresent(filepath.Join(dir, project.ManifestName))
}

// runOne executes the pipeline on a single problem file, applying
// manifest defaults and flag overrides.
func runOne(cmd *cobra.Command, path string, sink pipeline.ProgressSink) (*pipeline.Result, error) {
	manifest, err := loadManifest(path)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return pipeline.Run(path, withManifestAtoms(string(src), manifest), pipeline.Options{
		MaxDiagnostics: maxDiagnostics(cmd, manifest),
		Sink:           sink,
	})
}

// withManifestAtoms appends the manifest's atom list as extra (atom
// ...) forms, so manifest atoms and file atoms share one namespace.
func withManifestAtoms(src string, manifest project.Manifest) string {
	if len(manifest.Atoms) == 0 {
		return src
	}
	var b strings.Builder
	b.WriteString(src)
	for _, atom := range manifest.Atoms {
		b.WriteString("\n(atom ")
		b.WriteString(atom)
		b.WriteString(")")
	}
	return b.String()
}

func maxDiagnostics(cmd *cobra.Command, manifest project.Manifest) int {
	if n, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err == nil && n > 0 {
		return n
	}
	return manifest.MaxDiagnostics
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return q
}

func showTimings(cmd *cobra.Command) bool {
	t, _ := cmd.Root().PersistentFlags().GetBool("timings")
	return t
}

// timingSummary renders a result's phase report the way observ.Timer
// does.
func timingSummary(res *pipeline.Result) string {
	out := "timings:\n"
	for _, p := range res.Timing.Phases {
		out += fmt.Sprintf("  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			out += "  // " + p.Note
		}
		out += "\n"
	}
	out += fmt.Sprintf("  %-20s %7.2f ms\n", "total", res.Timing.TotalMS)
	return out
}

// printBag renders diagnostics, warnings and errors first.
func printBag(w io.Writer, bag *diag.Bag, colored bool) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	bag.Sort()
	sevColor := map[diag.Severity]*color.Color{
		diag.SevError:   color.New(color.FgRed, color.Bold),
		diag.SevWarning: color.New(color.FgYellow),
		diag.SevInfo:    color.New(color.FgCyan),
	}
	for _, d := range bag.Items() {
		label := fmt.Sprintf("%-7s %s", d.Severity, d.Code)
		if colored {
			if c, ok := sevColor[d.Severity]; ok {
				label = c.Sprint(label)
			}
		}
		fmt.Fprintf(w, "%s %s: %s\n", label, d.Subject, d.Message)
	}
}
