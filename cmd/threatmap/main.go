package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-threatmap/pkg/document"
	"github.com/dd0wney/cluso-threatmap/pkg/enumeration"
	"github.com/dd0wney/cluso-threatmap/pkg/logging"
	"github.com/dd0wney/cluso-threatmap/pkg/model"
	"github.com/dd0wney/cluso-threatmap/pkg/render"
	"github.com/dd0wney/cluso-threatmap/pkg/threats"
)

var (
	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	violationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFF00"))
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: threatmap <command> [flags]

Commands:
  show          print a summary of the model
  check         lint the model; exit 1 when violations are found
  generate      run naive STRIDE enumeration over the model
  draw          emit the DFD as Graphviz DOT
  attack-trees  emit the attack-tree forest as Graphviz DOT

Common flags:
  -model <file>   model YAML file (required)
  -v              debug logging
`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	command := os.Args[1]

	fs := flag.NewFlagSet(command, flag.ExitOnError)
	modelPath := fs.String("model", "", "Model YAML file")
	verbose := fs.Bool("v", false, "Debug logging")
	write := fs.Bool("write", false, "Persist generated threats back to the model file (generate only)")
	output := fs.String("o", "", "Output file (draw and attack-trees; default stdout)")
	fs.Parse(os.Args[2:])

	if *modelPath == "" {
		fmt.Fprintln(os.Stderr, "❌ -model is required")
		usage()
	}

	logger := logging.NewDefaultLogger()
	if *verbose {
		logger.SetLevel(logging.DebugLevel)
	}

	tm, err := document.Load(*modelPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load model: %v\n", err)
		os.Exit(1)
	}
	tm.SetLogger(logger)

	switch command {
	case "show":
		runShow(tm)
	case "check":
		runCheck(tm)
	case "generate":
		runGenerate(tm, *modelPath, *write)
	case "draw":
		emit(render.DFDDot(tm.Diagram()), *output)
	case "attack-trees":
		for _, cycle := range threats.Cycles(tm.Threats()) {
			logger.Warn("child threat links form a cycle", logging.String("cycle", strings.Join(cycle, " -> ")))
		}
		emit(render.AttackTreeDot(tm.AttackForest(), tm.Threats()), *output)
	default:
		fmt.Fprintf(os.Stderr, "❌ Unknown command: %s\n", command)
		usage()
	}
}

func runShow(tm *model.ThreatModel) {
	fmt.Printf("Model: %s\n", tm.Name)
	if tm.Description != "" {
		fmt.Printf("  %s\n", tm.Description)
	}
	fmt.Printf("  Elements:    %d\n", len(tm.Elements()))
	fmt.Printf("  Dataflows:   %d\n", len(tm.Flows()))
	fmt.Printf("  Boundaries:  %d\n", len(tm.Boundaries()))
	fmt.Printf("  Threats:     %d\n", len(tm.Threats()))
	fmt.Printf("  Mitigations: %d\n", len(tm.Mitigations()))
}

func runCheck(tm *model.ThreatModel) {
	violations, passed := tm.Check()
	for _, v := range violations {
		fmt.Println(violationStyle.Render("  • " + v))
	}
	if !passed {
		fmt.Println(failStyle.Render(fmt.Sprintf("✗ %d violation(s)", len(violations))))
		os.Exit(1)
	}
	fmt.Println(passStyle.Render("✓ All checks passed"))
}

func runGenerate(tm *model.ThreatModel, path string, write bool) {
	generated, err := tm.GenerateThreats(enumeration.NewNaiveSTRIDE())
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Threat generation failed: %v\n", err)
		os.Exit(1)
	}
	if len(generated) == 0 {
		fmt.Println("No new threats found")
		return
	}
	fmt.Printf("Generated %d new threat(s):\n", len(generated))
	for _, t := range generated {
		fmt.Printf("  %s  %s\n", t.ID, t.Name)
	}
	if write {
		if err := document.Save(tm, path); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Failed to save model: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✅ Saved %s\n", path)
	}
}

func emit(dot, output string) {
	if output == "" {
		fmt.Print(dot)
		return
	}
	if err := os.WriteFile(output, []byte(dot), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to write %s: %v\n", output, err)
		os.Exit(1)
	}
	fmt.Printf("✅ Wrote %s\n", output)
}
