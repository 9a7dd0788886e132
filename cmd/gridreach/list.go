package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridreach/internal/scenario"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available scenarios",
	Long: `Shows the built-in scenarios together with those found in the scenario
directory. Local files replace built-ins with the same ID.`,
	Run: runList,
}

func runList(cmd *cobra.Command, args []string) {
	scenarios, err := scenario.Catalog(scenarioDir())
	if err != nil {
		exitf("%v", err)
	}

	if len(scenarios) == 0 {
		fmt.Println("No scenarios available.")
		return
	}

	fmt.Println("Available scenarios:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range scenarios {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-8s  %-5s  %s\n", maxIDLen, "ID", "Size", "Units", "Name")
	fmt.Printf("  %-*s  %-8s  %-5s  %s\n", maxIDLen, "--", "----", "-----", "----")

	for _, s := range scenarios {
		size := fmt.Sprintf("%dx%d", s.Width, s.Height)
		if s.Volumetric() {
			size += fmt.Sprintf("x%d", s.Layers)
		}
		name := s.Name
		if s.FilePath != "" {
			name += " (" + s.FilePath + ")"
		}
		fmt.Printf("  %-*s  %-8s  %-5d  %s\n", maxIDLen, s.ID, size, len(s.Units), name)
	}

	fmt.Println()
	fmt.Println("Run 'gridreach reach <id>' to see what its units can reach.")
}
