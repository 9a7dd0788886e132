package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridreach/internal/platform/tui"
	"github.com/vovakirdan/gridreach/internal/scenario"
	"github.com/vovakirdan/gridreach/internal/storage"
)

var (
	flagHistoryLimit       int
	flagHistoryClear       bool
	flagHistoryInteractive bool
)

var historyCmd = &cobra.Command{
	Use:   "history [scenario]",
	Short: "Show recorded queries",
	Long: `Display the most recent reach and path queries, for every scenario or
for a single one.

Examples:
  gridreach history
  gridreach history courtyard --limit 50
  gridreach history --interactive
  gridreach history courtyard --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of queries to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete recorded queries")
	historyCmd.Flags().BoolVarP(&flagHistoryInteractive, "interactive", "i", false, "Browse history in a table view")
}

func runHistory(cmd *cobra.Command, args []string) {
	var scenarioID string
	if len(args) == 1 {
		scenarioID = args[0]
	}

	store, err := storage.Open(appConfig.Storage.DBPath)
	if err != nil {
		exitf("opening history database: %v", err)
	}
	defer store.Close()

	if flagHistoryClear {
		n, err := store.ClearHistory(scenarioID)
		if err != nil {
			exitf("%v", err)
		}
		fmt.Printf("Deleted %d queries.\n", n)
		return
	}

	if flagHistoryInteractive {
		ids := []string{scenarioID}
		if scenarioID == "" {
			ids = catalogIDs()
		}
		width, height := terminalSize()
		if err := tui.RunHistory(store, ids, width, height); err != nil {
			exitf("%v", err)
		}
		return
	}

	var queries []storage.QueryRecord
	if scenarioID == "" {
		queries, err = store.RecentQueries(flagHistoryLimit)
	} else {
		queries, err = store.QueriesForScenario(scenarioID, flagHistoryLimit)
	}
	if err != nil {
		exitf("%v", err)
	}

	if scenarioID == "" {
		fmt.Println("Recent queries")
	} else {
		fmt.Printf("Recent queries - %s\n", scenarioID)
	}
	fmt.Println()

	if len(queries) == 0 {
		fmt.Println("No queries recorded yet.")
		fmt.Println()
		fmt.Println("Run 'gridreach reach <id>' to record the first one.")
		return
	}

	header := []string{"Date", "Scenario", "Kind", "Start", "Budget", "Reached", "Target", "Cost"}
	rows := tui.HistoryRows(queries)
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}
	printRow := func(cells []string) {
		fmt.Print(" ")
		for i, cell := range cells {
			fmt.Printf(" %-*s", widths[i], cell)
		}
		fmt.Println()
	}
	printRow(header)
	for _, row := range rows {
		printRow(row)
	}

	if scenarioID != "" {
		stats, err := store.ScenarioStats(scenarioID)
		if err == nil && stats.Queries > 0 {
			fmt.Println()
			fmt.Printf("Queries: %d (%d path)  Avg reached: %.1f  Max reached: %d\n",
				stats.Queries, stats.PathQueries, stats.AvgReached, stats.MaxReached)
		}
	}
}

// catalogIDs lists scenario IDs for the history tabs. Errors yield no tabs.
func catalogIDs() []string {
	scenarios, err := scenario.Catalog(scenarioDir())
	if err != nil {
		logger.Warn("could not load scenarios", "error", err)
		return nil
	}
	ids := make([]string, len(scenarios))
	for i, s := range scenarios {
		ids[i] = s.ID
	}
	return ids
}
