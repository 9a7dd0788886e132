package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridreach/internal/platform/tui"
	"github.com/vovakirdan/gridreach/internal/scenario"
)

var exploreCmd = &cobra.Command{
	Use:   "explore [scenario]",
	Short: "Explore a scenario interactively",
	Long: `Open a scenario in the interactive explorer. Without an argument a
scenario picker is shown first.

Controls:
  Arrows/WASD, Q E Z C  - Move the cursor (diagonals on Q E Z C)
  +/-                   - Change the movement budget
  Tab/Shift+Tab         - Select the next or previous unit
  Enter                 - Move the selected unit to the cursor
  X / T                 - Toggle obstruction / difficult terrain
  L                     - Next layer
  O                     - Search from the cursor instead of the unit
  R                     - Reset the scenario
  Esc/B                 - Back
  Ctrl+C                - Quit

Examples:
  gridreach explore
  gridreach explore courtyard
  gridreach explore ./maps/bridge.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runExplore,
}

func runExplore(cmd *cobra.Command, args []string) {
	store := openHistory()
	if store != nil {
		defer store.Close()
	}

	var err error
	if len(args) == 1 {
		scn := resolveScenario(args[0])
		err = tui.Run(scn, appConfig, store)
	} else {
		scenarios, catErr := scenario.Catalog(scenarioDir())
		if catErr != nil {
			exitf("%v", catErr)
		}
		if len(scenarios) == 0 {
			exitf("no scenarios available")
		}
		err = tui.RunPicker(scenarios, appConfig, store)
	}
	if err != nil {
		exitf("running explorer: %v", err)
	}
}
