package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridreach/internal/geom"
	"github.com/vovakirdan/gridreach/internal/grid"
	"github.com/vovakirdan/gridreach/internal/occupancy"
	"github.com/vovakirdan/gridreach/internal/render"
	"github.com/vovakirdan/gridreach/internal/scenario"
	"github.com/vovakirdan/gridreach/internal/search"
	"github.com/vovakirdan/gridreach/internal/storage"
)

var (
	flagReachFrom   string
	flagReachUnit   string
	flagReachBudget int
	flagReachNoMap  bool
)

var reachCmd = &cobra.Command{
	Use:   "reach <scenario>",
	Short: "Show reachable cells",
	Long: `Show every cell that can be reached within a movement budget.

Without --from or --unit every unit in the scenario is queried and a
summary is printed. With a single start the map is drawn with the cost
of each reachable cell.

Budget selection:
  - --budget when given
  - otherwise the unit's own budget
  - otherwise search.default_budget from the config
The result is capped at search.max_budget.

Examples:
  gridreach reach courtyard
  gridreach reach courtyard --unit scout
  gridreach reach courtyard --from 2,2 --budget 3
  gridreach reach watchtower --from 0,0,1`,
	Args: cobra.ExactArgs(1),
	Run:  runReach,
}

func init() {
	reachCmd.Flags().StringVar(&flagReachFrom, "from", "", "Start cell as x,y or x,y,z")
	reachCmd.Flags().StringVar(&flagReachUnit, "unit", "", "Start at this unit's cell")
	reachCmd.Flags().IntVar(&flagReachBudget, "budget", -1, "Movement budget (default: unit or config)")
	reachCmd.Flags().BoolVar(&flagReachNoMap, "no-map", false, "Print only the summary")
}

func runReach(cmd *cobra.Command, args []string) {
	scn := resolveScenario(args[0])
	g, tracker := scn.Build()

	store := openHistory()
	if store != nil {
		defer store.Close()
	}

	from, hasFrom := parseLocationFlag("from", flagReachFrom)
	switch {
	case hasFrom:
		if !g.InBounds(from) {
			exitf("start %v is outside the %dx%d grid", from, scn.Width, scn.Height)
		}
		budget := budgetFor(flagReachBudget, 0, false)
		reachOne(scn, g, tracker, store, "cell", from, budget)

	case flagReachUnit != "":
		u, ok := scn.Unit(flagReachUnit)
		if !ok {
			exitf("scenario %q has no unit %q", scn.ID, flagReachUnit)
		}
		reachOne(scn, g, tracker, store, u.ID, u.At, budgetFor(flagReachBudget, u.Budget, true))

	default:
		if len(scn.Units) == 0 {
			exitf("scenario %q has no units; use --from", scn.ID)
		}
		reachAll(scn, g, store)
	}
}

func reachOne(scn scenario.Scenario, g *grid.Grid, tracker *occupancy.Tracker, store *storage.Store, label string, from geom.Location, budget int) {
	res := search.Explore(g, from, budget)
	logger.Debug("reach computed", "scenario", scn.ID, "from", from, "budget", budget, "reached", res.Len())

	fmt.Printf("%s - %s %v, budget %d\n", scn.Name, label, from, budget)
	fmt.Printf("Reachable cells: %d\n", res.Len())

	if !flagReachNoMap {
		r := render.New(appConfig.Display)
		for z := range g.Dims().Layers {
			fmt.Println()
			if g.Volumetric() {
				fmt.Printf("Layer %d\n", z)
			}
			fmt.Println(r.Map(g, render.Overlay{
				Layer:     z,
				Start:     &from,
				Costs:     res.Costs,
				Occupancy: tracker,
			}))
		}
		fmt.Println()
		fmt.Println(r.Legend())
	}

	record(store, storage.QueryRecord{
		ScenarioID: scn.ID,
		Kind:       storage.KindReach,
		Start:      from,
		Budget:     budget,
		Reached:    res.Len(),
	})
}

// reachAll queries every unit. Units sharing a budget are searched
// concurrently over one snapshot of the grid.
func reachAll(scn scenario.Scenario, g *grid.Grid, store *storage.Store) {
	byBudget := make(map[int][]scenario.Unit)
	for _, u := range scn.Units {
		b := budgetFor(flagReachBudget, u.Budget, true)
		byBudget[b] = append(byBudget[b], u)
	}

	snapshot := g.Clone()
	sets := make(map[string]search.Set, len(scn.Units))
	for budget, units := range byBudget {
		starts := make([]geom.Location, len(units))
		for i, u := range units {
			starts[i] = u.At
		}
		for i, set := range search.ReachableFrom(snapshot, starts, budget) {
			sets[units[i].ID] = set
		}
	}

	fmt.Printf("%s - %d units\n\n", scn.Name, len(scn.Units))

	maxIDLen := 4 // "Unit" header
	for _, u := range scn.Units {
		maxIDLen = max(maxIDLen, len(u.ID))
	}
	fmt.Printf("  %-*s  %-10s  %-6s  %s\n", maxIDLen, "Unit", "At", "Budget", "Reaches")
	fmt.Printf("  %-*s  %-10s  %-6s  %s\n", maxIDLen, "----", "--", "------", "-------")

	seen := make(map[geom.Location]int)
	for _, u := range scn.Units {
		budget := budgetFor(flagReachBudget, u.Budget, true)
		set := sets[u.ID]
		fmt.Printf("  %-*s  %-10s  %-6d  %d\n", maxIDLen, u.ID, u.At.String(), budget, set.Len())
		for l := range set {
			seen[l]++
		}
		record(store, storage.QueryRecord{
			ScenarioID: scn.ID,
			Kind:       storage.KindReach,
			Start:      u.At,
			Budget:     budget,
			Reached:    set.Len(),
		})
	}

	var contested []geom.Location
	for l, n := range seen {
		if n > 1 {
			contested = append(contested, l)
		}
	}
	geom.SortLocations(contested)

	fmt.Println()
	fmt.Printf("Cells reachable by more than one unit: %d\n", len(contested))
	if len(contested) > 0 && len(contested) <= 20 {
		fmt.Printf("  %v\n", contested)
	}
	logger.Debug("units queried", "scenario", scn.ID, "units", len(sets), "budget_groups", len(byBudget))
}
