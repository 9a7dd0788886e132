package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridreach/internal/geom"
	"github.com/vovakirdan/gridreach/internal/render"
	"github.com/vovakirdan/gridreach/internal/search"
	"github.com/vovakirdan/gridreach/internal/storage"
)

var (
	flagPathFrom   string
	flagPathTo     string
	flagPathUnit   string
	flagPathBudget int
)

var pathCmd = &cobra.Command{
	Use:   "path <scenario>",
	Short: "Show the cheapest route to a cell",
	Long: `Find the cheapest route from a start cell or unit to a target cell
within the movement budget, and print each step with its cost.

Examples:
  gridreach path courtyard --unit scout --to 3,2
  gridreach path courtyard --from 0,0 --to 5,0 --budget 8
  gridreach path watchtower --unit archer --to 0,0,1`,
	Args: cobra.ExactArgs(1),
	Run:  runPath,
}

func init() {
	pathCmd.Flags().StringVar(&flagPathFrom, "from", "", "Start cell as x,y or x,y,z")
	pathCmd.Flags().StringVar(&flagPathUnit, "unit", "", "Start at this unit's cell")
	pathCmd.Flags().StringVar(&flagPathTo, "to", "", "Target cell as x,y or x,y,z (required)")
	pathCmd.Flags().IntVar(&flagPathBudget, "budget", -1, "Movement budget (default: unit or config)")
	pathCmd.MarkFlagRequired("to")
}

func runPath(cmd *cobra.Command, args []string) {
	scn := resolveScenario(args[0])
	g, tracker := scn.Build()

	to, _ := parseLocationFlag("to", flagPathTo)
	if !g.InBounds(to) {
		exitf("target %v is outside the grid", to)
	}

	var (
		from   geom.Location
		budget int
		label  = "cell"
	)
	if f, ok := parseLocationFlag("from", flagPathFrom); ok {
		from = f
		budget = budgetFor(flagPathBudget, 0, false)
	} else {
		id := flagPathUnit
		if id == "" && len(scn.Units) > 0 {
			id = scn.Units[0].ID
		}
		u, ok := scn.Unit(id)
		if !ok {
			exitf("need --from or a valid --unit")
		}
		from, label = u.At, u.ID
		budget = budgetFor(flagPathBudget, u.Budget, true)
	}
	if !g.InBounds(from) {
		exitf("start %v is outside the grid", from)
	}

	store := openHistory()
	if store != nil {
		defer store.Close()
	}

	res := search.Explore(g, from, budget)
	path, cost, found := res.Path(to)
	logger.Debug("path computed", "scenario", scn.ID, "from", from, "to", to, "budget", budget, "found", found)

	target := to
	q := storage.QueryRecord{
		ScenarioID: scn.ID,
		Kind:       storage.KindPath,
		Start:      from,
		Budget:     budget,
		Reached:    res.Len(),
		Target:     &target,
		PathCost:   -1,
	}

	fmt.Printf("%s - %s %v to %v, budget %d\n", scn.Name, label, from, to, budget)
	if !found {
		record(store, q)
		fmt.Printf("No route within budget. %d cells are reachable.\n", res.Len())
		if limit := appConfig.Search.MaxBudget; limit > budget && !search.Reachable(g, from, limit).Contains(to) {
			fmt.Println("The target cannot be reached at any budget up to the configured maximum.")
		}
		return
	}
	q.PathCost = cost
	record(store, q)

	fmt.Println()
	fmt.Printf("  %-4s  %-10s  %-4s  %s\n", "Step", "Cell", "Cost", "Total")
	fmt.Printf("  %-4s  %-10s  %-4s  %s\n", "----", "----", "----", "-----")
	total := 0
	for i, l := range path {
		stepCost := 0
		if i > 0 {
			stepCost, _ = g.Cost(path[i-1], l)
			total += stepCost
		}
		dir := ""
		if i > 0 {
			if d, err := geom.DirectionBetween(path[i-1], l); err == nil {
				dir = d.String()
			}
		}
		fmt.Printf("  %-4d  %-10s  %-4d  %d %s\n", i, l.String(), stepCost, total, dir)
	}
	fmt.Println()
	fmt.Printf("Total cost: %d of %d\n", cost, budget)

	r := render.New(appConfig.Display)
	layers := make(map[int]bool)
	for _, l := range path {
		layers[l.Z] = true
	}
	for z := range g.Dims().Layers {
		if !layers[z] {
			continue
		}
		fmt.Println()
		if g.Volumetric() {
			fmt.Printf("Layer %d\n", z)
		}
		fmt.Println(r.Map(g, render.Overlay{
			Layer:     z,
			Start:     &from,
			Costs:     res.Costs,
			Path:      path,
			Occupancy: tracker,
		}))
	}
}
