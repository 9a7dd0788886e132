// Package search computes budget-bounded reachability over a grid.
//
// The traversal is Dijkstra's algorithm with a cost ceiling: it explores
// every destination whose cheapest route from the start fits in the
// movement budget and never stops early for a particular target.
//
// The start location is always part of a result when it is in bounds and
// the budget is non-negative, so a zero budget yields exactly {start}.
// An out-of-bounds start or a negative budget yields an empty result.
package search

import (
	"container/heap"
	"slices"
	"sync"

	"github.com/vovakirdan/gridreach/internal/geom"
)

// Graph is the read-only view of a grid that the search needs.
// *grid.Grid satisfies it.
type Graph interface {
	InBounds(l geom.Location) bool
	VisitableNeighbors(l geom.Location) []geom.Location
	Cost(from, to geom.Location) (int, bool)
}

// Set is a set of locations.
type Set map[geom.Location]struct{}

// Contains reports whether l is in the set.
func (s Set) Contains(l geom.Location) bool {
	_, ok := s[l]
	return ok
}

// Len returns the number of locations in the set.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the locations in geom.Location order.
func (s Set) Sorted() []geom.Location {
	out := make([]geom.Location, 0, len(s))
	for l := range s {
		out = append(out, l)
	}
	geom.SortLocations(out)
	return out
}

// Costs returns the minimum accumulated cost of every location reachable
// from start within budget, including start at cost 0.
func Costs(g Graph, start geom.Location, budget int) map[geom.Location]int {
	costs, _ := run(g, start, budget)
	return costs
}

// Reachable returns every location whose cheapest route from start costs
// at most budget.
func Reachable(g Graph, start geom.Location, budget int) Set {
	costs, _ := run(g, start, budget)
	set := make(Set, len(costs))
	for l := range costs {
		set[l] = struct{}{}
	}
	return set
}

// Predecessors maps every reachable location to the location it was most
// cheaply reached from. The start maps to itself. When several routes tie,
// any one of them may be recorded.
func Predecessors(g Graph, start geom.Location, budget int) map[geom.Location]geom.Location {
	_, prev := run(g, start, budget)
	return prev
}

// Result holds both outputs of one search.
type Result struct {
	Start  geom.Location
	Budget int
	Costs  map[geom.Location]int
	Prev   map[geom.Location]geom.Location
}

// Explore runs a single search and keeps costs and predecessors together.
func Explore(g Graph, start geom.Location, budget int) Result {
	costs, prev := run(g, start, budget)
	return Result{Start: start, Budget: budget, Costs: costs, Prev: prev}
}

// Contains reports whether l was reached.
func (r Result) Contains(l geom.Location) bool {
	_, ok := r.Costs[l]
	return ok
}

// Len returns the number of reached locations.
func (r Result) Len() int {
	return len(r.Costs)
}

// Path returns the route from the start to target and its cost.
func (r Result) Path(target geom.Location) ([]geom.Location, int, bool) {
	path, ok := PathTo(r.Prev, target)
	if !ok {
		return nil, 0, false
	}
	return path, r.Costs[target], true
}

// ReachableFrom runs Reachable for each start concurrently and returns the
// sets in the same order. g must not be mutated until it returns; pass a
// clone if other goroutines may write to the grid.
func ReachableFrom(g Graph, starts []geom.Location, budget int) []Set {
	out := make([]Set, len(starts))
	var wg sync.WaitGroup
	for i, s := range starts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out[i] = Reachable(g, s, budget)
		}()
	}
	wg.Wait()
	return out
}

// PathTo walks a predecessor map back from target and returns the route
// from the start to target, both inclusive. It reports false if target was
// not reached.
func PathTo(prev map[geom.Location]geom.Location, target geom.Location) ([]geom.Location, bool) {
	if _, ok := prev[target]; !ok {
		return nil, false
	}

	path := []geom.Location{target}
	for cur := target; ; {
		p, ok := prev[cur]
		if !ok {
			return nil, false
		}
		if p == cur {
			break
		}
		// A well-formed map is a tree rooted at the start; guard against
		// hand-built maps with cycles.
		if len(path) > len(prev) {
			return nil, false
		}
		path = append(path, p)
		cur = p
	}
	slices.Reverse(path)
	return path, true
}

// PathCost sums the step costs along path. It reports false if any step is
// not passable. A single-location path costs 0.
func PathCost(g Graph, path []geom.Location) (int, bool) {
	if len(path) == 0 {
		return 0, false
	}
	total := 0
	for i := 1; i < len(path); i++ {
		c, ok := g.Cost(path[i-1], path[i])
		if !ok {
			return 0, false
		}
		total += c
	}
	return total, true
}

// run is the shared traversal behind every query.
func run(g Graph, start geom.Location, budget int) (map[geom.Location]int, map[geom.Location]geom.Location) {
	costs := make(map[geom.Location]int)
	prev := make(map[geom.Location]geom.Location)
	if budget < 0 || !g.InBounds(start) {
		return costs, prev
	}

	costs[start] = 0
	prev[start] = start

	fl := &frontier{{loc: start, cost: 0}}
	for fl.Len() > 0 {
		cur := heap.Pop(fl).(*entry)
		// Skip entries superseded by a cheaper push.
		if cur.cost > costs[cur.loc] {
			continue
		}

		for _, next := range g.VisitableNeighbors(cur.loc) {
			step, ok := g.Cost(cur.loc, next)
			if !ok {
				continue
			}
			nc := cur.cost + step
			if nc > budget {
				continue
			}
			if best, seen := costs[next]; seen && nc >= best {
				continue
			}
			costs[next] = nc
			prev[next] = cur.loc
			heap.Push(fl, &entry{loc: next, cost: nc})
		}
	}
	return costs, prev
}

type entry struct {
	loc  geom.Location
	cost int
}

// frontier is a min-heap of entries ordered by accumulated cost.
type frontier []*entry

func (f frontier) Len() int           { return len(f) }
func (f frontier) Less(i, j int) bool { return f[i].cost < f[j].cost }
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)        { *f = append(*f, x.(*entry)) }
func (f *frontier) Pop() any {
	old := *f
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*f = old[:len(old)-1]
	return n
}
