package board

import (
	"iter"

	"github.com/pkg/errors"

	"github.com/talgya/hexboard/internal/hexgrid"
)

// harborPattern marks which coastal nodes carry a harbor, read cyclically from
// harborPatternOffset: pairs of harbor nodes separated by one or two plain ones.
var harborPattern = [...]bool{true, true, false, true, true, false, true, true, false, false}

const harborPatternOffset = 3

// CoastLen is the number of coastal nodes around a board of the given radius.
func CoastLen(radius int) int {
	return 6 * (2*radius + 1)
}

// IsCoastal reports whether id touches both the sea (a tile beyond radius)
// and land (a tile within it).
func IsCoastal(id NodeID, radius int) bool {
	sea, land := false, false
	for _, h := range id {
		if h.Norm() >= radius+1 {
			sea = true
		} else {
			land = true
		}
	}
	return sea && land
}

// coastStart is the corner at the top of the outer tile (r+1, 0, -r-1).
func coastStart(radius int) NodeID {
	t := hexgrid.MustNew(radius+1, 0, -radius-1)
	return NewNodeID(t, t.Add(hexgrid.Directions[hexgrid.NorthWest]), t.Add(hexgrid.Directions[hexgrid.SouthWest]))
}

// WalkCoast walks the coastal nodes of a board of the given radius once,
// clockwise, starting at the top-right corner. Every node after the first has
// exactly one coastal neighbour besides the one it was reached from; the walk
// fails with ErrCoastalAlignment if that ever does not hold.
func (g *Graph) WalkCoast(radius int) iter.Seq2[NodeID, error] {
	return func(yield func(NodeID, error) bool) {
		start := coastStart(radius)
		if g.Node(start) == nil {
			yield(NodeID{}, errors.Wrapf(ErrCoastalAlignment, "start node %s not on a board of radius %d", start, radius))
			return
		}
		if !yield(start, nil) {
			return
		}

		visited := map[NodeID]bool{start: true}
		prev, cur := start, start
		for {
			cands := g.coastalNeighbors(cur, prev, radius)

			var next NodeID
			var err error
			if cur == start {
				next, err = clockwiseOf(start, cands)
			} else if len(cands) == 1 {
				next = cands[0]
			} else {
				err = errors.Wrapf(ErrCoastalAlignment, "node %s has %d coastal successors", cur, len(cands))
			}
			if err != nil {
				yield(NodeID{}, err)
				return
			}

			if next == start {
				return
			}
			if visited[next] {
				yield(NodeID{}, errors.Wrapf(ErrCoastalAlignment, "coast revisits %s", next))
				return
			}
			visited[next] = true
			if !yield(next, nil) {
				return
			}
			prev, cur = cur, next
		}
	}
}

func (g *Graph) coastalNeighbors(id, prev NodeID, radius int) []NodeID {
	var out []NodeID
	for _, n := range g.adj[id] {
		if n == prev || !IsCoastal(n, radius) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// clockwiseOf picks the single candidate that continues clockwise around the
// origin from start.
func clockwiseOf(start NodeID, cands []NodeID) (NodeID, error) {
	var picked []NodeID
	for _, c := range cands {
		if !hexgrid.IsCounterClockwise(hexgrid.Origin.Project(), start.centroid(), c.centroid()) {
			picked = append(picked, c)
		}
	}
	if len(picked) != 1 {
		return NodeID{}, errors.Wrapf(ErrCoastalAlignment, "start node %s has %d clockwise successors among %d", start, len(picked), len(cands))
	}
	return picked[0], nil
}

// collectCoast drains WalkCoast and checks its length against the radius.
func (g *Graph) collectCoast(radius int) ([]NodeID, error) {
	var coast []NodeID
	for id, err := range g.WalkCoast(radius) {
		if err != nil {
			return nil, err
		}
		coast = append(coast, id)
	}
	if len(coast) != CoastLen(radius) {
		return nil, errors.Wrapf(ErrCoastalAlignment, "coast has %d nodes, want %d", len(coast), CoastLen(radius))
	}
	return coast, nil
}

// harborSlots counts the coastal positions the pattern assigns a harbor to.
func harborSlots(coastLen int) int {
	n := 0
	for i := 0; i < coastLen; i++ {
		if harborPattern[(harborPatternOffset+i)%len(harborPattern)] {
			n++
		}
	}
	return n
}

// placeHarbors hands out harbors along the coast: each run of two pattern
// slots takes the next harbor from the list. It returns the node pairs.
func (g *Graph) placeHarbors(coast []NodeID, harbors []Harbor) ([][]NodeID, error) {
	if slots := harborSlots(len(coast)); slots != 2*len(harbors) {
		return nil, errors.Wrapf(ErrCoastalAlignment, "coast of %d nodes has %d harbor slots, want %d", len(coast), slots, 2*len(harbors))
	}

	queue := harbors
	var pairs [][]NodeID
	var current Harbor
	prev := false
	for i, id := range coast {
		if !harborPattern[(harborPatternOffset+i)%len(harborPattern)] {
			prev = false
			continue
		}
		if !prev {
			if len(queue) == 0 {
				return nil, errors.Wrapf(ErrCoastalAlignment, "ran out of harbors at coastal node %d", i)
			}
			current, queue = queue[0], queue[1:]
			pairs = append(pairs, nil)
		}
		g.nodes[id].Harbor = current
		pairs[len(pairs)-1] = append(pairs[len(pairs)-1], id)
		prev = true
	}

	if err := g.checkHarborPairs(pairs); err != nil {
		return nil, err
	}
	return pairs, nil
}

func (g *Graph) checkHarborPairs(pairs [][]NodeID) error {
	for _, pair := range pairs {
		if len(pair) != 2 {
			return errors.Wrapf(ErrCoastalAlignment, "harbor at %s spans %d nodes", pair[0], len(pair))
		}
		a, b := g.nodes[pair[0]], g.nodes[pair[1]]
		if a.Harbor != b.Harbor {
			return errors.Wrapf(ErrCoastalAlignment, "harbor pair %s/%s has types %s and %s", a.ID, b.ID, a.Harbor, b.Harbor)
		}
		if g.Edge(a.ID, b.ID) == nil {
			return errors.Wrapf(ErrCoastalAlignment, "harbor pair %s/%s not adjacent", a.ID, b.ID)
		}
	}
	return nil
}
