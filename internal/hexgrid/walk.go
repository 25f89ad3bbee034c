package hexgrid

import "iter"

// Ring walks every coordinate at distance(start, center) from center, clockwise,
// beginning at start. It yields max(6r, 1) coordinates and stops before start
// would repeat. start must lie on the ring it defines.
func Ring(start, center Hex) iter.Seq[Hex] {
	return func(yield func(Hex) bool) {
		if !yield(start) {
			return
		}
		if start == center {
			return
		}
		r := Distance(start, center)

		// Initial move: the on-ring neighbour that turns clockwise about center.
		dir := -1
		for i, d := range Directions {
			cand := start.Add(d)
			if Distance(cand, center) != r {
				continue
			}
			if !IsCounterClockwise(center.Project(), start.Project(), cand.Project()) {
				dir = i
				break
			}
		}
		if dir < 0 {
			return
		}

		cur := start.Add(Directions[dir])
		for cur != start {
			if !yield(cur) {
				return
			}
			next, ok := stepOnRing(cur, center, r, &dir)
			if !ok {
				return
			}
			cur = next
		}
	}
}

// stepOnRing keeps heading in *dir, turning one direction at a time
// whenever the step would leave the ring.
func stepOnRing(cur, center Hex, r int, dir *int) (Hex, bool) {
	for range len(Directions) {
		cand := cur.Add(Directions[*dir])
		if Distance(cand, center) == r {
			return cand, true
		}
		*dir = (*dir + 1) % len(Directions)
	}
	return Hex{}, false
}

// Spiral walks every coordinate within maxRadius of center: center first, then
// each ring in full. Ring k starts one step in direction from the last
// coordinate of ring k-1, so consecutive coordinates stay spatially close.
func Spiral(maxRadius int, direction, center Hex) iter.Seq[Hex] {
	return func(yield func(Hex) bool) {
		if !yield(center) {
			return
		}
		last := center
		for k := 1; k <= maxRadius; k++ {
			for h := range Ring(last.Add(direction), center) {
				if !yield(h) {
					return
				}
				last = h
			}
		}
	}
}

// SpiralLen returns the number of coordinates within radius of a centre.
func SpiralLen(radius int) int {
	return 3*radius*(radius+1) + 1
}

// RadiusFor returns the smallest radius whose spiral holds count coordinates.
func RadiusFor(count int) int {
	remaining := count - 1
	r := 0
	for remaining > 0 {
		r++
		remaining -= 6 * r
	}
	return r
}
