package geometry

import "sort"

// Edge is an undirected edge between two point-indices.
type Edge struct {
	A, B int
}

func normalize(e Edge) Edge {
	if e.A > e.B {
		return Edge{e.B, e.A}
	}
	return e
}

// LinkResult is the outcome of linking an edge multiset into rings and
// chains, used to recover alpha-shape contours.
type LinkResult struct {
	// Rings are closed cycles in the order the linker recovers them; no
	// outer-boundary-first ordering is applied here. Each ring is a cyclic
	// ordering of point-indices.
	Rings [][]int
	// Chains are open (non-cyclic) vertex sequences left over once every
	// incidence-1 vertex has been stripped away.
	Chains [][]int
}

// LinkEdges classifies an edge multiset into closed wires and open chains,
// then walks each into concrete rings/chains. Closed-ring incidence is
// guaranteed to be >= 2 for every vertex by construction; nested rings
// sharing a vertex set are deduplicated by vertex-set membership, not
// edge-set identity: two topologically distinct rings that happen to
// visit the same vertex set will collapse to one.
func LinkEdges(edges []Edge) LinkResult {
	closedEdges, openEdges := stripLeaves(edges)

	chains := walkChains(openEdges)
	rings := walkRings(closedEdges)
	rings = tearDownRings(rings)
	rings = dedupRingsByVertexSet(rings)
	rings = orderByArea(rings)

	return LinkResult{Rings: rings, Chains: chains}
}

// stripLeaves iteratively removes vertices of incidence 1 (cascading: each
// removal may expose a new incidence-1 vertex), partitioning edges into a
// closed set (every remaining vertex has incidence >= 2) and an open set
// (the stripped edges).
func stripLeaves(edges []Edge) (closed, open []Edge) {
	remaining := make([]Edge, len(edges))
	copy(remaining, edges)
	incidence := map[int]int{}
	for _, e := range remaining {
		incidence[e.A]++
		incidence[e.B]++
	}

	changed := true
	for changed {
		changed = false
		var kept []Edge
		for _, e := range remaining {
			if incidence[e.A] == 1 || incidence[e.B] == 1 {
				open = append(open, e)
				incidence[e.A]--
				incidence[e.B]--
				changed = true
				continue
			}
			kept = append(kept, e)
		}
		remaining = kept
	}
	return remaining, open
}

// walkChains greedily assembles open edges into maximal vertex sequences.
func walkChains(edges []Edge) [][]int {
	adj := buildAdjacency(edges)
	used := map[Edge]bool{}
	var chains [][]int

	for _, e := range edges {
		ne := normalize(e)
		if used[ne] {
			continue
		}
		chain := []int{e.A, e.B}
		used[ne] = true
		extendChain(&chain, adj, used, false)
		extendChain(&chain, adj, used, true)
		chains = append(chains, chain)
	}
	return chains
}

// extendChain walks from the chain's tail (or head, if fromHead) along
// unused edges until no further extension is possible.
func extendChain(chain *[]int, adj map[int][]int, used map[Edge]bool, fromHead bool) {
	for {
		var cur int
		if fromHead {
			cur = (*chain)[0]
		} else {
			cur = (*chain)[len(*chain)-1]
		}
		next := -1
		for _, n := range adj[cur] {
			if !used[normalize(Edge{cur, n})] {
				next = n
				break
			}
		}
		if next == -1 {
			return
		}
		used[normalize(Edge{cur, next})] = true
		if fromHead {
			*chain = append([]int{next}, *chain...)
		} else {
			*chain = append(*chain, next)
		}
	}
}

func buildAdjacency(edges []Edge) map[int][]int {
	adj := map[int][]int{}
	for _, e := range edges {
		adj[e.A] = append(adj[e.A], e.B)
		adj[e.B] = append(adj[e.B], e.A)
	}
	return adj
}

// walkRings assembles closed edges into cycles. Each vertex in the closed
// set has incidence exactly 2 in the well-formed case (a simple boundary);
// a reverse-search closure step detects looping back to any earlier
// visited vertex (not just the start) and cuts the ring there, which
// handles figure-eight self-touching boundaries gracefully.
func walkRings(edges []Edge) [][]int {
	adj := buildAdjacency(edges)
	used := map[Edge]bool{}
	var rings [][]int

	for _, e := range edges {
		ne := normalize(e)
		if used[ne] {
			continue
		}
		start := e.A
		ring := []int{start}
		visitedAt := map[int]int{start: 0}
		used[ne] = true
		cur := e.B

		for {
			if idx, seen := visitedAt[cur]; seen {
				ring = ring[idx:]
				break
			}
			visitedAt[cur] = len(ring)
			ring = append(ring, cur)

			next := -1
			for _, n := range adj[cur] {
				if !used[normalize(Edge{cur, n})] {
					next = n
					break
				}
			}
			if next == -1 {
				// Dangling: the closed set should not produce this, but
				// guard against malformed input rather than looping.
				break
			}
			used[normalize(Edge{cur, next})] = true
			cur = next
		}
		if len(ring) >= 3 {
			rings = append(rings, ring)
		}
	}
	return rings
}

// edgeSet is an undirected edge multiset, keyed by normalized edge with
// its occurrence count.
type edgeSet map[Edge]int

// ringEdges builds the edge set of a closed vertex cycle.
func ringEdges(ring []int) edgeSet {
	n := len(ring)
	es := make(edgeSet, n)
	for i := 0; i < n; i++ {
		es[normalize(Edge{ring[i], ring[(i+1)%n]})]++
	}
	return es
}

// vertexSetOf collects the distinct vertices touched by an edge set.
func vertexSetOf(es edgeSet) map[int]bool {
	set := make(map[int]bool, len(es)*2)
	for e := range es {
		set[e.A] = true
		set[e.B] = true
	}
	return set
}

// cycleFromEdges re-derives an ordered vertex cycle from an edge set once
// tear-down has settled on the edges that make up one genuine ring.
func cycleFromEdges(es edgeSet) []int {
	edges := make([]Edge, 0, len(es))
	for e := range es {
		edges = append(edges, e)
	}
	rings := walkRings(edges)
	if len(rings) == 0 {
		return nil
	}
	return rings[0]
}

// splitIntoCycles partitions a raw edge list into closed cycles, using the
// same adjacency walk walkRings uses, and returns each cycle's edge set.
func splitIntoCycles(edges []Edge) []edgeSet {
	rings := walkRings(edges)
	sets := make([]edgeSet, len(rings))
	for i, r := range rings {
		sets[i] = ringEdges(r)
	}
	return sets
}

// tearDownRings separates nested closed rings that share a vertex set (an
// outer boundary and a contained ring pinched together at one or more
// shared vertices, as a single walkRings pass can produce for a
// self-touching boundary). Rings are considered largest first; for each
// one, any ring entirely contained in its vertex set is merged in and the
// edges the two do NOT share are re-cut into fresh cycles, recursively,
// until no further contained ring remains. A ring with nothing contained
// in it passes through unchanged.
func tearDownRings(rings [][]int) [][]int {
	if len(rings) == 0 {
		return rings
	}

	sets := make([]edgeSet, len(rings))
	for i, r := range rings {
		sets[i] = ringEdges(r)
	}
	sort.Slice(sets, func(i, j int) bool { return len(sets[i]) > len(sets[j]) })

	var generated []edgeSet
	for i := range sets {
		var partial []edgeSet
		tearDownRecursive(sets, i, sets[i], vertexSetOf(sets[i]), &partial)
		generated = append(generated, partial...)
	}

	out := make([][]int, 0, len(generated))
	for _, es := range generated {
		if ring := cycleFromEdges(es); len(ring) >= 3 {
			out = append(out, ring)
		}
	}
	return out
}

// tearDownRecursive looks, among rings after start, for any whose vertex
// set is entirely contained in vertices. For each match it merges the two
// edge sets and keeps only the edges that are NOT shared (count == 1),
// re-splits those into cycles, and recurses into each. With no contained
// ring, edges is a terminal shape and is appended to partial as-is.
func tearDownRecursive(rings []edgeSet, start int, edges edgeSet, vertices map[int]bool, partial *[]edgeSet) {
	var perClosed []edgeSet
	for ii := len(rings) - 1; ii > start; ii-- {
		contained := true
		for e := range rings[ii] {
			if !vertices[e.A] || !vertices[e.B] {
				contained = false
				break
			}
		}
		if !contained {
			continue
		}

		merged := make(edgeSet, len(edges)+len(rings[ii]))
		for e, c := range edges {
			merged[e] = c
		}
		for e := range rings[ii] {
			merged[e]++
		}

		nonCommon := make([]Edge, 0, len(merged))
		for e, c := range merged {
			if c <= 1 {
				nonCommon = append(nonCommon, e)
			}
		}
		perClosed = append(perClosed, splitIntoCycles(nonCommon)...)
	}

	if len(perClosed) == 0 {
		*partial = append(*partial, edges)
		return
	}

	for _, es := range perClosed {
		tearDownRecursive(rings, start, es, vertexSetOf(es), partial)
	}
}

// dedupRingsByVertexSet removes rings whose vertex set duplicates an
// already-kept ring's vertex set.
func dedupRingsByVertexSet(rings [][]int) [][]int {
	seen := map[string]bool{}
	var out [][]int
	for _, r := range rings {
		key := vertexSetKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

func vertexSetKey(ring []int) string {
	sorted := append([]int(nil), ring...)
	sort.Ints(sorted)
	key := make([]byte, 0, len(sorted)*4)
	for _, v := range sorted {
		key = append(key, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	}
	return string(key)
}

// orderByArea is a placeholder ordering hook: callers needing
// outer-contour-first semantics (alpha-shape extraction) determine the
// outer ring independently, by vertex-set containment against the
// 2D-projected shape; this function is the identity when no projection is
// available and exists so the ring list has a stable, deterministic order.
func orderByArea(rings [][]int) [][]int { return rings }
