package planner

import (
	"github.com/wanderday/daytrip/internal/types"
)

// optimizeRoute orders the selected POIs into an open path anchored at the
// start coordinate: nearest-neighbor construction over an integer-meter
// distance matrix, improved by a few 2-opt passes that never move the anchor.
// The returned slice is a permutation of 0..len(pois)-1 into the input; on any
// failure to cover every node it falls back to the input order.
func optimizeRoute(startLat, startLon float64, pois []types.SelectedPOI, twoOptRounds int) []int {
	n := len(pois)
	if n <= 1 {
		return identityOrder(n)
	}

	// Node 0 is the start coordinate, nodes 1..n the POIs.
	dist := buildDistanceMatrix(startLat, startLon, pois)

	order := nearestNeighborOrder(dist, n)
	if len(order) != n {
		return identityOrder(n)
	}
	order = improveTwoOpt(dist, order, twoOptRounds)
	return order
}

func identityOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

// buildDistanceMatrix returns the symmetric (n+1)x(n+1) matrix in meters.
func buildDistanceMatrix(startLat, startLon float64, pois []types.SelectedPOI) [][]int {
	n := len(pois)
	lat := make([]float64, n+1)
	lon := make([]float64, n+1)
	lat[0], lon[0] = startLat, startLon
	for i, p := range pois {
		lat[i+1], lon[i+1] = p.Lat, p.Lon
	}

	dist := make([][]int, n+1)
	for i := range dist {
		dist[i] = make([]int, n+1)
	}
	for i := 0; i <= n; i++ {
		for j := i + 1; j <= n; j++ {
			d := distanceMeters(lat[i], lon[i], lat[j], lon[j])
			dist[i][j] = d
			dist[j][i] = d
		}
	}
	return dist
}

// nearestNeighborOrder walks from node 0, always taking the cheapest arc to an
// unvisited POI node. Ties break toward the lowest index so identical input
// yields identical output.
func nearestNeighborOrder(dist [][]int, n int) []int {
	visited := make([]bool, n+1)
	order := make([]int, 0, n)
	current := 0
	for len(order) < n {
		best := -1
		for node := 1; node <= n; node++ {
			if visited[node] {
				continue
			}
			if best == -1 || dist[current][node] < dist[current][best] {
				best = node
			}
		}
		if best == -1 {
			break
		}
		visited[best] = true
		order = append(order, best-1)
		current = best
	}
	return order
}

// improveTwoOpt reverses path segments whenever that shortens the open path.
// The edge back to the start never exists, so only the anchor arc and interior
// arcs are counted.
func improveTwoOpt(dist [][]int, order []int, rounds int) []int {
	n := len(order)
	if n < 3 {
		return order
	}
	for round := 0; round < rounds; round++ {
		improved := false
		for i := 0; i < n-1; i++ {
			for j := i + 1; j < n; j++ {
				// Node preceding position i on the path (the anchor for i==0).
				prev := 0
				if i > 0 {
					prev = order[i-1] + 1
				}
				removed := dist[prev][order[i]+1]
				added := dist[prev][order[j]+1]
				if j < n-1 {
					removed += dist[order[j]+1][order[j+1]+1]
					added += dist[order[i]+1][order[j+1]+1]
				}
				if added < removed {
					reverseSegment(order, i, j)
					improved = true
				}
			}
		}
		if !improved {
			break
		}
	}
	return order
}

func reverseSegment(order []int, i, j int) {
	for i < j {
		order[i], order[j] = order[j], order[i]
		i++
		j--
	}
}
