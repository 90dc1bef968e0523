package vectors

import "math"

const flowEps = 1e-12

type arc struct {
	to   int
	rev  int
	cap  float64
	cost float64
}

// transport solves the balanced transportation problem moving supply onto
// demand at minimum total cost, using successive shortest paths. Inputs are
// small (one utterance against one example), so Bellman-Ford is enough.
func transport(supply, demand []float64, cost [][]float64) float64 {
	n1, n2 := len(supply), len(demand)
	source, sink := n1+n2, n1+n2+1
	graph := make([][]arc, n1+n2+2)

	addArc := func(from, to int, capacity, c float64) {
		graph[from] = append(graph[from], arc{to: to, rev: len(graph[to]), cap: capacity, cost: c})
		graph[to] = append(graph[to], arc{to: from, rev: len(graph[from]) - 1, cap: 0, cost: -c})
	}
	for i, s := range supply {
		addArc(source, i, s, 0)
	}
	for j, d := range demand {
		addArc(n1+j, sink, d, 0)
	}
	for i := range supply {
		for j := range demand {
			addArc(i, n1+j, math.Inf(1), cost[i][j])
		}
	}

	total := 0.0
	dist := make([]float64, len(graph))
	prevNode := make([]int, len(graph))
	prevArc := make([]int, len(graph))
	for {
		for v := range dist {
			dist[v] = math.Inf(1)
			prevNode[v] = -1
		}
		dist[source] = 0
		for iter := 0; iter < len(graph); iter++ {
			updated := false
			for u := range graph {
				if math.IsInf(dist[u], 1) {
					continue
				}
				for k, a := range graph[u] {
					if a.cap > flowEps && dist[u]+a.cost < dist[a.to]-flowEps {
						dist[a.to] = dist[u] + a.cost
						prevNode[a.to] = u
						prevArc[a.to] = k
						updated = true
					}
				}
			}
			if !updated {
				break
			}
		}
		if prevNode[sink] == -1 {
			return total
		}

		push := math.Inf(1)
		for v := sink; v != source; v = prevNode[v] {
			push = math.Min(push, graph[prevNode[v]][prevArc[v]].cap)
		}
		if push <= flowEps {
			return total
		}
		for v := sink; v != source; v = prevNode[v] {
			a := &graph[prevNode[v]][prevArc[v]]
			a.cap -= push
			graph[v][a.rev].cap += push
		}
		total += push * dist[sink]
	}
}
