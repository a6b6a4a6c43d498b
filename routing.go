package odr2lanelet2

import (
	"strconv"

	"github.com/LdDl/ch"
	"github.com/pkg/errors"
	"golang.org/x/exp/slog"
)

// RoutingGraph is contraction hierarchies graph over lanelet topology.
// Vertex per lanelet, edge from lanelet to each of its successors weighted by mean boundary length.
type RoutingGraph struct {
	graph    ch.Graph
	lanelets map[int64]string
}

type laneletEdge struct {
	from int64
	to   int64
}

// NewRoutingGraph prepares routing graph. Lanelet ids must be integers.
func NewRoutingGraph(graph *Graph, logger *slog.Logger) (*RoutingGraph, error) {
	if logger == nil {
		logger = slog.Default()
	}
	rg := &RoutingGraph{
		graph:    ch.Graph{},
		lanelets: make(map[int64]string, len(graph.Relations)),
	}
	weights := make(map[int64]float64, len(graph.Relations))
	for _, relation := range graph.Relations {
		label, err := strconv.ParseInt(relation.ID, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't use lanelet '%s' as routing vertex", relation.ID)
		}
		err = rg.graph.CreateVertex(label)
		if err != nil {
			return nil, errors.Wrap(err, "Can not create vertex")
		}
		rg.lanelets[label] = relation.ID
		weights[label] = meanBoundaryLength(relation)
	}

	seen := make(map[laneletEdge]struct{})
	edges := []laneletEdge{}
	addEdge := func(from, to string) {
		source, errSource := strconv.ParseInt(from, 10, 64)
		target, errTarget := strconv.ParseInt(to, 10, 64)
		if errSource != nil || errTarget != nil {
			logger.Warn("skipping non-numeric topology reference", "from", from, "to", to)
			return
		}
		if _, ok := rg.lanelets[source]; !ok {
			logger.Warn("skipping reference to unknown lanelet", "lanelet", from)
			return
		}
		if _, ok := rg.lanelets[target]; !ok {
			logger.Warn("skipping reference to unknown lanelet", "lanelet", to)
			return
		}
		if source == target {
			return
		}
		edge := laneletEdge{from: source, to: target}
		if _, ok := seen[edge]; ok {
			return
		}
		seen[edge] = struct{}{}
		edges = append(edges, edge)
	}
	for _, relation := range graph.Relations {
		for _, successor := range relation.Successors {
			addEdge(relation.ID, successor)
		}
		for _, predecessor := range relation.Predecessors {
			addEdge(predecessor, relation.ID)
		}
	}
	for _, edge := range edges {
		err := rg.graph.AddEdge(edge.from, edge.to, weights[edge.from])
		if err != nil {
			return nil, errors.Wrap(err, "Can not wrap Source and Target vertices as Edge")
		}
	}
	rg.graph.PrepareContractionHierarchies()
	return rg, nil
}

// ShortestPath returns lanelet ids from source to target and total cost (-1 when unreachable)
func (rg *RoutingGraph) ShortestPath(from, to string) (float64, []string, error) {
	source, err := strconv.ParseInt(from, 10, 64)
	if err != nil {
		return -1, nil, errors.Wrapf(err, "Bad source lanelet '%s'", from)
	}
	target, err := strconv.ParseInt(to, 10, 64)
	if err != nil {
		return -1, nil, errors.Wrapf(err, "Bad target lanelet '%s'", to)
	}
	if _, ok := rg.lanelets[source]; !ok {
		return -1, nil, errors.Errorf("Unknown lanelet '%s'", from)
	}
	if _, ok := rg.lanelets[target]; !ok {
		return -1, nil, errors.Errorf("Unknown lanelet '%s'", to)
	}
	cost, path := rg.graph.ShortestPath(source, target)
	ids := make([]string, len(path))
	for i, label := range path {
		ids[i] = rg.lanelets[label]
	}
	return cost, ids, nil
}
