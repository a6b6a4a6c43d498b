package odr2lanelet2

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"golang.org/x/exp/slog"
)

const DEFAULT_SPEED_UNIT = "mph"

// Converter turns lanelets into deduplicated node/way/relation graph
type Converter struct {
	projector     Projector
	tolerance     float64
	roundDigits   int
	minMatches    int
	minMatchRatio float64
	straightAngle float64
	speedUnit     string
	logger        *slog.Logger
	progress      func(done, total int)
}

func (conv *Converter) String() string {
	return fmt.Sprintf(`
Converter parameters:
	tolerance: %g
	round_digits: %d
	min_matches: %d
	min_match_ratio: %f
	straight_angle: %f
	speed_unit: '%s'
	`,
		conv.tolerance,
		conv.roundDigits,
		conv.minMatches,
		conv.minMatchRatio,
		conv.straightAngle,
		conv.speedUnit,
	)
}

func NewConverter(projector Projector, options ...func(*Converter)) *Converter {
	conv := &Converter{
		projector:     projector,
		tolerance:     DEFAULT_TOLERANCE,
		roundDigits:   DEFAULT_ROUND_DIGITS,
		minMatches:    DEFAULT_MIN_MATCHES,
		minMatchRatio: DEFAULT_MIN_MATCH_RATIO,
		straightAngle: DEFAULT_STRAIGHT_ANGLE,
		speedUnit:     DEFAULT_SPEED_UNIT,
		logger:        slog.Default(),
	}
	for _, option := range options {
		option(conv)
	}
	return conv
}

func WithTolerance(tolerance float64) func(*Converter) {
	return func(conv *Converter) {
		conv.tolerance = tolerance
	}
}

func WithRoundDigits(digits int) func(*Converter) {
	return func(conv *Converter) {
		conv.roundDigits = digits
	}
}

func WithMatchThresholds(minMatches int, minRatio float64) func(*Converter) {
	return func(conv *Converter) {
		conv.minMatches = minMatches
		conv.minMatchRatio = minRatio
	}
}

func WithStraightAngle(degrees float64) func(*Converter) {
	return func(conv *Converter) {
		conv.straightAngle = degrees
	}
}

func WithSpeedUnit(unit string) func(*Converter) {
	return func(conv *Converter) {
		conv.speedUnit = unit
	}
}

func WithLogger(logger *slog.Logger) func(*Converter) {
	return func(conv *Converter) {
		if logger != nil {
			conv.logger = logger
		}
	}
}

func WithProgress(progress func(done, total int)) func(*Converter) {
	return func(conv *Converter) {
		conv.progress = progress
	}
}

// conversion is state of single run. Nothing survives between runs.
type conversion struct {
	*Converter
	graph   *Graph
	index   *NodeIndex
	matcher *WayMatcher
	turns   TurnEstimator
}

// Convert builds graph for given lanelets. Lanelets are processed in ascending id order.
//
// Empty boundary, failed projection or repeated lanelet id abort conversion with *InputError.
func (conv *Converter) Convert(lanelets []LaneletInput) (*Graph, error) {
	if conv.projector == nil {
		return nil, errors.New("Converter has no projector")
	}
	run := &conversion{
		Converter: conv,
		graph:     &Graph{},
		index:     NewNodeIndex(conv.projector, conv.tolerance, conv.logger),
		matcher:   NewWayMatcher(conv.roundDigits, conv.minMatches, conv.minMatchRatio),
		turns:     NewTurnEstimator(conv.straightAngle),
	}
	seen := make(map[string]struct{}, len(lanelets))
	for i := range lanelets {
		if _, ok := seen[lanelets[i].ID]; ok {
			return nil, newInputError(lanelets[i].ID, ErrDuplicateLanelet)
		}
		seen[lanelets[i].ID] = struct{}{}
	}
	if !fitsBucket(180 / run.index.tolerance) {
		conv.logger.Warn("tolerance is too small for bucket keys, some nodes won't be deduplicated", "tolerance", run.index.tolerance)
	}
	sorted := SortLanelets(lanelets)
	for i := range sorted {
		err := run.convertLanelet(&sorted[i])
		if err != nil {
			return nil, err
		}
		if conv.progress != nil {
			conv.progress(i+1, len(sorted))
		}
	}
	for _, collision := range idCollisions(run.graph) {
		conv.logger.Warn("identifier collision", "element", collision)
	}
	conv.logger.Debug("conversion done",
		"lanelets", len(sorted),
		"nodes", len(run.graph.Nodes),
		"ways", len(run.graph.Ways),
		"indexed_buckets", run.index.Len(),
	)
	return run.graph, nil
}

func (run *conversion) convertLanelet(lanelet *LaneletInput) error {
	if len(lanelet.Left) == 0 {
		return newInputError(lanelet.ID, errors.Wrap(ErrEmptyBoundary, BOUNDARY_LEFT.String()))
	}
	if len(lanelet.Right) == 0 {
		return newInputError(lanelet.ID, errors.Wrap(ErrEmptyBoundary, BOUNDARY_RIGHT.String()))
	}
	relationID := lanelet.ID

	left, err := run.boundaryWay(relationID, BOUNDARY_LEFT, lanelet.Left)
	if err != nil {
		return newInputError(lanelet.ID, err)
	}
	right, err := run.boundaryWay(relationID, BOUNDARY_RIGHT, lanelet.Right)
	if err != nil {
		return newInputError(lanelet.ID, err)
	}

	predecessors := uniqueIDs(lanelet.Predecessors)
	successors := uniqueIDs(lanelet.Successors)
	if len(lanelet.Left) < 3 && len(predecessors) <= 1 && len(successors) <= 1 {
		run.logger.Debug("too few points to classify turn direction", "lanelet", lanelet.ID, "reason", "straight by default")
	}
	relation := &Relation{
		ID:              relationID,
		Left:            left,
		Right:           right,
		Predecessors:    predecessors,
		Successors:      successors,
		TurnDirection:   run.turns.Classify(left, len(predecessors), len(successors)),
		SourceLaneletID: lanelet.ID,
	}
	regulation := &SpeedRegulation{
		ID:               speedRegulationID(relationID),
		TargetRelationID: relation.ID,
		Limit:            formatSpeedLimit(lanelet.SpeedLimit, run.speedUnit),
	}
	run.graph.Relations = append(run.graph.Relations, relation)
	run.graph.Regulations = append(run.graph.Regulations, regulation)
	return nil
}

// boundaryWay resolves nodes of boundary and returns canonical way for them
func (run *conversion) boundaryWay(relationID string, side BoundaryType, vertices orb.LineString) (*Way, error) {
	if len(vertices) > maxVertexIndex+1 {
		run.logger.Warn("boundary has more vertices than 3-digit node index can hold, node ids may collide", "lanelet", relationID, "side", side.String(), "vertices", len(vertices))
	}
	nodes := make([]*Node, len(vertices))
	for i, vertex := range vertices {
		node, created, err := run.index.ResolveOrInsert(vertex, nodeID(relationID, side, i))
		if err != nil {
			return nil, errors.Wrapf(err, "Can't resolve %s boundary vertex #%d", side, i)
		}
		if created {
			run.graph.Nodes = append(run.graph.Nodes, node)
		}
		nodes[i] = node
	}
	candidate := &Way{
		ID:    wayID(relationID, side),
		Nodes: nodes,
	}
	way, registered := run.matcher.FindOrRegister(candidate)
	if registered {
		run.graph.Ways = append(run.graph.Ways, way)
	} else {
		run.logger.Debug("boundary reuses existing way", "lanelet", relationID, "side", side.String(), "way", way.ID)
	}
	return way, nil
}

// formatSpeedLimit returns value of 'limit' tag: decimal form with at least one fractional digit followed by unit
func formatSpeedLimit(limit float64, unit string) string {
	value := strconv.FormatFloat(limit, 'f', -1, 64)
	if !strings.ContainsAny(value, ".NI") {
		value += ".0"
	}
	if unit == "" {
		return value
	}
	return value + " " + unit
}

// idCollisions returns elements sharing identifier within their OSM namespace.
// Lanelet relations and speed regulations are both relations, so they share one namespace.
func idCollisions(graph *Graph) []string {
	collisions := []string{}
	nodes := make(map[string]struct{}, len(graph.Nodes))
	for _, node := range graph.Nodes {
		if _, ok := nodes[node.ID]; ok {
			collisions = append(collisions, "node/"+node.ID)
		}
		nodes[node.ID] = struct{}{}
	}
	ways := make(map[string]struct{}, len(graph.Ways))
	for _, way := range graph.Ways {
		if _, ok := ways[way.ID]; ok {
			collisions = append(collisions, "way/"+way.ID)
		}
		ways[way.ID] = struct{}{}
	}
	relations := make(map[string]struct{}, len(graph.Relations)+len(graph.Regulations))
	for _, relation := range graph.Relations {
		relations[relation.ID] = struct{}{}
	}
	for _, regulation := range graph.Regulations {
		if _, ok := relations[regulation.ID]; ok {
			collisions = append(collisions, "relation/"+regulation.ID)
		}
		relations[regulation.ID] = struct{}{}
	}
	return collisions
}
