package odr2lanelet2

import (
	"github.com/paulmach/orb"
)

const (
	DEFAULT_ROUND_DIGITS    = 3
	DEFAULT_MIN_MATCHES     = 5
	DEFAULT_MIN_MATCH_RATIO = 0.8
)

type pointSet map[orb.Point]struct{}

// WayMatcher decides whether candidate boundary is the same physical line as previously registered way
type WayMatcher struct {
	digits     int
	minMatches int
	minRatio   float64

	ways []*Way
	sets []pointSet
}

// NewWayMatcher returns matcher with no registered ways.
// Candidate is a duplicate when matches > minMatches AND ratio > minRatio.
func NewWayMatcher(digits, minMatches int, minRatio float64) *WayMatcher {
	return &WayMatcher{
		digits:     digits,
		minMatches: minMatches,
		minRatio:   minRatio,
	}
}

func (m *WayMatcher) roundedSet(way *Way) pointSet {
	set := make(pointSet, len(way.Nodes))
	for _, node := range way.Nodes {
		set[roundPoint(node.Local, m.digits)] = struct{}{}
	}
	return set
}

// similarity returns number of rounded points present in both sets and ratio 2*matches/|combined|
func similarity(registered, candidate pointSet) (int, float64) {
	combined := len(registered) + len(candidate)
	if combined == 0 {
		return 0, 0
	}
	matches := 0
	for pt := range candidate {
		if _, ok := registered[pt]; ok {
			matches++
		}
	}
	return matches, 2.0 * float64(matches) / float64(combined)
}

// FindOrRegister returns first registered way (insertion order) judged equivalent to candidate.
// If there is none candidate is registered and returned; second value is true in that case.
func (m *WayMatcher) FindOrRegister(candidate *Way) (*Way, bool) {
	candidateSet := m.roundedSet(candidate)
	for k, set := range m.sets {
		matches, ratio := similarity(set, candidateSet)
		if matches > m.minMatches && ratio > m.minRatio {
			return m.ways[k], false
		}
	}
	m.ways = append(m.ways, candidate)
	m.sets = append(m.sets, candidateSet)
	return candidate, true
}

// Ways returns registered ways in insertion order
func (m *WayMatcher) Ways() []*Way {
	return m.ways
}
