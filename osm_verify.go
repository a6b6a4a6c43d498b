package odr2lanelet2

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

// VerifyReport describes OSM document read back after conversion
type VerifyReport struct {
	Nodes     int
	Ways      int
	Relations int
	// Dangling lists references which point to missing elements, e.g. 'way/10 -> node/100000'
	Dangling []string
}

// OK returns true when every reference could be resolved
func (report *VerifyReport) OK() bool {
	return len(report.Dangling) == 0
}

func (report *VerifyReport) String() string {
	return fmt.Sprintf("nodes: %d | ways: %d | relations: %d | dangling references: %d", report.Nodes, report.Ways, report.Relations, len(report.Dangling))
}

// VerifyOSMFile reads document from file and checks its references
func VerifyOSMFile(fname string) (*VerifyReport, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, errors.Wrap(err, "File open")
	}
	defer f.Close()
	return VerifyOSM(context.Background(), f)
}

// VerifyOSM scans produced document and checks that every 'nd' and 'member' reference resolves.
//
// Ids must be numeric to be read by OSM scanner.
func VerifyOSM(ctx context.Context, r io.Reader) (*VerifyReport, error) {
	scanner := osmxml.New(ctx, r)
	defer scanner.Close()

	nodes := make(map[osm.NodeID]struct{})
	ways := make(map[osm.WayID]struct{})
	relations := make(map[osm.RelationID]struct{})
	wayObjects := []*osm.Way{}
	relationObjects := []*osm.Relation{}
	for scanner.Scan() {
		switch obj := scanner.Object().(type) {
		case *osm.Node:
			nodes[obj.ID] = struct{}{}
		case *osm.Way:
			ways[obj.ID] = struct{}{}
			wayObjects = append(wayObjects, obj)
		case *osm.Relation:
			relations[obj.ID] = struct{}{}
			relationObjects = append(relationObjects, obj)
		}
	}
	if scanner.Err() != nil {
		return nil, errors.Wrap(scanner.Err(), "Scanner error")
	}

	report := &VerifyReport{
		Nodes:     len(nodes),
		Ways:      len(ways),
		Relations: len(relations),
		Dangling:  []string{},
	}
	for _, way := range wayObjects {
		for _, wayNode := range way.Nodes {
			if _, ok := nodes[wayNode.ID]; !ok {
				report.Dangling = append(report.Dangling, fmt.Sprintf("way/%d -> node/%d", way.ID, wayNode.ID))
			}
		}
	}
	for _, relation := range relationObjects {
		for _, member := range relation.Members {
			found := false
			switch member.Type {
			case osm.TypeNode:
				_, found = nodes[osm.NodeID(member.Ref)]
			case osm.TypeWay:
				_, found = ways[osm.WayID(member.Ref)]
			case osm.TypeRelation:
				_, found = relations[osm.RelationID(member.Ref)]
			}
			if !found {
				report.Dangling = append(report.Dangling, fmt.Sprintf("relation/%d -> %s/%d", relation.ID, member.Type, member.Ref))
			}
		}
	}
	return report, nil
}
