package odr2lanelet2

const (
	wayType    = "line_thin"
	waySubtype = "solid"
)

// Way is an ordered polyline built from shared nodes.
//
// Every way carries the same kind tags: type=line_thin, subtype=solid
type Way struct {
	ID    string
	Nodes []*Node
}

// NodeIDs returns ids of way's nodes in boundary order
func (way *Way) NodeIDs() []string {
	ids := make([]string, len(way.Nodes))
	for i, node := range way.Nodes {
		ids[i] = node.ID
	}
	return ids
}
