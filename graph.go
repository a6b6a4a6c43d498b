package odr2lanelet2

// Graph is result of conversion. Every slice keeps first-created order.
//
// Regulations[i] always belongs to Relations[i].
type Graph struct {
	Nodes       []*Node
	Ways        []*Way
	Relations   []*Relation
	Regulations []*SpeedRegulation
}

// FindNode returns node with given id or nil
func (graph *Graph) FindNode(id string) *Node {
	for _, node := range graph.Nodes {
		if node.ID == id {
			return node
		}
	}
	return nil
}

// FindWay returns way with given id or nil
func (graph *Graph) FindWay(id string) *Way {
	for _, way := range graph.Ways {
		if way.ID == id {
			return way
		}
	}
	return nil
}

// FindRelation returns lanelet relation with given id or nil
func (graph *Graph) FindRelation(id string) *Relation {
	for _, relation := range graph.Relations {
		if relation.ID == id {
			return relation
		}
	}
	return nil
}
