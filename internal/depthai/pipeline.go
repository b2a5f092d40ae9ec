package depthai

import (
	"fmt"
	"sort"
)

// Connection links a producer node's named output port to a consumer node's
// named input port.
type Connection struct {
	OutputID   NodeID
	OutputName string
	InputID    NodeID
	InputName  string
}

// Pipeline is the caller-owned processing-node graph. Nodes are registered
// with Add and wired with Link; the graph must be fully formed before the
// device starts.
type Pipeline struct {
	nextID      NodeID
	nodes       map[NodeID]Node
	connections []Connection
}

// NewPipeline creates an empty pipeline graph.
func NewPipeline() *Pipeline {
	return &Pipeline{nextID: 1, nodes: make(map[NodeID]Node)}
}

type idSetter interface{ setID(NodeID) }

// Add registers a node and assigns its pipeline-unique ID.
func (p *Pipeline) Add(n Node) Node {
	if s, ok := n.(idSetter); ok && n.ID() == 0 {
		s.setID(p.nextID)
		p.nextID++
	}
	p.nodes[n.ID()] = n
	return n
}

// Node returns the node with the given ID, or nil.
func (p *Pipeline) Node(id NodeID) Node {
	return p.nodes[id]
}

// Nodes returns all nodes in deterministic (ID) order.
func (p *Pipeline) Nodes() []Node {
	out := make([]Node, 0, len(p.nodes))
	for _, n := range p.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Link connects out's named output port to in's named input port. Both nodes
// must already be registered.
func (p *Pipeline) Link(out Node, outputName string, in Node, inputName string) error {
	if _, ok := p.nodes[out.ID()]; !ok || out.ID() == 0 {
		return fmt.Errorf("link %s.%s: output node not registered", out.Name(), outputName)
	}
	if _, ok := p.nodes[in.ID()]; !ok || in.ID() == 0 {
		return fmt.Errorf("link %s.%s: input node not registered", in.Name(), inputName)
	}
	p.connections = append(p.connections, Connection{
		OutputID:   out.ID(),
		OutputName: outputName,
		InputID:    in.ID(),
		InputName:  inputName,
	})
	return nil
}

// Connections returns every connection in the graph.
func (p *Pipeline) Connections() []Connection {
	return p.connections
}

// ConnectionsTo returns the connections feeding the given node's input ports.
func (p *Pipeline) ConnectionsTo(id NodeID) []Connection {
	var out []Connection
	for _, c := range p.connections {
		if c.InputID == id {
			out = append(out, c)
		}
	}
	return out
}

// InputLinked reports whether the named input port of the given node already
// has an upstream connection.
func (p *Pipeline) InputLinked(id NodeID, inputName string) bool {
	for _, c := range p.connections {
		if c.InputID == id && c.InputName == inputName {
			return true
		}
	}
	return false
}
