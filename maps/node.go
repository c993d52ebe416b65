package maps

// Node is a minimal DisplayNode for hosts that address containers by id.
type Node struct {
	id      string
	mounted bool
}

// NewNode returns a mounted node.
func NewNode(id string) *Node {
	return &Node{id: id, mounted: true}
}

// NodeID implements DisplayNode.
func (n *Node) NodeID() string { return n.id }

// Mounted reports whether the node is part of the display tree.
func (n *Node) Mounted() bool { return n.mounted }

// Unmount detaches the node from the display tree.
func (n *Node) Unmount() { n.mounted = false }

// Mount attaches the node to the display tree.
func (n *Node) Mount() { n.mounted = true }
