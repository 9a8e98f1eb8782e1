package model

// Node represents a file or directory in the scanned tree
type Node struct {
	Path     string
	Name     string
	Size     *uint64 // nil when unknown or not applicable (symlinks, special files)
	IsDir    bool
	Children []*Node
	Parent   *Node
}

// SizeOf returns a pointer to n, for building nodes with a known size
func SizeOf(n uint64) *uint64 {
	return &n
}

// HasSize reports whether the node carries a byte count
func (n *Node) HasSize() bool {
	return n.Size != nil
}

// EffectiveSize returns the node's size, treating a missing size as zero
func (n *Node) EffectiveSize() uint64 {
	if n.Size == nil {
		return 0
	}
	return *n.Size
}

// ComputeSizes calculates and caches sizes for the entire tree.
// Directories get the sum of their children's effective sizes.
// Call this once after building the tree
func (n *Node) ComputeSizes() uint64 {
	if !n.IsDir {
		return n.EffectiveSize()
	}
	var total uint64
	for _, child := range n.Children {
		total += child.ComputeSizes()
	}
	n.Size = SizeOf(total)
	return total
}

// Depth returns the number of ancestors above n
func (n *Node) Depth() int {
	depth := 0
	for p := n.Parent; p != nil; p = p.Parent {
		depth++
	}
	return depth
}
