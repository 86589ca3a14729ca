package filetree

import "strings"

// Flatten returns root and all of its descendants in depth-first pre-order.
func Flatten(root *Node) []*Node {
	if root == nil {
		return nil
	}
	var nodes []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		nodes = append(nodes, n)
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(root)
	return nodes
}

// Leaves returns the file nodes under root in depth-first order.
func Leaves(root *Node) []*Node {
	var leaves []*Node
	for _, n := range Flatten(root) {
		if n.IsLeaf() {
			leaves = append(leaves, n)
		}
	}
	return leaves
}

// Find returns the node with the given path, or nil.
func Find(root *Node, path string) *Node {
	for _, n := range Flatten(root) {
		if n.Path == path {
			return n
		}
	}
	return nil
}

// Count returns the number of directories and files below root, root excluded.
func Count(root *Node) (dirs, files int) {
	for _, n := range Flatten(root) {
		if n == root {
			continue
		}
		if n.IsLeaf() {
			files++
		} else {
			dirs++
		}
	}
	return dirs, files
}

// RenderTree pretty-prints the descendants of root with box-drawing
// connectors. The root itself is not printed and every line ends in "\n":
//
//	├── b.txt
//	└── c.txt
func RenderTree(root *Node) string {
	if root == nil {
		return ""
	}
	var b strings.Builder
	renderChildren(&b, root, "")
	return b.String()
}

func renderChildren(b *strings.Builder, n *Node, prefix string) {
	for i, child := range n.Children {
		connector, continuation := "├── ", "│   "
		if i == len(n.Children)-1 {
			connector, continuation = "└── ", "    "
		}
		b.WriteString(prefix)
		b.WriteString(connector)
		b.WriteString(child.Name)
		b.WriteString("\n")
		if !child.IsLeaf() {
			renderChildren(b, child, prefix+continuation)
		}
	}
}
