package parser

import "strings"

// Node is a parse-tree node: a leaf carrying a token's literal text, or an
// internal node with ordered children. Both are labelled by Kind.
type Node struct {
	Kind     Kind
	Children []*Node
	leaf     bool
	text     string
}

// Leaf creates a leaf node from a token.
func Leaf(tok Token) *Node {
	return &Node{Kind: tok.Kind, leaf: true, text: tok.Text}
}

// Internal creates an internal node with the given children.
func Internal(kind Kind, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

// IsLeaf reports whether n is a leaf.
func (n *Node) IsLeaf() bool {
	return n.leaf
}

// Add appends a child.
func (n *Node) Add(child *Node) {
	n.Children = append(n.Children, child)
}

// Child returns the i-th child, or nil if there is none.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Text returns the literal text of a leaf, or the children's texts joined
// by single spaces for an internal node. Move numbers keep their periods
// attached; tag pairs and variations read as they were written.
func (n *Node) Text() string {
	if n.leaf {
		return n.text
	}
	switch n.Kind {
	case MoveNumber:
		var sb strings.Builder
		for _, c := range n.Children {
			sb.WriteString(c.Text())
		}
		return sb.String()
	case TagPair:
		if len(n.Children) == 4 {
			return "[" + n.Children[1].Text() + " " + n.Children[2].Text() + "]"
		}
	case Variation:
		return joinVariation(n.Children)
	}
	parts := make([]string, len(n.Children))
	for i, c := range n.Children {
		parts[i] = c.Text()
	}
	return strings.Join(parts, " ")
}

// joinVariation rebuilds variation text with conventional spacing: none
// inside parentheses or before periods.
func joinVariation(children []*Node) string {
	var sb strings.Builder
	prev := ""
	for i, c := range children {
		text := c.Text()
		if i > 0 && prev != "(" && text != ")" && text != "." {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
		prev = text
	}
	return sb.String()
}
