// Package render maps analysis results to a display tree and prints that tree
// to a terminal.
package render

// Kind is the role a node plays in the view.
type Kind string

const (
	KindContainer Kind = "container"
	KindHeading   Kind = "heading"
	KindParagraph Kind = "paragraph"
	KindList      Kind = "list"
	KindItem      Kind = "item"
	KindTags      Kind = "tags"
	KindTag       Kind = "tag"
	KindRow       Kind = "row"
	KindBar       Kind = "bar"
	KindPre       Kind = "pre"
	KindNotice    Kind = "notice"
	KindCard      Kind = "card"
)

// Node is a single element of a rendered view.
type Node struct {
	Kind     Kind
	Class    string
	Text     string
	Width    string
	Children []*Node
}

// FindAll returns every node in the tree (including n) with the given class,
// in document order.
func (n *Node) FindAll(class string) []*Node {
	var found []*Node
	n.walk(func(node *Node) {
		if node.Class == class {
			found = append(found, node)
		}
	})
	return found
}

// Find returns the first node with the given class or nil.
func (n *Node) Find(class string) *Node {
	if all := n.FindAll(class); len(all) > 0 {
		return all[0]
	}
	return nil
}

func (n *Node) walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, child := range n.Children {
		child.walk(fn)
	}
}

func el(kind Kind, class string, children ...*Node) *Node {
	return &Node{Kind: kind, Class: class, Children: children}
}

func text(kind Kind, class, s string) *Node {
	return &Node{Kind: kind, Class: class, Text: s}
}
