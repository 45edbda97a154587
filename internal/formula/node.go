package formula

import "fmt"

// Node is one vertex of an expression tree.
//
// Name holds the identifier of a KindName node and the function name of a
// KindCall node. Value holds the number of a KindNumber node and Bool the
// value of a KindBoolean node.
type Node struct {
	Kind     Kind
	Name     string
	Value    float64
	Bool     bool
	Children []*Node
}

// Number returns a numeric literal.
func Number(v float64) *Node { return &Node{Kind: KindNumber, Value: v} }

// Boolean returns a boolean literal.
func Boolean(v bool) *Node { return &Node{Kind: KindBoolean, Bool: v} }

// Name returns an identifier reference.
func Name(id string) *Node { return &Node{Kind: KindName, Name: id} }

// Time returns the simulation time symbol.
func Time() *Node { return &Node{Kind: KindTime} }

// Delay returns delay(expr, duration).
func Delay(expr, duration *Node) *Node {
	return &Node{Kind: KindDelay, Children: []*Node{expr, duration}}
}

// Call returns a function call node.
func Call(name string, args ...*Node) *Node {
	return &Node{Kind: KindCall, Name: name, Children: args}
}

// Op returns an operator node of the given kind.
func Op(kind Kind, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

// Piecewise returns a conditional: value when cond holds, otherwise other.
func Piecewise(value, cond, other *Node) *Node {
	return &Node{Kind: KindPiecewise, Children: []*Node{value, cond, other}}
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Child returns the i-th child.
func (n *Node) Child(i int) *Node { return n.Children[i] }

// ReplaceChild swaps the i-th child for c.
func (n *Node) ReplaceChild(i int, c *Node) {
	if i < 0 || i >= len(n.Children) {
		panic(fmt.Sprintf("formula: child index %d out of range [0,%d)", i, len(n.Children)))
	}
	n.Children[i] = c
}

// MultiplyWith turns n, in place, into (n * factor).
func (n *Node) MultiplyWith(factor *Node) {
	n.wrap(KindTimes, factor)
}

// DivideBy turns n, in place, into (n / divisor).
func (n *Node) DivideBy(divisor *Node) {
	n.wrap(KindDivide, divisor)
}

func (n *Node) wrap(kind Kind, other *Node) {
	inner := *n
	*n = Node{Kind: kind, Children: []*Node{&inner, other}}
}

// Clone returns a deep copy of the tree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return &c
}

// Equal reports structural equality.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Kind != o.Kind || n.Name != o.Name || n.Value != o.Value || n.Bool != o.Bool {
		return false
	}
	if len(n.Children) != len(o.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}
