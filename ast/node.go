package ast

import (
	"github.com/pattyshack/gt/parseutil"
)

const (
	BOF = "BOF"
	EOF = "EOF"
)

type Node interface {
	parseutil.Locatable
	Walk(Visitor)

	// The token kind for leaves, the production's lhs for interior nodes.
	Symbol() string

	NodeType() Type
	SetNodeType(Type)
}

type Visitor interface {
	Enter(Node)
	Exit(Node)
}

type typed struct {
	Type Type
}

func (t *typed) NodeType() Type {
	return t.Type
}

func (t *typed) SetNodeType(nodeType Type) {
	t.Type = nodeType
}

// A single input token.
type Leaf struct {
	parseutil.StartEndPos
	typed

	Kind   string
	Lexeme string
}

var _ Node = &Leaf{}

func NewLeaf(pos parseutil.StartEndPos, kind string, lexeme string) *Leaf {
	return &Leaf{
		StartEndPos: pos,
		Kind:        kind,
		Lexeme:      lexeme,
	}
}

func (leaf *Leaf) Symbol() string {
	return leaf.Kind
}

func (leaf *Leaf) Walk(visitor Visitor) {
	visitor.Enter(leaf)
	visitor.Exit(leaf)
}

// True for the begin/end-of-file markers, which are not counted as real
// tokens.
func (leaf *Leaf) IsMarker() bool {
	return leaf.Kind == BOF || leaf.Kind == EOF
}

// An interior node exclusively owns its children.  Nullable productions have
// no children.
type Interior struct {
	parseutil.StartEndPos
	typed

	Production *Production
	Children   []Node
}

var _ Node = &Interior{}

func NewInterior(
	pos parseutil.StartEndPos,
	production *Production,
	children []Node,
) *Interior {
	return &Interior{
		StartEndPos: pos,
		Production:  production,
		Children:    children,
	}
}

func (node *Interior) Symbol() string {
	return node.Production.Lhs
}

func (node *Interior) Rule() RuleKind {
	return node.Production.Rule
}

func (node *Interior) Walk(visitor Visitor) {
	visitor.Enter(node)
	for _, child := range node.Children {
		child.Walk(visitor)
	}
	visitor.Exit(node)
}

// Child returns the idx-th child as an interior node.  Panics if the child is
// a leaf, which means the tree does not match its production.
func (node *Interior) Child(idx int) *Interior {
	child, ok := node.Children[idx].(*Interior)
	if !ok {
		panic("should never happen: " + node.Production.String())
	}
	return child
}

// Leaf returns the idx-th child as a leaf.
func (node *Interior) Leaf(idx int) *Leaf {
	child, ok := node.Children[idx].(*Leaf)
	if !ok {
		panic("should never happen: " + node.Production.String())
	}
	return child
}

// Leaves returns the tree's leaves in order.
func Leaves(root Node) []*Leaf {
	collector := &leafCollector{}
	root.Walk(collector)
	return collector.leaves
}

type leafCollector struct {
	leaves []*Leaf
}

func (collector *leafCollector) Enter(node Node) {
	leaf, ok := node.(*Leaf)
	if ok {
		collector.leaves = append(collector.leaves, leaf)
	}
}

func (collector *leafCollector) Exit(Node) {}
