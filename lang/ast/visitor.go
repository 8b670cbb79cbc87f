package ast

// Visitor is implemented by types that want to traverse an AST via Walk.
// Visit is called with each node before its children are visited (if Visit
// returns a non-nil Visitor, which is used for the children; returning nil
// stops the descent into that node's children).
type Visitor interface {
	Visit(n Node) Visitor
}

// Walk traverses the AST rooted at n in depth-first order, calling
// v.Visit(n) before visiting n's children with the Visitor it returns.
func Walk(v Visitor, n Node) {
	if n == nil {
		return
	}
	if v = v.Visit(n); v == nil {
		return
	}
	n.Walk(v)
}

// VisitorFunc adapts a plain function to the Visitor interface, always
// descending into children.
type VisitorFunc func(n Node)

func (f VisitorFunc) Visit(n Node) Visitor {
	f(n)
	return f
}
