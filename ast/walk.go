package ast

// Inspect traverses the tree rooted at node in depth-first order, calling f
// for each node before its children. If f returns false, the children of that
// node are skipped. Children are visited in source order.
func Inspect(node Node, f func(Node) bool) {
	if IsNil(node) {
		return
	}
	if !f(node) {
		return
	}
	for _, child := range children(node) {
		Inspect(child, f)
	}
}

// IsNil reports whether node is nil or a typed nil pointer.
func IsNil(node Node) bool {
	switch n := node.(type) {
	case nil:
		return true
	case *SelectWithUnionQuery:
		return n == nil
	case *SelectQuery:
		return n == nil
	case *CreateViewQuery:
		return n == nil
	case *WithElement:
		return n == nil
	case *TableExpression:
		return n == nil
	case *TableJoin:
		return n == nil
	case *OrderByElement:
		return n == nil
	case *Identifier:
		return n == nil
	case *Literal:
		return n == nil
	case *Asterisk:
		return n == nil
	case *FunctionCall:
		return n == nil
	case *WindowSpec:
		return n == nil
	case *BinaryExpr:
		return n == nil
	case *UnaryExpr:
		return n == nil
	case *Subquery:
		return n == nil
	case *CaseExpr:
		return n == nil
	case *WhenClause:
		return n == nil
	case *DataType:
		return n == nil
	case *CastExpr:
		return n == nil
	case *IntervalExpr:
		return n == nil
	case *ArrayAccess:
		return n == nil
	case *AliasedExpr:
		return n == nil
	case *BetweenExpr:
		return n == nil
	case *InExpr:
		return n == nil
	case *IsNullExpr:
		return n == nil
	case *LikeExpr:
		return n == nil
	case *ExistsExpr:
		return n == nil
	}
	return false
}

func children(node Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, n := range nodes {
			if !IsNil(n) {
				out = append(out, n)
			}
		}
	}
	addExprs := func(exprs []Expression) {
		for _, e := range exprs {
			if !IsNil(e) {
				out = append(out, e)
			}
		}
	}

	switch n := node.(type) {
	case *SelectWithUnionQuery:
		for _, s := range n.Selects {
			add(s)
		}
	case *CreateViewQuery:
		if n.Select != nil {
			add(n.Select)
		}
	case *SelectQuery:
		for _, w := range n.With {
			add(w)
		}
		addExprs(n.Columns)
		for _, t := range n.From {
			add(t)
		}
		add(exprNode(n.Where))
		addExprs(n.GroupBy)
		add(exprNode(n.Having))
		for _, o := range n.OrderBy {
			add(o)
		}
		add(exprNode(n.Limit), exprNode(n.Offset))
	case *WithElement:
		if n.Query != nil {
			add(n.Query)
		}
	case *TableExpression:
		add(exprNode(n.Table))
		if n.Join != nil {
			add(n.Join)
		}
	case *TableJoin:
		add(exprNode(n.On))
		addExprs(n.Using)
	case *OrderByElement:
		add(exprNode(n.Expression))
	case *FunctionCall:
		addExprs(n.Arguments)
		if n.Over != nil {
			add(n.Over)
		}
	case *WindowSpec:
		addExprs(n.PartitionBy)
		for _, o := range n.OrderBy {
			add(o)
		}
	case *BinaryExpr:
		add(exprNode(n.Left), exprNode(n.Right))
	case *UnaryExpr:
		add(exprNode(n.Operand))
	case *Subquery:
		if n.Query != nil {
			add(n.Query)
		}
	case *CaseExpr:
		add(exprNode(n.Operand))
		for _, w := range n.Whens {
			add(w)
		}
		add(exprNode(n.Else))
	case *WhenClause:
		add(exprNode(n.Condition), exprNode(n.Result))
	case *CastExpr:
		add(exprNode(n.Expr))
	case *IntervalExpr:
		add(exprNode(n.Value))
	case *ArrayAccess:
		add(exprNode(n.Array), exprNode(n.Index))
	case *AliasedExpr:
		add(exprNode(n.Expr))
	case *BetweenExpr:
		add(exprNode(n.Expr), exprNode(n.Low), exprNode(n.High))
	case *InExpr:
		add(exprNode(n.Expr))
		addExprs(n.List)
		if n.Query != nil {
			add(n.Query)
		}
	case *IsNullExpr:
		add(exprNode(n.Expr))
	case *LikeExpr:
		add(exprNode(n.Expr), exprNode(n.Pattern))
	case *ExistsExpr:
		if n.Query != nil {
			add(n.Query)
		}
	case *Literal:
		if elems, ok := n.Value.([]Expression); ok {
			addExprs(elems)
		}
	}
	return out
}

// exprNode converts a possibly-nil Expression to a Node without producing a
// typed nil interface.
func exprNode(e Expression) Node {
	if IsNil(e) {
		return nil
	}
	return e
}
