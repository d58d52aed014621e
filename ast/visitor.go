/*
File    : pl0run/ast/visitor.go
*/
package ast

// Visitor implements the visitor pattern for AST traversal: one method per
// concrete node type, so callers (such as the PrintVisitor pretty-printer)
// add behavior without scattering type switches across the tree. The icg
// and astinterp packages use type switches instead, since Visitor methods
// cannot return an error. Block is not visited directly — Program, Procedure each call
// into their Block's fields explicitly, since a Block is a plain
// declaration container rather than a polymorphic node.
type Visitor interface {
	VisitProgram(*Program)
	VisitAssignment(*Assignment)
	VisitCall(*Call)
	VisitIf(*If)
	VisitWhile(*While)
	VisitBegin(*Begin)
	VisitRead(*Read)
	VisitWrite(*Write)

	VisitOddCondition(*OddCondition)
	VisitComparisonCondition(*ComparisonCondition)

	VisitExpression(*Expression)
	VisitTerm(*Term)
	VisitIntegerFactor(*IntegerFactor)
	VisitIdentifierFactor(*IdentifierFactor)
	VisitParenFactor(*ParenFactor)
}

func (n *Program) Accept(v Visitor)              { v.VisitProgram(n) }
func (n *Assignment) Accept(v Visitor)           { v.VisitAssignment(n) }
func (n *Call) Accept(v Visitor)                 { v.VisitCall(n) }
func (n *If) Accept(v Visitor)                   { v.VisitIf(n) }
func (n *While) Accept(v Visitor)                { v.VisitWhile(n) }
func (n *Begin) Accept(v Visitor)                { v.VisitBegin(n) }
func (n *Read) Accept(v Visitor)                 { v.VisitRead(n) }
func (n *Write) Accept(v Visitor)                { v.VisitWrite(n) }
func (n *OddCondition) Accept(v Visitor)         { v.VisitOddCondition(n) }
func (n *ComparisonCondition) Accept(v Visitor)  { v.VisitComparisonCondition(n) }
func (n *Expression) Accept(v Visitor)           { v.VisitExpression(n) }
func (n *Term) Accept(v Visitor)                 { v.VisitTerm(n) }
func (n *IntegerFactor) Accept(v Visitor)        { v.VisitIntegerFactor(n) }
func (n *IdentifierFactor) Accept(v Visitor)     { v.VisitIdentifierFactor(n) }
func (n *ParenFactor) Accept(v Visitor)          { v.VisitParenFactor(n) }
