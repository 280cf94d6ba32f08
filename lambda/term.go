package lambda

import "strings"

// Term is a node of the lambda calculus AST: Variable, Abstraction or Application.
//
// Terms are plain values: they are immutable once built, own their children,
// and two terms are structurally equal iff they are ==.
type Term interface {
	String() string
	render(sb *strings.Builder)
}

// Variable is a bound or free occurrence of a name.
type Variable struct {
	Name string
}

// Abstraction binds Param over Body.
type Abstraction struct {
	Param string
	Body  Term
}

// Application applies Func to Arg.
type Application struct {
	Func Term
	Arg  Term
}

func (this Variable) String() string { return this.Name }

func (this Abstraction) String() string { return render(this) }

func (this Application) String() string { return render(this) }

func render(t Term) string {
	var sb strings.Builder
	t.render(&sb)
	return sb.String()
}

func (this Variable) render(sb *strings.Builder) {
	sb.WriteString(this.Name)
}

func (this Abstraction) render(sb *strings.Builder) {
	sb.WriteString(`(\`)
	sb.WriteString(this.Param)
	sb.WriteByte('.')
	this.Body.render(sb)
	sb.WriteByte(')')
}

func (this Application) render(sb *strings.Builder) {
	sb.WriteByte('(')
	this.Func.render(sb)
	sb.WriteByte('$')
	this.Arg.render(sb)
	sb.WriteByte(')')
}
