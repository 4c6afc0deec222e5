package solver

// Describes basic types and constants that are used in the solver

import "fmt"

// Status is the status of a given problem at a given moment.
type Status byte

const (
	// Indet means the problem is not proven sat or unsat yet.
	Indet = Status(iota)
	// Sat means the problem is satisfied.
	Sat
	// Unsat means the problem is unsatisfied.
	Unsat
	// Timeout means the time budget was exhausted before a verdict.
	Timeout
)

func (s Status) String() string {
	switch s {
	case Indet:
		return "INDETERMINATE"
	case Sat:
		return "SAT"
	case Unsat:
		return "UNSAT"
	case Timeout:
		return "TIMEOUT"
	default:
		panic("invalid status")
	}
}

// Var start at 0 ; thus the variable 1 from a problem file is the Var 0.
type Var int32

// Value is a 0-indexed domain value of a variable.
type Value int32

// ClauseID is an index into the solver's append-only clause store.
type ClauseID int32

// IntToVar converts a 1-indexed problem-file variable to a Var.
func IntToVar(i int) Var {
	return Var(i - 1)
}

// Int returns the equivalent 1-indexed problem-file variable.
func (v Var) Int() int {
	return int(v) + 1
}

// An Atom states that a variable takes, or does not take, a domain value.
// Atoms are immutable value objects.
type Atom struct {
	Var Var
	Val Value
	Eq  bool // true for "var = val", false for "var ≠ val"
}

// EqAtom returns the atom "v = k", with v 1-indexed as in problem files.
func EqAtom(v, k int) Atom {
	return Atom{Var: IntToVar(v), Val: Value(k), Eq: true}
}

// NeAtom returns the atom "v ≠ k", with v 1-indexed as in problem files.
func NeAtom(v, k int) Atom {
	return Atom{Var: IntToVar(v), Val: Value(k), Eq: false}
}

// Negation returns the atom with the opposite polarity on the same (var, val).
func (a Atom) Negation() Atom {
	return Atom{Var: a.Var, Val: a.Val, Eq: !a.Eq}
}

func (a Atom) String() string {
	if a.Eq {
		return fmt.Sprintf("%d=%d", a.Var.Int(), a.Val)
	}
	return fmt.Sprintf("%d!=%d", a.Var.Int(), a.Val)
}

// assignStatus is the ternary status of a (variable, value) pair.
type assignStatus int8

const (
	// free means the pair is unconstrained so far.
	free assignStatus = 0
	// forbidden means some clause or decision implies "var ≠ val".
	forbidden assignStatus = -1
	// assigned means the solver committed "var = val".
	assigned assignStatus = 1
)

// reasonKind discriminates the justification of a non-free status.
type reasonKind uint8

const (
	// reasonDecision marks a status chosen by the branching heuristic.
	reasonDecision reasonKind = iota
	// reasonEntailed marks an assignment forced because every other value
	// of the variable was forbidden.
	reasonEntailed
	// reasonClosure marks a value forbidden because its variable was
	// assigned another value.
	reasonClosure
	// reasonClause marks a status forced by unit propagation of a clause.
	reasonClause
)

// A Reason justifies a non-free (variable, value) status. The zero value is
// a decision.
type Reason struct {
	kind   reasonKind
	clause ClauseID
}

// Decision is the reason of statuses chosen by the branching heuristic.
var Decision = Reason{kind: reasonDecision}

// Entailed is the reason of assignments forced by domain exhaustion.
var Entailed = Reason{kind: reasonEntailed}

// Closure is the reason of values forbidden by an assignment of their
// variable to another value.
var Closure = Reason{kind: reasonClosure}

// Propagated returns the reason of a status forced by unit propagation of
// the given clause.
func Propagated(id ClauseID) Reason {
	return Reason{kind: reasonClause, clause: id}
}

// IsDecision is true iff the reason is a heuristic decision.
func (r Reason) IsDecision() bool { return r.kind == reasonDecision }

// IsEntailed is true iff the reason is the entailment rule.
func (r Reason) IsEntailed() bool { return r.kind == reasonEntailed }

// IsClosure is true iff the reason is domain closure.
func (r Reason) IsClosure() bool { return r.kind == reasonClosure }

// Clause returns the propagating clause, if the reason is a propagation.
func (r Reason) Clause() (ClauseID, bool) {
	return r.clause, r.kind == reasonClause
}

func (r Reason) String() string {
	switch r.kind {
	case reasonDecision:
		return "decision"
	case reasonEntailed:
		return "entailed"
	case reasonClosure:
		return "closure"
	default:
		return fmt.Sprintf("clause %d", r.clause)
	}
}
