package solver

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// A Problem is a set of finite-domain variables and a list of clauses over
// them.
type Problem struct {
	// Domains holds, for each variable in Var order, its domain size.
	Domains []int
	// Clauses are the original clauses, as atom lists.
	Clauses [][]Atom
}

// NewProblem builds a problem from domain sizes and clauses and validates
// that every atom references a declared variable and an in-domain value.
func NewProblem(domains []int, clauses [][]Atom) (*Problem, error) {
	for i, d := range domains {
		if d < 1 {
			return nil, errors.Errorf("variable %d has invalid domain size %d", i+1, d)
		}
	}
	for i, clause := range clauses {
		for _, a := range clause {
			if a.Var < 0 || int(a.Var) >= len(domains) {
				return nil, errors.Errorf("clause %d references undeclared variable %d", i, a.Var.Int())
			}
			if a.Val < 0 || int(a.Val) >= domains[a.Var] {
				return nil, errors.Errorf("clause %d: value %d out of domain of variable %d (size %d)",
					i, a.Val, a.Var.Int(), domains[a.Var])
			}
		}
	}
	return &Problem{Domains: domains, Clauses: clauses}, nil
}

// NbVars returns the number of variables of the problem.
func (pb *Problem) NbVars() int {
	return len(pb.Domains)
}

// String returns the problem in the extended DIMACS syntax it is parsed
// from.
func (pb *Problem) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "p cnf %d %d\n", len(pb.Domains), len(pb.Clauses))
	for i, d := range pb.Domains {
		fmt.Fprintf(&sb, "d %d %d\n", i+1, d)
	}
	for _, clause := range pb.Clauses {
		for _, a := range clause {
			sb.WriteString(a.String())
			sb.WriteByte(' ')
		}
		sb.WriteString("0\n")
	}
	return sb.String()
}
