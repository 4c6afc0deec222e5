package solver

import "strings"

// A Clause is a disjunction of atoms, associated with the mutable
// satisfaction state maintained by the propagator and the backtracker.
type Clause struct {
	atoms   []Atom
	learned bool
	// sat is true iff some atom of the clause agrees with the current
	// assignment. satLevel records the decision level at which that
	// happened, -1 while the clause is unsatisfied.
	sat      bool
	satLevel int32
	// numFree is the number of atoms whose (var, val) pair is currently
	// free, while the clause is unsatisfied. Maintained incrementally;
	// satisfying the clause drops its free atoms from the count, and the
	// count is rebuilt when backtracking makes the clause unsatisfied.
	numFree int32
	// watched atom slots (indices into atoms); -1 means absent.
	// Only meaningful when the solver runs with watched literals.
	watch [2]int32
}

// NewClause returns a clause whose atoms are given as an argument.
func NewClause(atoms []Atom) *Clause {
	return &Clause{
		atoms:    atoms,
		satLevel: -1,
		numFree:  int32(len(atoms)),
		watch:    [2]int32{-1, -1},
	}
}

// NewLearnedClause returns a new clause marked as learned.
func NewLearnedClause(atoms []Atom) *Clause {
	c := NewClause(atoms)
	c.learned = true
	return c
}

// Len returns the nb of atoms in the clause.
func (c *Clause) Len() int {
	return len(c.atoms)
}

// Get returns the ith atom from the clause.
func (c *Clause) Get(i int) Atom {
	return c.atoms[i]
}

// Learned returns true iff c was learned during conflict analysis.
func (c *Clause) Learned() bool {
	return c.learned
}

// Satisfied returns true iff the clause is satisfied by the current
// assignment.
func (c *Clause) Satisfied() bool {
	return c.sat
}

// has returns true iff the clause contains the exact atom a.
func (c *Clause) has(a Atom) bool {
	for _, b := range c.atoms {
		if b == a {
			return true
		}
	}
	return false
}

// String returns the clause in the problem-file syntax, 0-terminated.
func (c *Clause) String() string {
	var sb strings.Builder
	for _, a := range c.atoms {
		sb.WriteString(a.String())
		sb.WriteByte(' ')
	}
	sb.WriteByte('0')
	return sb.String()
}
