package solver

import "github.com/pkg/errors"

// Resolution-based clause learning. Starting from the conflicting clause,
// the analyzer resolves away the latest-falsified atom against the reason
// of its falsification until the clause is asserting, i.e. exactly one of
// its atoms is falsified at the current level. The learned clause becomes
// unit right after backjumping.

// analyze learns a clause from the conflict and returns the level to
// backjump to. An error means the analysis failed to produce an asserting
// clause, which indicates a solver bug.
func (s *Solver) analyze(confl *Clause) (btLevel int32, err error) {
	clause := append([]Atom(nil), confl.atoms...)
	// Each resolution step replaces the pivot by atoms falsified earlier
	// on the trail, so the trail length bounds the number of steps.
	limit := 2*len(s.trail) + 8
	for step := 0; ; step++ {
		if step > limit {
			return 0, errors.Errorf("no asserting clause after %d resolutions: analysis is stuck", step)
		}
		if s.asserting(clause) {
			s.learn(clause)
			return s.backjumpLevel(clause), nil
		}
		a, ok := s.latestFalsified(clause)
		if !ok {
			return 0, errors.New("conflict clause contains no falsified atom")
		}
		clause = resolve(clause, a, s.reasonAtoms(a))
	}
}

// asserting is true iff exactly one atom of the clause is falsified at the
// current decision level.
func (s *Solver) asserting(clause []Atom) bool {
	n := 0
	for _, a := range clause {
		if s.falsified(a) && s.varState[a.Var].level[a.Val] == s.level {
			n++
			if n > 1 {
				return false
			}
		}
	}
	return n == 1
}

// latestFalsified returns the atom of the clause whose falsification is
// the most recent, determined by scanning the trail from the top.
func (s *Solver) latestFalsified(clause []Atom) (Atom, bool) {
	for i := len(s.trail) - 1; i >= 0; i-- {
		e := s.trail[i]
		for _, a := range clause {
			if a.Var == e.atom.Var && a.Val == e.atom.Val && s.falsified(a) {
				return a, true
			}
		}
	}
	return Atom{}, false
}

// reasonAtoms returns, as an atom list, the clause justifying the
// falsification of a. Decisions, entailments and domain closure have no
// stored clause; a valid one is synthesized:
//
//   - decision on (v, k): the tautology {v=k, v≠k};
//   - entailment of v: the total-domain axiom {v=0, v=1, ..., v=d-1};
//   - closure of (v, j) after assigning v=k: the exclusivity axiom
//     {v≠k, v≠j}.
func (s *Solver) reasonAtoms(a Atom) []Atom {
	v := s.varState[a.Var]
	r := v.reason[a.Val]
	switch {
	case r.IsDecision():
		return []Atom{{Var: a.Var, Val: a.Val, Eq: true}, {Var: a.Var, Val: a.Val, Eq: false}}
	case r.IsEntailed():
		atoms := make([]Atom, v.domSize)
		for j := range atoms {
			atoms[j] = Atom{Var: a.Var, Val: Value(j), Eq: true}
		}
		return atoms
	case r.IsClosure():
		return []Atom{{Var: a.Var, Val: v.value, Eq: false}, {Var: a.Var, Val: a.Val, Eq: false}}
	default:
		id, _ := r.Clause()
		return s.clauses[id].atoms
	}
}

// resolve returns the resolvent of clause and reason on the pivot a: the
// union of both atom sets minus the complementary pair on a's (var, val).
// Atoms on the same variable with different values are not complementary;
// resolution proceeds on the chosen pivot only.
func resolve(clause []Atom, a Atom, reason []Atom) []Atom {
	res := make([]Atom, 0, len(clause)+len(reason))
	for _, b := range clause {
		if b != a {
			res = append(res, b)
		}
	}
	neg := a.Negation()
	for _, b := range reason {
		if b == neg || containsAtom(res, b) {
			continue
		}
		res = append(res, b)
	}
	return res
}

func containsAtom(atoms []Atom, a Atom) bool {
	for _, b := range atoms {
		if b == a {
			return true
		}
	}
	return false
}

// learn appends the asserting clause to the store. Its free-atom count is
// forced to zero so that, once the backjump frees the asserting atom, the
// clause is detected as unit.
func (s *Solver) learn(clause []Atom) {
	c := NewLearnedClause(append([]Atom(nil), clause...))
	c.numFree = 0
	id := s.appendClause(c)
	s.Stats.Learned++
	if s.debug {
		s.Logger.Debugf("learned clause %d: %s", id, c)
	}
}

// backjumpLevel returns the second-highest decision level among the atoms
// of the learned clause, or 0 for a unit clause.
func (s *Solver) backjumpLevel(clause []Atom) int32 {
	if len(clause) == 1 {
		return 0
	}
	btLevel := int32(0)
	for _, a := range clause {
		if lvl := s.varState[a.Var].level[a.Val]; lvl < s.level && lvl > btLevel {
			btLevel = lvl
		}
	}
	return btLevel
}
