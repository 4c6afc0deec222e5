package solver

// Two-watched-literal scheme, an optional propagation index enabled by
// Solver.WatchedLiterals. Each clause watches two of its atoms; a clause
// only needs attention when a watched atom is falsified. The occurrence
// lists stay authoritative for counters and satisfaction state, so the
// observable semantics are identical to the plain scheme.
//
// Watches are never restored on backtrack: unassignment only grows the set
// of non-false atoms, which keeps the watch invariant intact. A watch that
// was falsified while its clause was satisfied is necessarily freed before
// the clause becomes unsatisfied again, since the falsification happened
// at or above the clause's satisfaction level.

// watchState is the status of a clause as seen through its watched slots.
type watchState byte

const (
	watchMany watchState = iota
	watchSat
	watchUnit
	watchConflict
)

// initWatches sets up the watched slots and watcher lists for every
// clause. Called once, at the start of the first Solve.
func (s *Solver) initWatches() {
	s.watched = true
	for i := range s.clauses {
		s.watchClause(ClauseID(i))
	}
}

// watchClause picks two watches for the clause, preferring non-false atoms
// and, among falsified ones, the most recently falsified. For a learned
// clause this selects the asserting atom and the backjump-level atom.
func (s *Solver) watchClause(id ClauseID) {
	c := s.clauses[id]
	best, second := int32(-1), int32(-1)
	var bestScore, secondScore int64
	for i, a := range c.atoms {
		var score int64
		if s.falsified(a) {
			score = int64(s.varState[a.Var].level[a.Val])
		} else {
			score = int64(1) << 32
		}
		switch {
		case best < 0 || score > bestScore:
			second, secondScore = best, bestScore
			best, bestScore = int32(i), score
		case second < 0 || score > secondScore:
			second, secondScore = int32(i), score
		}
	}
	c.watch = [2]int32{best, second}
	if best >= 0 {
		s.addWatcher(c.atoms[best], id)
	}
	if second >= 0 {
		s.addWatcher(c.atoms[second], id)
	}
}

func (s *Solver) addWatcher(a Atom, id ClauseID) {
	v := s.varState[a.Var]
	if a.Eq {
		v.posWatch[a.Val] = append(v.posWatch[a.Val], id)
	} else {
		v.negWatch[a.Val] = append(v.negWatch[a.Val], id)
	}
}

func (s *Solver) watcherList(v *variable, eq bool, k Value) *[]ClauseID {
	if eq {
		return &v.posWatch[k]
	}
	return &v.negWatch[k]
}

// watchFalsify visits every clause watching the freshly falsified atom
// (eq, k) of v. Each one tries to move the watch to another non-false
// atom; when none exists the clause is unit or conflicting, depending on
// the other watch.
func (s *Solver) watchFalsify(v *variable, eq bool, k Value) {
	ws := s.watcherList(v, eq, k)
	i := 0
	for i < len(*ws) {
		id := (*ws)[i]
		c := s.clauses[id]
		if c.sat {
			i++
			continue
		}
		slot := -1
		for si, wi := range c.watch {
			if wi < 0 {
				continue
			}
			if a := c.atoms[wi]; a.Var == v.id && a.Val == k && a.Eq == eq {
				slot = si
				break
			}
		}
		if slot == -1 {
			i++
			continue
		}
		if j := s.replacementWatch(c, Atom{Var: v.id, Val: k, Eq: eq}); j >= 0 {
			c.watch[slot] = int32(j)
			(*ws)[i] = (*ws)[len(*ws)-1]
			*ws = (*ws)[:len(*ws)-1]
			s.addWatcher(c.atoms[j], id)
			continue
		}
		other := c.watch[1-slot]
		switch {
		case other < 0:
			if s.conflict < 0 {
				s.conflict = id
			}
		case s.atomTrue(c.atoms[other]):
			// clause is satisfied through the other watch
		case s.falsified(c.atoms[other]):
			if s.conflict < 0 {
				s.conflict = id
			}
		default:
			s.units.pushFront(id)
		}
		i++
	}
}

// replacementWatch returns the index of a non-false atom of c outside the
// watched slots, or -1 if none exists. Copies of the atom being falsified
// are skipped: its status is not updated yet, but it is about to be false.
func (s *Solver) replacementWatch(c *Clause, falsifying Atom) int {
	for j, a := range c.atoms {
		if int32(j) == c.watch[0] || int32(j) == c.watch[1] || a == falsifying {
			continue
		}
		if !s.falsified(a) {
			return j
		}
	}
	return -1
}

// watchedStatus classifies an unsatisfied clause by looking only at its
// two watched slots: satisfied if a watch is true, conflicting if both are
// false (or absent), unit if one is free and the other false or absent.
func (s *Solver) watchedStatus(c *Clause) watchState {
	w0, w1 := c.watch[0], c.watch[1]
	if w0 < 0 {
		return watchConflict // the empty clause
	}
	a0 := c.atoms[w0]
	if w1 < 0 {
		switch {
		case s.atomTrue(a0):
			return watchSat
		case s.falsified(a0):
			return watchConflict
		default:
			return watchUnit
		}
	}
	a1 := c.atoms[w1]
	if s.atomTrue(a0) || s.atomTrue(a1) {
		return watchSat
	}
	f0, f1 := s.falsified(a0), s.falsified(a1)
	switch {
	case f0 && f1:
		return watchConflict
	case f0 || f1:
		return watchUnit
	default:
		return watchMany
	}
}
