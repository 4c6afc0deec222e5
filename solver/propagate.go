package solver

// The propagator applies two orthogonal rules until a fixpoint or a
// conflict:
//
//  1. the unit clause rule: an unsatisfied clause with a single free atom
//     forces that atom;
//  2. the entailment rule: a variable whose every value but one is
//     forbidden is assigned the remaining value.
//
// All status, counter and clause-satisfaction mutations flow through this
// file and the backtracker.

// unitQueue holds the ids of clauses believed to be unit. Clauses found
// during a scan are pushed at the back; clauses becoming unit during
// propagation are pushed at the front so they are handled first.
type unitQueue struct {
	items []ClauseID
	head  int
}

func (q *unitQueue) reset() {
	q.items = q.items[:0]
	q.head = 0
}

func (q *unitQueue) empty() bool {
	return q.head >= len(q.items)
}

func (q *unitQueue) pushBack(id ClauseID) {
	q.items = append(q.items, id)
}

func (q *unitQueue) pushFront(id ClauseID) {
	if q.head > 0 {
		q.head--
		q.items[q.head] = id
		return
	}
	q.items = append(q.items, 0)
	copy(q.items[1:], q.items)
	q.items[0] = id
}

func (q *unitQueue) popFront() ClauseID {
	id := q.items[q.head]
	q.head++
	return id
}

// assign makes the given atom true at the current level, justified by why.
// Eq assignments trigger domain closure; entailed assignments are queued
// rather than made recursively. Assigning an atom whose pair is already
// decided is a no-op.
func (s *Solver) assign(a Atom, why Reason) {
	type pending struct {
		atom Atom
		why  Reason
	}
	work := []pending{{a, why}}
	for len(work) > 0 && s.conflict < 0 {
		p := work[0]
		work = work[1:]
		v := s.varState[p.atom.Var]
		if v.status[p.atom.Val] != free {
			continue
		}
		if p.atom.Eq {
			s.assignEq(v, p.atom.Val, p.why)
		} else {
			s.assignNe(v, p.atom.Val, p.why)
		}
		if s.conflict >= 0 {
			return
		}
		if k, ok := v.freeValue(); ok {
			s.Stats.Entails++
			if s.debug {
				s.Logger.Debugf("entailment: %d=%d", v.id.Int(), k)
			}
			work = append(work, pending{Atom{Var: v.id, Val: k, Eq: true}, Entailed})
		}
	}
}

// assignEq commits "v = k": clauses containing the atom become satisfied,
// occurrences of "v ≠ k" leave the unassigned counts, and every other
// still-free value of v is forbidden (domain closure).
func (s *Solver) assignEq(v *variable, k Value, why Reason) {
	s.satisfyClauses(v, true, k)
	s.removeAtom(v, false, k)
	v.status[k] = assigned
	v.level[k] = s.level
	v.reason[k] = why
	v.value = k
	v.assigned = true
	s.pushTrail(Atom{Var: v.id, Val: k, Eq: true})
	for j := int32(0); j < v.domSize && s.conflict < 0; j++ {
		if v.status[j] != free {
			continue
		}
		s.satisfyClauses(v, false, Value(j))
		s.removeAtom(v, true, Value(j))
		v.status[j] = forbidden
		v.level[j] = s.level
		v.reason[j] = Closure
		s.pushTrail(Atom{Var: v.id, Val: Value(j), Eq: false})
	}
}

// assignNe commits "v ≠ k". It restricts the domain but does not commit
// the variable, so there is no closure step.
func (s *Solver) assignNe(v *variable, k Value, why Reason) {
	s.satisfyClauses(v, false, k)
	s.removeAtom(v, true, k)
	v.status[k] = forbidden
	v.level[k] = s.level
	v.reason[k] = why
	s.pushTrail(Atom{Var: v.id, Val: k, Eq: false})
}

// satisfyClauses marks every not-yet-satisfied clause containing the atom
// (eq, k) of v as satisfied at the current level, removing its still-free
// atoms from the unassigned counts.
func (s *Solver) satisfyClauses(v *variable, eq bool, k Value) {
	for _, id := range v.occ(eq, k) {
		c := s.clauses[id]
		if c.sat {
			continue
		}
		c.sat = true
		c.satLevel = s.level
		for _, b := range c.atoms {
			u := s.varState[b.Var]
			if u.status[b.Val] == free {
				c.numFree--
				u.bumpCount(b.Eq, b.Val, -1)
			}
		}
	}
}

// removeAtom removes the falsified atom (eq, k) of v from every clause
// that is still unsatisfied. Clauses dropping to one free atom are
// enqueued as units; clauses dropping to zero raise a conflict.
func (s *Solver) removeAtom(v *variable, eq bool, k Value) {
	for _, id := range v.occ(eq, k) {
		c := s.clauses[id]
		if c.sat {
			continue
		}
		c.numFree--
		v.bumpCount(eq, k, -1)
		if s.watched {
			continue // unit and conflict detection happens on the watches
		}
		if c.numFree == 1 {
			s.units.pushFront(id)
		} else if c.numFree == 0 && s.conflict < 0 {
			s.conflict = id
		}
	}
	if s.watched {
		s.watchFalsify(v, eq, k)
	}
}

// refreshUnits rebuilds the unit queue by scanning every unsatisfied
// clause, flagging a conflict if a clause has no free atom left.
func (s *Solver) refreshUnits() {
	s.units.reset()
	for i, c := range s.clauses {
		if c.sat {
			continue
		}
		if s.watched {
			switch s.watchedStatus(c) {
			case watchUnit:
				s.units.pushBack(ClauseID(i))
			case watchConflict:
				if s.conflict < 0 {
					s.conflict = ClauseID(i)
				}
			}
			continue
		}
		if c.numFree == 1 {
			s.units.pushBack(ClauseID(i))
		} else if c.numFree == 0 && s.conflict < 0 {
			s.conflict = ClauseID(i)
		}
	}
}

// propagateUnits drains the unit queue, assigning the single free atom of
// each still-unit clause, and stops on conflict.
func (s *Solver) propagateUnits() {
	for s.conflict < 0 && !s.units.empty() {
		id := s.units.popFront()
		c := s.clauses[id]
		if c.sat {
			continue
		}
		a, ok := s.freeAtom(c)
		if !ok {
			continue
		}
		s.Stats.Units++
		if s.debug {
			s.Logger.Debugf("unit propagation of %s from clause %d", a, id)
		}
		s.assign(a, Propagated(id))
	}
	if s.conflict >= 0 {
		s.units.reset()
	}
}

// freeAtom returns the first atom of c whose pair is still free.
func (s *Solver) freeAtom(c *Clause) (Atom, bool) {
	for _, a := range c.atoms {
		if s.varState[a.Var].status[a.Val] == free {
			return a, true
		}
	}
	return Atom{}, false
}

// atomTrue is true iff the polarity of a agrees with the current status of
// its pair.
func (s *Solver) atomTrue(a Atom) bool {
	st := s.varState[a.Var].status[a.Val]
	if a.Eq {
		return st == assigned
	}
	return st == forbidden
}

// falsified is true iff the polarity of a contradicts the current status
// of its pair.
func (s *Solver) falsified(a Atom) bool {
	st := s.varState[a.Var].status[a.Val]
	if a.Eq {
		return st == forbidden
	}
	return st == assigned
}
