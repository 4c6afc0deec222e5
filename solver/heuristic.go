package solver

// chooseAtom picks the next branching atom: the free (var, value) pair
// occurring most positively in unsatisfied clauses, i.e. with the largest
// posCount - negCount, with Eq polarity. Ties break on the lowest variable
// id, then the lowest value. ok is false iff every variable is assigned.
func (s *Solver) chooseAtom() (a Atom, ok bool) {
	var best int32
	for _, v := range s.varState {
		if v.assigned {
			continue
		}
		for k := int32(0); k < v.domSize; k++ {
			if v.status[k] != free {
				continue
			}
			score := v.posCount[k] - v.negCount[k]
			if !ok || score > best {
				ok = true
				best = score
				a = Atom{Var: v.id, Val: Value(k), Eq: true}
			}
		}
	}
	return a, ok
}
