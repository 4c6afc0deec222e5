package solver

import "github.com/pkg/errors"

// verifyModel recomputes clause satisfaction from the variable statuses,
// independently of the incremental flags, and checks that every clause is
// satisfied. An assigned variable satisfies the clauses containing its
// value positively and every other value negatively. A variable left
// unassigned can take any of its free values, so only the clauses
// mentioning its forbidden values negatively count as satisfied by it.
//
// A failure here is a solver bug, reported as an error.
func (s *Solver) verifyModel() error {
	sat := make([]bool, len(s.clauses))
	mark := func(ids []ClauseID) {
		for _, id := range ids {
			sat[id] = true
		}
	}
	for _, v := range s.varState {
		if v.assigned {
			for k := int32(0); k < v.domSize; k++ {
				if Value(k) == v.value {
					mark(v.posOcc[k])
				} else {
					mark(v.negOcc[k])
				}
			}
			continue
		}
		for k := int32(0); k < v.domSize; k++ {
			if v.status[k] == forbidden {
				mark(v.negOcc[k])
			}
		}
	}
	for i, c := range s.clauses {
		if !sat[i] {
			return errors.Errorf("model verification failed: clause %d (%s) is unsatisfied", i, c)
		}
	}
	return nil
}
