package solver

// A variable holds the per-variable search state: the ternary status of
// every domain value, justification and level bookkeeping, occurrence
// lists and the heuristic counters.
//
// All mutations flow through the propagator and the backtracker.
type variable struct {
	id      Var
	domSize int32
	// Per-value state, all indexed by domain value.
	status []assignStatus
	level  []int32  // level at which the status became non-free; -1 if free
	reason []Reason // justification for a non-free status
	// posCount[k] (resp. negCount[k]) is the number of currently
	// unsatisfied clauses containing "v = k" (resp. "v ≠ k") as an
	// unassigned literal.
	posCount []int32
	negCount []int32
	// Occurrence lists: ids of the clauses containing "v = k" resp.
	// "v ≠ k". Built at load time, extended when clauses are learned.
	posOcc [][]ClauseID
	negOcc [][]ClauseID
	// Watcher lists, used only with watched literals: ids of the clauses
	// currently watching "v = k" resp. "v ≠ k".
	posWatch [][]ClauseID
	negWatch [][]ClauseID
	// value is the assigned domain value, -1 while unassigned.
	value    Value
	assigned bool
}

func newVariable(id Var, domSize int) *variable {
	return &variable{
		id:       id,
		domSize:  int32(domSize),
		status:   make([]assignStatus, domSize),
		level:    newInt32Slice(domSize, -1),
		reason:   make([]Reason, domSize),
		posCount: make([]int32, domSize),
		negCount: make([]int32, domSize),
		posOcc:   make([][]ClauseID, domSize),
		negOcc:   make([][]ClauseID, domSize),
		posWatch: make([][]ClauseID, domSize),
		negWatch: make([][]ClauseID, domSize),
		value:    -1,
	}
}

func newInt32Slice(n int, fill int32) []int32 {
	s := make([]int32, n)
	for i := range s {
		s[i] = fill
	}
	return s
}

// occ returns the occurrence list for the atom "v = k" or "v ≠ k".
func (v *variable) occ(eq bool, k Value) []ClauseID {
	if eq {
		return v.posOcc[k]
	}
	return v.negOcc[k]
}

func (v *variable) addOcc(eq bool, k Value, id ClauseID) {
	if eq {
		v.posOcc[k] = append(v.posOcc[k], id)
	} else {
		v.negOcc[k] = append(v.negOcc[k], id)
	}
}

// bumpCount adds delta to the heuristic counter of the atom (eq, k).
func (v *variable) bumpCount(eq bool, k Value, delta int32) {
	if eq {
		v.posCount[k] += delta
	} else {
		v.negCount[k] += delta
	}
}

// freeValue returns the single free value of v, if exactly one value is
// free and all others are forbidden. This is the entailment condition.
func (v *variable) freeValue() (Value, bool) {
	if v.assigned {
		return -1, false
	}
	found := false
	var val Value = -1
	for k := int32(0); k < v.domSize; k++ {
		if v.status[k] == free {
			if found {
				return -1, false
			}
			val = Value(k)
			found = true
		}
	}
	return val, found
}
