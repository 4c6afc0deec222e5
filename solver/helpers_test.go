package solver

import (
	"math/rand"
	"testing"
)

// mustProblem builds a problem or fails the test.
func mustProblem(t *testing.T, domains []int, clauses [][]Atom) *Problem {
	t.Helper()
	pb, err := NewProblem(domains, clauses)
	if err != nil {
		t.Fatalf("could not build problem: %v", err)
	}
	return pb
}

// checkInvariants verifies the structural invariants that must hold after
// every propagation and every backtrack.
func checkInvariants(t *testing.T, s *Solver) {
	t.Helper()
	nonFree := 0
	for _, v := range s.varState {
		nbAssigned := 0
		for k := int32(0); k < v.domSize; k++ {
			st := v.status[k]
			if st != free {
				nonFree++
				if v.level[k] < 0 || v.level[k] > s.level {
					t.Errorf("var %d value %d: level %d out of range [0, %d]", v.id.Int(), k, v.level[k], s.level)
				}
			} else if v.level[k] != -1 {
				t.Errorf("var %d value %d: free but level %d", v.id.Int(), k, v.level[k])
			}
			if st == assigned {
				nbAssigned++
			}
		}
		if nbAssigned > 1 {
			t.Errorf("var %d: %d values assigned", v.id.Int(), nbAssigned)
		}
		if nbAssigned == 1 {
			for k := int32(0); k < v.domSize; k++ {
				if v.status[k] == free {
					t.Errorf("var %d: value %d free while %d is assigned", v.id.Int(), k, v.value)
				}
			}
			if !v.assigned || v.status[v.value] != assigned {
				t.Errorf("var %d: assigned flag inconsistent with statuses", v.id.Int())
			}
		} else if v.assigned {
			t.Errorf("var %d: assigned flag set but no value assigned", v.id.Int())
		}
	}
	if len(s.trail) != nonFree {
		t.Errorf("trail length %d but %d non-free statuses", len(s.trail), nonFree)
	}
	for i, c := range s.clauses {
		hasTrue := false
		nbFree := int32(0)
		for _, a := range c.atoms {
			if s.atomTrue(a) {
				hasTrue = true
			}
			if s.varState[a.Var].status[a.Val] == free {
				nbFree++
			}
		}
		if c.sat != hasTrue {
			t.Errorf("clause %d (%s): sat flag %v but hasTrue %v", i, c, c.sat, hasTrue)
		}
		if !c.sat && c.numFree != nbFree {
			t.Errorf("clause %d (%s): numFree %d but %d atoms free", i, c, c.numFree, nbFree)
		}
	}
}

// bruteSat decides the problem by enumerating every total assignment.
// Only usable on tiny instances; serves as the trusted oracle.
func bruteSat(pb *Problem) bool {
	asg := make([]int, len(pb.Domains))
	var rec func(i int) bool
	rec = func(i int) bool {
		if i == len(asg) {
			return evalProblem(pb, asg)
		}
		for k := 0; k < pb.Domains[i]; k++ {
			asg[i] = k
			if rec(i + 1) {
				return true
			}
		}
		return false
	}
	return rec(0)
}

func evalProblem(pb *Problem, asg []int) bool {
	for _, clause := range pb.Clauses {
		ok := false
		for _, a := range clause {
			if a.Eq == (asg[a.Var] == int(a.Val)) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// randomProblem generates a small random instance for oracle cross-checks.
func randomProblem(rnd *rand.Rand) *Problem {
	nbVars := 2 + rnd.Intn(4)
	domains := make([]int, nbVars)
	for i := range domains {
		domains[i] = 2 + rnd.Intn(3)
	}
	nbClauses := 3 + rnd.Intn(12)
	clauses := make([][]Atom, nbClauses)
	for i := range clauses {
		length := 1 + rnd.Intn(3)
		clause := make([]Atom, length)
		for j := range clause {
			v := rnd.Intn(nbVars)
			clause[j] = Atom{
				Var: Var(v),
				Val: Value(rnd.Intn(domains[v])),
				Eq:  rnd.Intn(2) == 0,
			}
		}
		clauses[i] = clause
	}
	return &Problem{Domains: domains, Clauses: clauses}
}

// pigeonhole returns the finite-domain pigeonhole instance: nbPigeons
// variables whose domain is the set of holes, no two pigeons in the same
// hole. Unsatisfiable iff nbPigeons > nbHoles.
func pigeonhole(nbPigeons, nbHoles int) *Problem {
	domains := make([]int, nbPigeons)
	for i := range domains {
		domains[i] = nbHoles
	}
	var clauses [][]Atom
	for i := 0; i < nbPigeons; i++ {
		for j := i + 1; j < nbPigeons; j++ {
			for h := 0; h < nbHoles; h++ {
				clauses = append(clauses, []Atom{
					{Var: Var(i), Val: Value(h), Eq: false},
					{Var: Var(j), Val: Value(h), Eq: false},
				})
			}
		}
	}
	return &Problem{Domains: domains, Clauses: clauses}
}
