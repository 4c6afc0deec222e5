package solver

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// varSnapshot and stateSnapshot capture the full mutable state of the
// solver in plain exported fields so go-cmp can diff two snapshots.
type varSnapshot struct {
	Status   []assignStatus
	Level    []int32
	Reason   []string
	Value    Value
	Assigned bool
	PosCount []int32
	NegCount []int32
}

type clauseSnapshot struct {
	Sat      bool
	SatLevel int32
	NumFree  int32
}

type stateSnapshot struct {
	Vars    []varSnapshot
	Clauses []clauseSnapshot
	Trail   []string
}

func snapshot(s *Solver) stateSnapshot {
	var snap stateSnapshot
	for _, v := range s.varState {
		vs := varSnapshot{
			Status:   append([]assignStatus(nil), v.status...),
			Level:    append([]int32(nil), v.level...),
			Value:    v.value,
			Assigned: v.assigned,
			PosCount: append([]int32(nil), v.posCount...),
			NegCount: append([]int32(nil), v.negCount...),
		}
		for k := int32(0); k < v.domSize; k++ {
			reason := "free"
			if v.status[k] != free {
				reason = v.reason[k].String()
			}
			vs.Reason = append(vs.Reason, reason)
		}
		snap.Vars = append(snap.Vars, vs)
	}
	for _, c := range s.clauses {
		snap.Clauses = append(snap.Clauses, clauseSnapshot{Sat: c.sat, SatLevel: c.satLevel, NumFree: c.numFree})
	}
	for _, e := range s.trail {
		snap.Trail = append(snap.Trail, fmt.Sprintf("%s@%d", e.atom, e.level))
	}
	return snap
}

// propagateFixpoint drives refresh + unit propagation until quiescence.
func propagateFixpoint(s *Solver) {
	for s.conflict < 0 {
		s.refreshUnits()
		if s.conflict >= 0 || s.units.empty() {
			return
		}
		s.propagateUnits()
	}
}

func TestBacktrackRoundTrip(t *testing.T) {
	pb := mustProblem(t, []int{3, 3, 2, 2}, [][]Atom{
		{EqAtom(1, 0), EqAtom(2, 1), EqAtom(3, 0)},
		{NeAtom(1, 0), EqAtom(2, 2)},
		{NeAtom(2, 2), EqAtom(4, 1)},
		{EqAtom(3, 1), NeAtom(4, 0)},
		{NeAtom(1, 1), NeAtom(3, 0), EqAtom(4, 0)},
	})
	s := New(pb)
	propagateFixpoint(s)
	require.Equal(t, ClauseID(-1), s.conflict)

	s.level = 1
	s.assign(EqAtom(1, 0), Decision)
	propagateFixpoint(s)
	require.Equal(t, ClauseID(-1), s.conflict)
	want := snapshot(s)

	s.level = 2
	a, ok := s.chooseAtom()
	require.True(t, ok)
	s.assign(a, Decision)
	propagateFixpoint(s)

	s.level = 1
	s.backtrack(1)
	got := snapshot(s)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("state differs after backtrack round trip (-want +got):\n%s", diff)
	}
	checkInvariants(t, s)
}

func TestBacktrackToZeroIsRestart(t *testing.T) {
	pb := pigeonhole(3, 3)
	s := New(pb)
	propagateFixpoint(s)
	want := snapshot(s)

	for lvl := 1; lvl <= 2; lvl++ {
		s.level = int32(lvl)
		a, ok := s.chooseAtom()
		require.True(t, ok)
		s.assign(a, Decision)
		propagateFixpoint(s)
		if s.conflict >= 0 {
			break
		}
	}
	s.level = 0
	s.conflict = -1
	s.backtrack(0)
	got := snapshot(s)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("state differs after restart (-want +got):\n%s", diff)
	}
	checkInvariants(t, s)
}

func TestBacktrackRandomRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(99))
	for i := 0; i < 50; i++ {
		pb := randomProblem(rnd)
		s := New(pb)
		propagateFixpoint(s)
		if s.conflict >= 0 {
			continue
		}
		s.level = 1
		a, ok := s.chooseAtom()
		if !ok {
			continue
		}
		s.assign(a, Decision)
		propagateFixpoint(s)
		if s.conflict >= 0 {
			continue
		}
		want := snapshot(s)
		for lvl := int32(2); lvl <= 3; lvl++ {
			s.level = lvl
			a, ok := s.chooseAtom()
			if !ok {
				break
			}
			s.assign(a, Decision)
			propagateFixpoint(s)
			if s.conflict >= 0 {
				break
			}
		}
		s.conflict = -1
		s.level = 1
		s.backtrack(1)
		got := snapshot(s)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("instance %d: state differs after backtrack (-want +got):\n%s\n%s", i, diff, pb)
		}
		checkInvariants(t, s)
	}
}
