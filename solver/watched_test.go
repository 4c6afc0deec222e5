package solver

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScenariosWatched(t *testing.T) {
	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			runScenario(t, sc, true)
		})
	}
}

func TestWatchedEquivalence(t *testing.T) {
	rnd := rand.New(rand.NewSource(1234))
	for i := 0; i < 200; i++ {
		pb := randomProblem(rnd)

		plain := New(pb)
		plainStatus, err := plain.Solve()
		require.NoError(t, err, "instance %d\n%s", i, pb)

		watched := New(pb)
		watched.WatchedLiterals = true
		watchedStatus, err := watched.Solve()
		require.NoError(t, err, "instance %d\n%s", i, pb)

		require.Equal(t, plainStatus, watchedStatus, "instance %d\n%s", i, pb)
		if watchedStatus == Sat {
			checkInvariants(t, watched)
		}
	}
}

func TestWatchedPigeonhole(t *testing.T) {
	s := New(pigeonhole(4, 3))
	s.WatchedLiterals = true
	status, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, Unsat, status)

	s = New(pigeonhole(4, 4))
	s.WatchedLiterals = true
	status, err = s.Solve()
	require.NoError(t, err)
	require.Equal(t, Sat, status)
}

func TestWatchedStatusClassification(t *testing.T) {
	pb := mustProblem(t, []int{2, 2, 2}, [][]Atom{
		{EqAtom(1, 0), EqAtom(2, 0), EqAtom(3, 0)},
	})
	s := New(pb)
	s.initWatches()
	c := s.clauses[0]
	require.Equal(t, watchMany, s.watchedStatus(c))

	// falsify the first watch: it moves to the third atom
	s.level = 1
	s.assign(NeAtom(1, 0), Decision)
	require.Equal(t, watchMany, s.watchedStatus(c))
	require.Equal(t, ClauseID(-1), s.conflict)

	// falsify another: one free atom left, the clause reads unit
	s.assign(NeAtom(2, 0), Decision)
	require.Equal(t, watchUnit, s.watchedStatus(c))
	require.False(t, s.units.empty())
}

func TestWatchedConflictDetection(t *testing.T) {
	pb := mustProblem(t, []int{2, 2}, [][]Atom{
		{EqAtom(1, 0), EqAtom(2, 0)},
	})
	s := New(pb)
	s.initWatches()
	s.level = 1
	s.assign(NeAtom(1, 0), Decision)
	require.Equal(t, ClauseID(-1), s.conflict)
	s.assign(NeAtom(2, 0), Decision)
	require.Equal(t, ClauseID(0), s.conflict)
}

func TestWatchedRestart(t *testing.T) {
	s := New(pigeonhole(5, 4))
	s.WatchedLiterals = true
	s.RestartThreshold = 2
	status, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, Unsat, status)
	require.GreaterOrEqual(t, s.Stats.Restarts, 1)
}
