package solver

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// Stats are statistics about the resolution of the problem.
// They are provided for information purpose only.
type Stats struct {
	Decisions  int
	Backtracks int
	Entails    int
	Restarts   int
	Units      int // How many unit propagations were performed
	Learned    int // How many clauses were learned
}

// A Solver solves a given problem. It is the main data structure.
// It is single-owner and non-reentrant: all mutable state lives on the
// instance and only one Solve call may run at a time.
type Solver struct {
	// Logger receives search tracing at debug level. Defaults to a
	// logrus logger writing to stderr at info level, so traces stay off
	// unless the level is lowered.
	Logger logrus.FieldLogger
	// Timeout bounds the wall-clock search time. Zero means no limit.
	// The budget is polled at the top of the search loop only.
	Timeout time.Duration
	// RestartThreshold is the number of backtracks after which the
	// search restarts from level 0. Zero disables restarts.
	RestartThreshold int
	// WatchedLiterals enables the two-watched-literal propagation index.
	// Observable semantics are identical to the occurrence-list scheme.
	WatchedLiterals bool

	Stats Stats

	status   Status
	level    int32
	trail    []trailEntry
	clauses  []*Clause
	nbOrig   int
	varState []*variable
	units    unitQueue
	conflict ClauseID // id of the conflicting clause; -1 if none
	watched  bool     // watcher lists are initialized
	debug    bool
	started  time.Time
}

// New makes a solver for the given problem.
func New(pb *Problem) *Solver {
	s := &Solver{
		Logger:   logrus.New(),
		conflict: -1,
	}
	s.varState = make([]*variable, len(pb.Domains))
	for i, d := range pb.Domains {
		s.varState[i] = newVariable(Var(i), d)
	}
	for _, atoms := range pb.Clauses {
		s.appendClause(NewClause(append([]Atom(nil), atoms...)))
	}
	s.nbOrig = len(s.clauses)
	return s
}

// appendClause adds c to the store, extends the occurrence lists of its
// atoms and, for original clauses, credits the heuristic counters.
func (s *Solver) appendClause(c *Clause) ClauseID {
	id := ClauseID(len(s.clauses))
	s.clauses = append(s.clauses, c)
	for _, a := range c.atoms {
		s.varState[a.Var].addOcc(a.Eq, a.Val, id)
	}
	if !c.learned {
		// every atom starts free in an unsatisfied clause
		for _, a := range c.atoms {
			s.varState[a.Var].bumpCount(a.Eq, a.Val, 1)
		}
	}
	if s.watched {
		s.watchClause(id)
	}
	return id
}

// Status returns the current status of the solver.
func (s *Solver) Status() Status {
	return s.status
}

// NbVars returns the number of variables of the underlying problem.
func (s *Solver) NbVars() int {
	return len(s.varState)
}

// NbClauses returns the number of clauses, learned clauses included.
func (s *Solver) NbClauses() int {
	return len(s.clauses)
}

// searchState enumerates the states of the driver's state machine.
type searchState byte

const (
	stateCheckSat searchState = iota
	stateCheckTimeout
	stateResolveConflict
	statePropagateUnits
	stateDecide
)

// Solve runs the search and returns Sat, Unsat or Timeout.
// A non-nil error reports an invariant violation, i.e. a solver bug.
func (s *Solver) Solve() (Status, error) {
	s.started = time.Now()
	s.status = Indet
	if l, ok := s.Logger.(*logrus.Logger); ok {
		s.debug = l.IsLevelEnabled(logrus.DebugLevel)
	} else {
		s.debug = s.Logger != nil
	}
	if s.WatchedLiterals && !s.watched {
		s.initWatches()
	}
	backtracks := 0 // since the last restart
	st := stateCheckSat
	for {
		switch st {
		case stateCheckSat:
			if s.allSatisfied() {
				return s.finishSat()
			}
			st = stateCheckTimeout
		case stateCheckTimeout:
			if s.Timeout > 0 && time.Since(s.started) > s.Timeout {
				s.status = Timeout
				return Timeout, nil
			}
			st = stateResolveConflict
		case stateResolveConflict:
			if s.conflict < 0 {
				st = statePropagateUnits
				break
			}
			if s.level == 0 {
				s.status = Unsat
				return Unsat, nil
			}
			if s.debug {
				s.Logger.Debugf("conflict at level %d on clause %d: %s", s.level, s.conflict, s.clauses[s.conflict])
			}
			btLevel, err := s.analyze(s.clauses[s.conflict])
			if err != nil {
				return Indet, err
			}
			s.conflict = -1
			s.Stats.Backtracks++
			backtracks++
			if s.RestartThreshold > 0 && backtracks >= s.RestartThreshold {
				backtracks = 0
				s.Stats.Restarts++
				if s.debug {
					s.Logger.Debugf("restarting after %d backtracks", s.RestartThreshold)
				}
				s.level = 0
				s.backtrack(0)
			} else {
				if s.debug {
					s.Logger.Debugf("backjumping to level %d", btLevel)
				}
				s.level = btLevel
				s.backtrack(btLevel)
			}
			st = stateCheckSat
		case statePropagateUnits:
			s.refreshUnits()
			if s.conflict >= 0 {
				st = stateCheckSat
				break
			}
			if !s.units.empty() {
				s.propagateUnits()
				st = stateCheckSat
			} else {
				st = stateDecide
			}
		case stateDecide:
			a, ok := s.chooseAtom()
			if !ok {
				return s.finishSat()
			}
			s.level++
			s.Stats.Decisions++
			if s.debug {
				s.Logger.Debugf("decision %s at level %d", a, s.level)
			}
			s.assign(a, Decision)
			st = stateCheckSat
		}
	}
}

// finishSat verifies the model before declaring satisfiability.
func (s *Solver) finishSat() (Status, error) {
	if err := s.verifyModel(); err != nil {
		return Indet, err
	}
	s.status = Sat
	return Sat, nil
}

// allSatisfied is true iff every clause is satisfied.
func (s *Solver) allSatisfied() bool {
	for _, c := range s.clauses {
		if !c.sat {
			return false
		}
	}
	return true
}

// Model returns, for each variable, its assigned value, or -1 if the
// variable is unconstrained in the model found.
func (s *Solver) Model() []Value {
	model := make([]Value, len(s.varState))
	for i, v := range s.varState {
		if v.assigned {
			model[i] = v.value
		} else {
			model[i] = -1
		}
	}
	return model
}

// WriteModel writes the model to w, one "V=K" line per assigned variable,
// in trail (i.e. chronological assignment) order.
func (s *Solver) WriteModel(w io.Writer) {
	for _, e := range s.trail {
		if e.atom.Eq {
			fmt.Fprintln(w, e.atom)
		}
	}
}

// WriteStats writes the statistics block to w.
func (s *Solver) WriteStats(w io.Writer) {
	fmt.Fprintf(w, "Decisions   : %d\n", s.Stats.Decisions)
	fmt.Fprintf(w, "Backtracks  : %d\n", s.Stats.Backtracks)
	fmt.Fprintf(w, "Entailments : %d\n", s.Stats.Entails)
	fmt.Fprintf(w, "Restarts    : %d\n", s.Stats.Restarts)
	fmt.Fprintf(w, "Variables   : %d\n", s.NbVars())
	fmt.Fprintf(w, "Clauses     : %d\n", s.NbClauses())
}
