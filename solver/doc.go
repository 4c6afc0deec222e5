/*
Package solver decides Boolean combinations of finite-domain equality
atoms. A problem is a set of variables, each with a finite integer domain
{0, ..., d-1}, and a conjunction of clauses, each clause a disjunction of
atoms of the form "v = k" or "v ≠ k".

The engine is a conflict-driven search over the multi-valued semantics:
assigning "v = k" forbids every other value of v, and a variable whose
every value but one is forbidden is assigned the remaining one
(entailment). Conflicts are analyzed by resolution into an asserting
clause, followed by non-chronological backtracking, with optional
restarts and an optional two-watched-literal propagation index.

A problem can be parsed from the extended DIMACS format:

	p cnf 2 2
	d 1 3
	d 2 2
	1=0 2!=1 0
	1!=0 2=1 0

	pb, err := solver.ParseFD(f)

or built programmatically:

	pb, err := solver.NewProblem([]int{3, 2}, [][]solver.Atom{
		{solver.EqAtom(1, 0), solver.NeAtom(2, 1)},
		{solver.NeAtom(1, 0), solver.EqAtom(2, 1)},
	})

Solving is one call:

	s := solver.New(pb)
	status, err := s.Solve()

A non-nil error reports an internal invariant violation, not an
unsatisfiable problem: Unsat is an ordinary status. On Sat, the model can
be inspected with Model or written with WriteModel.
*/
package solver
