package solver

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseFD parses a finite-domain problem in the extended DIMACS format.
//
// The format is line oriented. A line starting with 'c' is a comment and a
// line of the form "p cnf N M" is an informational header. A line
// "d V D" declares that variable V (1-indexed) has domain {0, ..., D-1};
// it must appear before any clause referencing V. Any other non-empty line
// is a clause: whitespace-separated atoms of the form "V=K", "V!=K",
// "V!K" or "V ! K", terminated by a "0" token.
func ParseFD(r io.Reader) (*Problem, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var (
		domains  []int
		declared []bool
		clauses  [][]Atom
	)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch line[0] {
		case 'c':
			continue
		case 'p':
			fields := strings.Fields(line)
			if len(fields) != 4 || fields[1] != "cnf" {
				return nil, errors.Errorf("line %d: malformed header %q", lineno, line)
			}
			for _, f := range fields[2:] {
				if _, err := strconv.Atoi(f); err != nil {
					return nil, errors.Wrapf(err, "line %d: malformed header %q", lineno, line)
				}
			}
			// header counts are informational, not authoritative
		case 'd':
			fields := strings.Fields(line)
			if len(fields) != 3 {
				return nil, errors.Errorf("line %d: malformed domain declaration %q", lineno, line)
			}
			v, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: malformed domain declaration %q", lineno, line)
			}
			d, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: malformed domain declaration %q", lineno, line)
			}
			if v < 1 {
				return nil, errors.Errorf("line %d: invalid variable %d", lineno, v)
			}
			if d < 1 {
				return nil, errors.Errorf("line %d: invalid domain size %d for variable %d", lineno, d, v)
			}
			for len(domains) < v {
				domains = append(domains, 0)
				declared = append(declared, false)
			}
			if declared[v-1] {
				return nil, errors.Errorf("line %d: duplicate domain declaration for variable %d", lineno, v)
			}
			domains[v-1] = d
			declared[v-1] = true
		default:
			atoms, err := parseClause(line, lineno, domains, declared)
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, atoms)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "could not read problem")
	}
	for i, ok := range declared {
		if !ok {
			return nil, errors.Errorf("variable %d has no domain declaration", i+1)
		}
	}
	return NewProblem(domains, clauses)
}

// parseClause parses one clause line into its atom list.
func parseClause(line string, lineno int, domains []int, declared []bool) ([]Atom, error) {
	fields := strings.Fields(line)
	atoms := make([]Atom, 0, len(fields))
	i := 0
	terminated := false
	for i < len(fields) {
		tok := fields[i]
		if tok == "0" {
			terminated = true
			break
		}
		var vs, op, ks string
		if j := strings.IndexAny(tok, "=!"); j >= 0 {
			vs = tok[:j]
			rest := tok[j:]
			switch {
			case strings.HasPrefix(rest, "!="):
				op, ks = "!=", rest[2:]
			case strings.HasPrefix(rest, "="):
				op, ks = "=", rest[1:]
			default:
				op, ks = "!", rest[1:]
			}
			i++
			if ks == "" {
				if i >= len(fields) {
					return nil, errors.Errorf("line %d: truncated atom %q", lineno, tok)
				}
				ks = fields[i]
				i++
			}
		} else {
			// "V ! K" with the operator as its own token
			vs = tok
			i++
			if i+1 >= len(fields) {
				return nil, errors.Errorf("line %d: truncated atom starting at %q", lineno, tok)
			}
			op = fields[i]
			i++
			if op != "=" && op != "!" && op != "!=" {
				return nil, errors.Errorf("line %d: invalid operator %q", lineno, op)
			}
			ks = fields[i]
			i++
		}
		v, err := strconv.Atoi(vs)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: malformed atom %q", lineno, tok)
		}
		k, err := strconv.Atoi(ks)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: malformed atom %q", lineno, tok)
		}
		if v < 1 || v > len(domains) || !declared[v-1] {
			return nil, errors.Errorf("line %d: atom references undeclared variable %d", lineno, v)
		}
		if k < 0 || k >= domains[v-1] {
			return nil, errors.Errorf("line %d: value %d out of domain of variable %d (size %d)", lineno, k, v, domains[v-1])
		}
		atoms = append(atoms, Atom{Var: IntToVar(v), Val: Value(k), Eq: op == "="})
	}
	if !terminated {
		return nil, errors.Errorf("line %d: clause not terminated by 0", lineno)
	}
	return atoms, nil
}
