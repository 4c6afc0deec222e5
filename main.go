package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fdsolve/mvsat/solver"
)

const (
	exitSat     = 0
	exitUnsat   = 1
	exitTimeout = 2
	exitError   = 3
)

var opts struct {
	timeout          int
	log              bool
	watchedLiterals  bool
	restartThreshold int
}

var rootCmd = &cobra.Command{
	Use:   "mvsat FILE",
	Short: "mvsat decides finite-domain clausal problems",
	Long: `mvsat is a conflict-driven solver for Boolean combinations of
finite-domain equality atoms. It reads a problem in the extended DIMACS
format and prints a model, UNSAT or TIMEOUT, followed by search
statistics.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args[0])
	},
}

func init() {
	var flags *pflag.FlagSet = rootCmd.Flags()
	flags.IntVar(&opts.timeout, "timeout", 3600, "time budget in seconds")
	flags.BoolVar(&opts.log, "log", false, "trace the search on stderr")
	flags.BoolVar(&opts.watchedLiterals, "watched-literals", false, "use the two-watched-literal propagation index")
	flags.IntVar(&opts.restartThreshold, "restart-threshold", 0, "restart after this many backtracks (0 disables)")
}

func run(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open %q: %w", path, err)
	}
	defer f.Close()
	pb, err := solver.ParseFD(f)
	if err != nil {
		return fmt.Errorf("could not parse %q: %w", path, err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if opts.log {
		logger.SetLevel(logrus.DebugLevel)
	}

	s := solver.New(pb)
	s.Logger = logger
	s.Timeout = time.Duration(opts.timeout) * time.Second
	s.RestartThreshold = opts.restartThreshold
	s.WatchedLiterals = opts.watchedLiterals

	status, err := s.Solve()
	if err != nil {
		return err
	}
	switch status {
	case solver.Sat:
		s.WriteModel(os.Stdout)
	default:
		fmt.Println(status)
	}
	fmt.Println()
	s.WriteStats(os.Stdout)

	switch status {
	case solver.Sat:
		os.Exit(exitSat)
	case solver.Unsat:
		os.Exit(exitUnsat)
	case solver.Timeout:
		os.Exit(exitTimeout)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitError)
	}
}
