// Command vmemsim drives the page-replacement engine over a trace-file
// workload and prints the final report, the CLI contract spec.md §6
// describes. It is a thin layer over internal/vmem and internal/runner:
// argument parsing, config loading, and exit-code mapping only.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kvlabs/vmemsim/internal"
	"github.com/kvlabs/vmemsim/internal/runner"
	"github.com/kvlabs/vmemsim/internal/vmem"
	"github.com/kvlabs/vmemsim/internal/workload"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("vmemsim", flag.ContinueOnError)
	rounds := fs.Int("rounds", 0, "number of rounds to simulate")
	algoName := fs.String("algo", "", "replacement algorithm: NRU|2ndC|LRU|WS")
	k := fs.Int("k", 0, "WS window parameter (required for -algo WS)")
	traceDir := fs.String("trace-dir", ".", "directory containing pagelist_P1..4.txt")
	cfgPath := fs.String("config", "", "optional YAML config overriding defaults")
	debug := fs.Bool("debug", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return int(vmem.ExitBadArgCount)
	}

	cfg := internal.DefaultConfig()
	if *cfgPath != "" {
		loaded, err := internal.LoadConfig(*cfgPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return int(vmem.ExitFileError)
		}
		cfg = loaded
	}

	if *rounds > 0 {
		cfg.Simulation.NumRounds = *rounds
	}
	if *algoName != "" {
		cfg.Simulation.Algorithm = *algoName
	}
	if *k > 0 {
		cfg.Simulation.K = *k
	}
	if *traceDir != "." {
		cfg.Workload.TraceDir = *traceDir
	}
	cfg.Debug = cfg.Debug || *debug

	if cfg.Simulation.NumRounds <= 0 {
		fmt.Fprintln(os.Stderr, "vmemsim: -rounds must be a positive integer")
		return int(vmem.ExitBadArgCount)
	}

	algo, err := vmem.ParseAlgorithm(cfg.Simulation.Algorithm)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return int(vmem.ExitBadAlgo)
	}
	if algo == vmem.AlgoWS && cfg.Simulation.K <= 0 {
		fmt.Fprintln(os.Stderr, "vmemsim: -algo WS requires -k")
		return int(vmem.ExitBadArgCount)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return runSimulation(ctx, cfg, algo, logger)
}

func runSimulation(ctx context.Context, cfg *internal.SimConfig, algo vmem.Algorithm, logger *slog.Logger) int {
	engine, err := vmem.NewEngine(algo, cfg.Simulation.K, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return int(vmem.ExitKTooLargeOrWSInfeasible)
	}

	source, err := workload.NewTraceSource(cfg.Workload.TraceDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return int(vmem.ExitFileError)
	}
	defer source.Close()

	r := runner.New(engine, source, logger)

	done := make(chan error, 1)
	go func() { done <- r.RunRounds(cfg.Simulation.NumRounds) }()

	select {
	case <-ctx.Done():
		fmt.Fprintln(os.Stderr, "vmemsim: interrupted")
		return int(vmem.ExitChildError)
	case err := <-done:
		if err != nil {
			return exitCodeForRunError(err)
		}
	}

	if err := r.Report(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return int(vmem.ExitWriteError)
	}
	return int(vmem.ExitOK)
}

func exitCodeForRunError(err error) int {
	switch {
	case isInvalidRequest(err):
		return int(vmem.ExitInvalidProcID)
	case isWSInfeasible(err):
		return int(vmem.ExitKTooLargeOrWSInfeasible)
	case isExhausted(err):
		return int(vmem.ExitReadError)
	default:
		fmt.Fprintln(os.Stderr, err)
		return int(vmem.ExitReadError)
	}
}

func isInvalidRequest(err error) bool { return errors.Is(err, vmem.ErrInvalidRequest) }
func isWSInfeasible(err error) bool   { return errors.Is(err, vmem.ErrWSInfeasible) }
func isExhausted(err error) bool      { return errors.Is(err, workload.ErrExhausted) }
