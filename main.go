package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"portscanner/config"
	"portscanner/netutil"
	"portscanner/output"
	"portscanner/port"
	"portscanner/scanner"
)

func main() {
	portsSpec := flag.String("p", "", "ports (e.g. 22,80,8000-8100); defaults to common ports")
	concurrency := flag.Int("c", 0, "max concurrent probes (default 100)")
	timeout := flag.Duration("t", 0, "per-probe timeout (default 500ms)")
	deadline := flag.Duration("deadline", 0, "overall scan deadline (0 = none)")
	rateLimit := flag.Float64("rate", 0, "probe launches per second (0 = unlimited)")
	retries := flag.Int("retries", 0, "extra attempts for errored probes")
	cfgPath := flag.String("config", "", "optional YAML config file")
	fileOut := flag.String("f", "", "write output to file (overwrite, atomic)")
	jsonOut := flag.Bool("json", false, "emit JSON instead of a table")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "error: target positional argument required")
		flag.Usage()
		os.Exit(2)
	}
	target := flag.Arg(0)

	lg := newLogger(*verbose)
	defer func() { _ = lg.Sync() }()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(2)
	}

	// explicit flags override config file and environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "c":
			cfg.Concurrency = *concurrency
		case "t":
			cfg.Timeout = *timeout
		case "deadline":
			cfg.Deadline = *deadline
		case "rate":
			cfg.RateLimit = *rateLimit
		case "retries":
			cfg.Retries = *retries
		}
	})

	policy, err := netutil.ParsePolicy(cfg.AllowedNetworks, cfg.BlockedNetworks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid scan policy: %v\n", err)
		os.Exit(2)
	}

	spec := *portsSpec
	if spec == "" {
		spec = joinPorts(port.DefaultPorts())
	}

	opts := scanner.Options{
		Concurrency: cfg.Concurrency,
		Timeout:     cfg.Timeout,
		Deadline:    cfg.Deadline,
		RateLimit:   cfg.RateLimit,
		Retries:     cfg.Retries,
		Policy:      policy,
	}

	// Ctrl-C cancels the scan; in-flight work winds down and the partial
	// result is still reported with status "cancelled".
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := scanner.Run(ctx, target, spec, opts, lg)
	if err != nil {
		var parseErr *port.ParseError
		var resErr *netutil.ResolutionError
		var polErr *netutil.PolicyError
		switch {
		case errors.As(err, &parseErr):
			fmt.Fprintf(os.Stderr, "invalid ports spec: %v\n", err)
			os.Exit(2)
		case errors.As(err, &polErr):
			fmt.Fprintln(os.Stderr, err)
			os.Exit(3)
		case errors.As(err, &resErr):
			fmt.Fprintf(os.Stderr, "failed to resolve target: %v\n", err)
			os.Exit(4)
		default:
			fmt.Fprintf(os.Stderr, "scan failed: %v\n", err)
			os.Exit(4)
		}
	}

	// Render into a buffer first so stdout and the output file see the
	// same bytes.
	var buf bytes.Buffer
	if *jsonOut {
		if err := output.WriteJSON(res, &buf); err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode result: %v\n", err)
			os.Exit(4)
		}
	} else {
		output.PrintTable(res, &buf)
	}

	if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write to stdout: %v\n", err)
		os.Exit(4)
	}

	if *fileOut != "" {
		if err := output.WriteAtomic(*fileOut, buf.Bytes()); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write output file: %v\n", err)
			os.Exit(4)
		}
	}
}

func newLogger(verbose bool) *zap.Logger {
	if verbose {
		lg, err := zap.NewDevelopment()
		if err != nil {
			return zap.NewNop()
		}
		return lg
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	lg, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return lg
}

func joinPorts(ports []uint16) string {
	parts := make([]string, len(ports))
	for i, p := range ports {
		parts[i] = strconv.Itoa(int(p))
	}
	return strings.Join(parts, ",")
}
