package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gopheros/memfill/internal/config"
	"github.com/gopheros/memfill/mem"
	"github.com/gopheros/memfill/mem/verify"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run validates the verifier against the reference memset, checks every
// filler and prints one line per failing combination. It only returns a
// non-zero status for bad configuration or, in strict mode, for failures of
// combinations that are expected to pass.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Parse("memfill-check", args)
	if err != nil {
		fmt.Fprintf(stderr, "failed parsing config: %v\n", err)
		return 1
	}

	logger := newLogger(stderr, cfg.LogLevel)
	reg := prometheus.NewRegistry()

	v, err := verify.New(mem.Size(cfg.BufferSize.Bytes()), logger, reg)
	if err != nil {
		level.Error(logger).Log("msg", "creating verifier", "err", err)
		return 1
	}

	cases, err := verify.Suite(cfg.Width())
	if err != nil {
		level.Error(logger).Log("msg", "building check suite", "err", err)
		return 1
	}

	level.Info(logger).Log(
		"msg", "running fill checks",
		"buffer", humanize.IBytes(uint64(v.BufferSize())),
		"word_width", cfg.Width(),
		"all", cfg.All,
	)

	unexpected := report(stdout, "", v.Run(cases, cfg.All))
	if cfg.Sweep {
		unexpected += report(stdout, "Sweep", v.Sweep(cases, cfg.Width()))
	}

	if cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, reg); err != nil {
			level.Error(logger).Log("msg", "writing metrics", "file", cfg.MetricsFile, "err", err)
		}
	}

	if unexpected > 0 {
		level.Warn(logger).Log("msg", "fill checks finished with unexpected failures", "failures", unexpected)
		if cfg.Strict {
			return 1
		}
		return 0
	}

	level.Info(logger).Log("msg", "fill checks finished")
	return 0
}

// report prints a line for every failed result and returns the number of
// failures that were not expected. An empty label uses the probe name.
func report(w io.Writer, label string, results []verify.Result) int {
	var (
		unexpected int
		bad        = color.New(color.FgRed, color.Bold)
		known      = color.New(color.FgYellow)
	)

	for _, r := range results {
		if !r.Failed {
			continue
		}

		prefix := label
		if prefix == "" {
			prefix = r.Case.Probe.String()
		}

		out := known
		if r.Unexpected() {
			out = bad
			unexpected++
		}
		if r.Case.Reference {
			// A failing reference means the verifier itself is broken.
			out = bad
		}

		out.Fprintf(w, "%s %s check failed on byte %d.", prefix, r.Case.Name, r.Mismatch.Index)
		if r.Mismatch.Err != nil {
			fmt.Fprintf(w, " (%v)", r.Mismatch.Err)
		}
		fmt.Fprintln(w)
	}

	return unexpected
}

func newLogger(w io.Writer, lvl string) log.Logger {
	var allow level.Option
	switch strings.ToLower(lvl) {
	case "debug":
		allow = level.AllowDebug()
	case "warn":
		allow = level.AllowWarn()
	case "error":
		allow = level.AllowError()
	default:
		allow = level.AllowInfo()
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, allow)
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
}
