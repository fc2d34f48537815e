package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sparselab/mmgen/internal/batch"
	"github.com/sparselab/mmgen/internal/config"
	"github.com/sparselab/mmgen/internal/coo"
	"github.com/sparselab/mmgen/internal/logger"
	"github.com/sparselab/mmgen/internal/prompt"
)

var (
	inputPath   = flag.String("input", "", "Path to CSV batch spec (row,col,density[,filename]); empty runs the interactive prompt")
	outDir      = flag.String("out", ".", "Directory generated .mtx files are written to")
	seed        = flag.Int64("seed", 0, "Base random seed; 0 means non-deterministic output")
	dist        = flag.String("dist", "uniform", "Value distribution: uniform or normal")
	comment     = flag.String("comment", "", "Comment line to embed in generated files")
	logLevel    = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFormat   = flag.String("log-format", "console", "Log format (console or json)")
	metricsAddr = flag.String("metrics", "", "Address to serve Prometheus metrics; empty disables")
)

func main() {
	flag.Parse()
	logger.Setup(*logLevel, *logFormat)

	values, err := valueFunc(*dist)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	if *metricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			logger.Log.Info("metrics serving", "addr", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
				logger.Log.Error("metrics server error", "error", err.Error())
			}
		}()
	}

	runner := &batch.Runner{
		OutDir:  *outDir,
		Seed:    *seed,
		Values:  values,
		Comment: *comment,
	}

	if *inputPath != "" {
		runBatch(runner, *inputPath)
		return
	}
	runInteractive(runner)
}

func runBatch(runner *batch.Runner, path string) {
	reqs, err := batch.ParseSpecFile(path)
	if err != nil {
		logger.Log.Fatal("cannot parse batch spec", "path", path, "error", err.Error())
	}
	if len(reqs) == 0 {
		logger.Log.Warn("batch spec holds no requests", "path", path)
		return
	}
	logger.Log.Info("running batch", "path", path, "requests", len(reqs))

	results := runner.Run(reqs)
	if failed := batch.CountFailures(results); failed > 0 {
		logger.Log.Error("batch finished with failures", "failed", failed, "total", len(results))
		os.Exit(1)
	}
	logger.Log.Info("batch finished", "total", len(results))
}

func runInteractive(runner *batch.Runner) {
	p := prompt.New(os.Stdin, os.Stdout)
	n := 0
	err := p.Loop(func(req config.Request) error {
		var opts []coo.Option
		if runner.Seed != 0 {
			opts = append(opts, coo.WithSeed(runner.Seed+int64(n)))
		}
		n++
		return runner.RunOne(req, opts...).Err
	})
	if err != nil {
		logger.Log.Fatal("prompt loop failed", "error", err.Error())
	}
}

func valueFunc(name string) (coo.ValueFunc, error) {
	switch name {
	case "uniform":
		return coo.Uniform, nil
	case "normal":
		return coo.Normal(0, 1), nil
	default:
		return nil, fmt.Errorf("unknown distribution %q", name)
	}
}
