// Command hpackbench runs the hpack package's benchmark suite at two CPU
// configurations and reports the statistical comparison between them, the
// same way golang.org/x/perf/cmd/benchstat compares a before/after pair of
// benchmark snapshots.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/perf/benchstat"
)

const (
	defaultBenchTime = "200ms"
	defaultCount     = 6
	defaultPattern   = "."
	defaultPkg       = "./pkg/hpack/..."
)

type config struct {
	benchTime  string
	count      int
	pattern    string
	pkg        string
	baselineN  int
	candidateN int
	verbose    bool
}

func main() {
	cfg := parseFlags()

	log.Printf("running %q at cpu=%d (baseline)\n", cfg.pattern, cfg.baselineN)
	baseline, err := runBenchmarks(cfg, cfg.baselineN)
	if err != nil {
		log.Fatalf("baseline run failed: %v", err)
	}

	log.Printf("running %q at cpu=%d (candidate)\n", cfg.pattern, cfg.candidateN)
	candidate, err := runBenchmarks(cfg, cfg.candidateN)
	if err != nil {
		log.Fatalf("candidate run failed: %v", err)
	}

	var c benchstat.Collection
	baselineName := fmt.Sprintf("cpu=%d", cfg.baselineN)
	candidateName := fmt.Sprintf("cpu=%d", cfg.candidateN)
	if err := c.AddConfig(baselineName, baseline); err != nil {
		log.Fatalf("parsing baseline output: %v", err)
	}
	if err := c.AddConfig(candidateName, candidate); err != nil {
		log.Fatalf("parsing candidate output: %v", err)
	}

	benchstat.FormatText(os.Stdout, c.Tables())
}

func parseFlags() *config {
	cfg := &config{}
	flag.StringVar(&cfg.benchTime, "benchtime", defaultBenchTime, "time to run each benchmark (e.g. 200ms, 1s)")
	flag.IntVar(&cfg.count, "count", defaultCount, "number of runs to feed into the statistical comparison")
	flag.StringVar(&cfg.pattern, "bench", defaultPattern, "benchmark name regexp passed to go test -bench")
	flag.StringVar(&cfg.pkg, "pkg", defaultPkg, "package pattern to benchmark")
	flag.IntVar(&cfg.baselineN, "baseline-cpu", 1, "GOMAXPROCS for the baseline run")
	flag.IntVar(&cfg.candidateN, "candidate-cpu", 4, "GOMAXPROCS for the candidate run")
	flag.BoolVar(&cfg.verbose, "v", false, "stream go test output to stderr as it runs")
	flag.Parse()

	if cfg.count < 1 {
		log.Fatalf("count must be >= 1, got %d", cfg.count)
	}
	if _, err := time.ParseDuration(cfg.benchTime); err != nil {
		log.Fatalf("invalid -benchtime %q: %v", cfg.benchTime, err)
	}
	return cfg
}

func runBenchmarks(cfg *config, cpu int) ([]byte, error) {
	args := []string{
		"test",
		fmt.Sprintf("-bench=%s", cfg.pattern),
		"-benchmem",
		"-run=^$",
		fmt.Sprintf("-benchtime=%s", cfg.benchTime),
		fmt.Sprintf("-count=%d", cfg.count),
		fmt.Sprintf("-cpu=%d", cpu),
		cfg.pkg,
	}

	repoRoot, err := findRepoRoot()
	if err != nil {
		return nil, err
	}

	cmd := exec.Command("go", args...)
	cmd.Dir = repoRoot

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	if cfg.verbose {
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("go %s: %w\n%s", strings.Join(args, " "), err, stderr.String())
	}
	return stdout.Bytes(), nil
}

// findRepoRoot walks up from the working directory looking for go.mod, so
// hpackbench can be invoked from any subdirectory of the module.
func findRepoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found above %s", dir)
		}
		dir = parent
	}
}
