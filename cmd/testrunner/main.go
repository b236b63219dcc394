package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
)

// Packages whose tests share the Postgres database. They run one at a time
// after the parallel pass.
const defaultSerialPaths = "api/services/payments/db,api/router"

func main() {
	var (
		testsDir        string
		shortFlag       bool
		pkgParallel     int
		count           int
		serialPaths     string
		integrationRun  string
		integrationPath string
		verbose         bool
	)

	flag.StringVar(&testsDir, "tests-dir", "/app/tests", "directory containing compiled test binaries")
	flag.BoolVar(&shortFlag, "short", false, "run tests with -test.short")
	flag.IntVar(&pkgParallel, "pkg-parallel", runtime.NumCPU(), "number of packages to run in parallel")
	flag.IntVar(&count, "count", 1, "pass -test.count to disable caching when set to 1")
	flag.StringVar(&serialPaths, "serial-paths", defaultSerialPaths, "comma separated package paths that touch the database")
	flag.StringVar(&integrationRun, "integration-run", "", "regex of integration test(s) to run with -test.run")
	flag.StringVar(&integrationPath, "integration-path", "", "relative package path like 'api/router' for integration run")
	flag.BoolVar(&verbose, "v", true, "add -test.v to test binaries")
	flag.Parse()

	if !shortFlag && os.Getenv("DATABASE_URL") == "" {
		fmt.Println("==> DATABASE_URL not set, forcing -short")
		shortFlag = true
	}

	bins, err := collectTestBinaries(testsDir)
	if err != nil {
		fatal(err)
	}
	if len(bins) == 0 {
		fatal(errors.New("no test binaries found"))
	}

	var integrationBin string
	if integrationRun != "" {
		if integrationPath == "" {
			fatal(errors.New("integration-path is required when integration-run is set"))
		}
		integrationBin = binaryFor(testsDir, integrationPath)
		if _, err := os.Stat(integrationBin); err != nil {
			fatal(fmt.Errorf("integration binary not found at %s: %w", integrationBin, err))
		}
	}

	serial := map[string]bool{}
	for _, p := range strings.Split(serialPaths, ",") {
		if p = strings.TrimSpace(p); p != "" {
			serial[absPath(binaryFor(testsDir, p))] = true
		}
	}

	// Exclude the integration package from the unit pass to avoid double-running.
	var parallelBins, serialBins []string
	for _, b := range bins {
		switch {
		case integrationBin != "" && sameFile(b, integrationBin):
		case serial[absPath(b)]:
			serialBins = append(serialBins, b)
		default:
			parallelBins = append(parallelBins, b)
		}
	}

	fmt.Println("==> Running unit tests")
	if err := runBinaries(parallelBins, testArgs(verbose, shortFlag, count, 0), pkgParallel); err != nil {
		fatal(err)
	}

	if len(serialBins) > 0 {
		fmt.Println("==> Running database tests")
		if err := runBinaries(serialBins, testArgs(verbose, shortFlag, count, 1), 1); err != nil {
			fatal(err)
		}
	}

	if integrationBin != "" {
		fmt.Printf("==> Running integration tests in %s with -test.run=%s\n", integrationPath, integrationRun)
		args := testArgs(verbose, shortFlag, count, 1) // force -test.parallel=1 for integration
		args = append(args, "-test.run", integrationRun)
		if err := runBinaries([]string{integrationBin}, args, 1); err != nil {
			fatal(err)
		}
	}

	fmt.Println("==> All tests passed")
}

func binaryFor(testsDir, pkgPath string) string {
	return filepath.Join(testsDir, filepath.FromSlash(pkgPath)+".test")
}

func collectTestBinaries(root string) ([]string, error) {
	var bins []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".test") {
			bins = append(bins, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(bins)
	return bins, nil
}

func testArgs(verbose, short bool, count, testParallel int) []string {
	args := []string{}
	if verbose {
		args = append(args, "-test.v")
	}
	if short {
		args = append(args, "-test.short")
	}
	if count > 0 {
		args = append(args, fmt.Sprintf("-test.count=%d", count))
	}
	if testParallel > 0 {
		args = append(args, fmt.Sprintf("-test.parallel=%d", testParallel))
	}
	return args
}

func runBinaries(bins []string, args []string, parallel int) error {
	if len(bins) == 0 {
		return nil
	}
	if parallel < 1 {
		parallel = 1
	}
	sem := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errs []error

	for _, b := range bins {
		b := b // per-iteration copy (go directive is 1.21)
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			cmd := exec.Command(b, args...)
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			cmd.Env = os.Environ()
			// Tests read fixtures relative to their package directory (e.g. testdata/schema.sql).
			cmd.Dir = "/app"
			if wd := strings.TrimSuffix(b, ".test"); wd != b {
				if fi, err := os.Stat(wd); err == nil && fi.IsDir() {
					cmd.Dir = wd
				}
			}
			fmt.Printf("[RUN] %s %s\n", b, strings.Join(args, " "))
			if err := cmd.Run(); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s failed: %w", b, err))
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return errors.Join(errs...)
}

func absPath(p string) string {
	ap, _ := filepath.Abs(p)
	return ap
}

func sameFile(a, b string) bool {
	return absPath(a) == absPath(b)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
