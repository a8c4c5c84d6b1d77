// Command djade reformats Django template source files in place to a
// canonical whitespace and token style, optionally applying version-gated
// syntactic migrations for a target Django release.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/docopt/docopt-go"

	"github.com/tmpl-tools/djade"
)

var usage = `djade

Usage:
  djade [options] <target>...
  djade -h | --help

Options:
  --target-version <ver>  Apply fixers for Django <major>.<minor> and earlier.
  --check                 Don't write files; report which ones would change.
  --diff                  Print a unified diff of the changes to each file.
  --no-write              Don't overwrite the input files (implied by --check).
  --no-list               Don't list files containing formatting changes.
  -h --help               Show this screen.`

type config struct {
	TargetVersion string   `docopt:"--target-version"`
	Check         bool     `docopt:"--check"`
	Diff          bool     `docopt:"--diff"`
	NoWrite       bool     `docopt:"--no-write"`
	NoList        bool     `docopt:"--no-list"`
	Target        []string `docopt:"<target>"`
}

func main() {
	args, err := docopt.ParseDoc(usage)
	if err != nil {
		log.Fatal(err)
	}

	var cfg config
	if err := args.Bind(&cfg); err != nil {
		log.Fatal(err)
	}

	var target *djade.Version
	if cfg.TargetVersion != "" {
		v, err := parseTargetVersion(cfg.TargetVersion)
		if err != nil {
			fmt.Fprintf(os.Stderr, "djade: %v\n", err)
			os.Exit(2)
		}
		target = &v
	}

	if cfg.Check {
		cfg.NoWrite = true
	}

	if len(cfg.Target) == 0 {
		fmt.Fprintln(os.Stderr, "djade: no input files")
		os.Exit(2)
	}

	os.Exit(run(cfg.Target, target, cfg))
}

// parseTargetVersion parses a "major.minor" string and validates it against
// the finite set of recognized Django versions (spec §6).
func parseTargetVersion(s string) (djade.Version, error) {
	parts := strings.SplitN(s, ".", 2)
	if len(parts) != 2 {
		return djade.Version{}, fmt.Errorf("invalid --target-version %q: expected <major>.<minor>", s)
	}
	major, err1 := strconv.Atoi(parts[0])
	minor, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return djade.Version{}, fmt.Errorf("invalid --target-version %q: expected <major>.<minor>", s)
	}
	v := djade.Version{Major: major, Minor: minor}
	if !djade.IsKnownVersion(v) {
		return djade.Version{}, fmt.Errorf("unrecognized --target-version %q; valid versions: %s", s, knownVersionsList())
	}
	return v, nil
}

func knownVersionsList() string {
	parts := make([]string, len(djade.KnownVersions))
	for i, v := range djade.KnownVersions {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}

// run processes each path and returns the process exit code: 2 if any I/O
// or parse error occurred, 1 if --check found a file that would change,
// else 0 (spec §6–7).
func run(paths []string, target *djade.Version, cfg config) int {
	var hadError, hadChange bool
	var reformatted, unchanged int

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "djade: %s: %v\n", path, err)
			hadError = true
			continue
		}
		if info.IsDir() {
			fmt.Fprintf(os.Stderr, "djade: %s: is a directory; djade does not recurse\n", path)
			hadError = true
			continue
		}

		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "djade: %s: %v\n", path, err)
			hadError = true
			continue
		}

		out, changed, err := djade.Format(src, target)
		if err != nil {
			fmt.Fprintf(os.Stderr, "djade: %s: %v\n", path, err)
			hadError = true
			continue
		}

		if !changed {
			unchanged++
			continue
		}

		reformatted++
		hadChange = true

		if !cfg.NoList {
			fmt.Println(path)
		}

		if cfg.Diff {
			d, derr := diffBytes(src, out, path)
			if derr != nil {
				fmt.Fprintf(os.Stderr, "djade: %s: %v\n", path, derr)
				hadError = true
			} else {
				os.Stdout.Write(d)
			}
		}

		if !cfg.NoWrite {
			if err := os.WriteFile(path, out, 0o644); err != nil {
				fmt.Fprintf(os.Stderr, "djade: %s: %v\n", path, err)
				hadError = true
			}
		}
	}

	if !cfg.Check {
		fmt.Printf("%d reformatted, %d already formatted\n", reformatted, unchanged)
	}

	switch {
	case hadError:
		return 2
	case cfg.Check && hadChange:
		return 1
	default:
		return 0
	}
}
