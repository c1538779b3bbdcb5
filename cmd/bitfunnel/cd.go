package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/pkg/errors"
)

// runCd implements the `cd` subcommand: list the manifest files visible in
// an index directory, so a user can see what `load`/`query -manifest` have
// to work with before running them. It never changes this process's
// working directory: there is no shell-like session state to carry between
// separate invocations.
func runCd(args []string) error {
	fs := flag.NewFlagSet("cd", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s cd <directory>\n", os.Args[0])
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("cd: exactly one directory argument required")
	}
	dir := fs.Arg(0)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, "cd: reading %s", dir)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	fmt.Printf("%s:\n", dir)
	for _, name := range names {
		fmt.Printf("  %s\n", name)
	}
	return nil
}
