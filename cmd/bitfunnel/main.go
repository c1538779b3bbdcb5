/*
bitfunnel exposes plan, analyze, cd, load, and query over the planning and
matching pipeline. The pipeline itself knows nothing about this CLI; the
commands only supply an arena, a term-match tree, and a diagnostic stream.
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/log"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s <command> [arguments]

Commands:
  plan     parse a term-match tree and print its rewritten/compiled/emitted program
  analyze  like plan, plus register-allocation and disassembly diagnostics
  cd       list the manifests visible in an index directory
  load     load a demo term table manifest and report what it resolved
  query    run a term-match tree against a loaded demo index and print matches

`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}

	var err error
	switch args[0] {
	case "plan":
		err = runPlan(args[1:])
	case "analyze":
		err = runAnalyze(args[1:])
	case "cd":
		err = runCd(args[1:])
	case "load":
		err = runLoad(args[1:])
	case "query":
		err = runQuery(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		usage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
}
