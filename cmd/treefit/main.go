// Command treefit checks whether sets of polyomino presents can be packed
// into the rectangular regions under each tree.
//
// Build:
//
//	go build -o treefit ./cmd/treefit
//
// Usage:
//
//	treefit solve puzzle.txt
//	treefit solve puzzle.txt --pdf report.pdf --xlsx report.xlsx
//	treefit verify puzzle.txt
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI with args and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitCode(err)
	}
	return exitSuccess
}
