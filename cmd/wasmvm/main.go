package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	doMain(os.Stdout, os.Stderr, os.Args[1:], os.Exit)
}

// doMain is separated out for the purpose of unit testing.
func doMain(stdOut, stdErr io.Writer, args []string, exit func(code int)) {
	root := newRootCmd()
	root.SetOut(stdOut)
	root.SetErr(stdErr)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stdErr, "error: %v\n", err)
		exit(1)
		return
	}
	exit(0)
}
