package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/seqops/liribatch/internal/cli"
	"github.com/seqops/liribatch/pkg/liribatch"
)

func main() {
	// A panic must still exit with its own code and a stack trace, not a
	// bare runtime crash.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(liribatch.ExitPanic)
		}
	}()

	if os.Getenv("LIRIBATCH_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(liribatch.ExitCodeForError(err))
	}
}
