package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/arthur-debert/latch/cmd/latch"
	"github.com/arthur-debert/latch/pkg/display"
)

func main() {
	rootCmd := latch.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, display.ErrorLine(fmt.Sprintf("Error: %v", err)))

		// Partial and verification failures carry their own codes;
		// everything else is a plain failure
		code := 1
		var exitErr *latch.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.Code
		}
		os.Exit(code)
	}
}
