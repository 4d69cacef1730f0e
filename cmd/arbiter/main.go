// Command arbiter compiles prompt constraints into decision trees and
// runs generated validators against model output.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/arbiter/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
