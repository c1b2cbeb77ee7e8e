// @MX:ANCHOR: [AUTO] main is the stackgen entry point; the exit code comes from cli.Execute.
// @MX:REASON: [AUTO] only executable entry point; validation errors exit with 2, other failures with 1
package main

import (
	"os"

	"github.com/modu-ai/stackgen/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
