// Command lexweb manages lexicons and webs stored in a SQLite database.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/lexweb/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil {
		// Commands report their own failures; argument and flag errors from
		// cobra arrive here unprinted.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	os.Exit(cli.GetExitCode(err))
}
