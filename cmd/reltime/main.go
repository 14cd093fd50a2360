// Command reltime resolves relative time expressions such as "now()-1d@d".
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/c2nes/reltime/internal/cli"
)

func main() {
	err := cli.NewRootCommand(cli.DefaultEnv()).Execute()
	if err == nil {
		return
	}
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(cli.GetExitCode(err))
}
