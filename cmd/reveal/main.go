// Command reveal checks effect catalogs and replays scroll scripts against
// a page description without opening a window.
package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/reveal/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}
