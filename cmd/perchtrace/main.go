// Command perchtrace replays scripted pointer traces against headless perch
// charts and exposes the tooltip placement and label layout algorithms.
package main

import (
	"os"

	"github.com/phanxgames/perch/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
