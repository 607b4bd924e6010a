// Package main implements the sakaton development backend (sakatond).
//
// sakatond serves the tap-to-earn API from memory so the sakatonctl client and
// the click submitter can be exercised locally without the production backend.
package main

import (
	"os"

	"github.com/concave-dev/sakaton/cmd/sakatond/commands"
)

func main() {
	commands.SetupCommands()

	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
