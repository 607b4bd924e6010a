// Package utils contains utility functions for the sakaton dev backend.
package utils

import (
	"fmt"
)

// DisplayLogo prints the SakaTON ASCII logo with version information
func DisplayLogo(version string) {
	fmt.Println()
	fmt.Println(` ░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░
 ░█▀▀░█▀█░█░█░█▀█░▀█▀░█▀█░█▀█░
 ░▀▀█░█▀█░█▀▄░█▀█░░█░░█░█░█░█░
 ░▀▀▀░▀░▀░▀░▀░▀░▀░░▀░░▀▀▀░▀░▀░
 ░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░`)
	fmt.Printf("\n SakaTON v%s - Local Development Backend\n", version)
	fmt.Println(" Tap-to-earn API served from memory")
	fmt.Println()
}
