// The main package for the urinfo executable.
package main

import (
	"github.com/JakeFAU/urinfo/cmd"
)

// main defers all execution to the Cobra CLI.
func main() {
	cmd.Execute()
}
