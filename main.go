// main.go
//
// Entry point; all command handling lives in the Cobra commands under cmd/.

package main

import (
	"github.com/chpobench/chpobench/cmd"
)

func main() {
	cmd.Execute()
}
