// Command vipc is the compiler driver for the BASIC, Pascal, ViperLang,
// Zia, and IL-text dialects implemented by this module.
package main

import (
	"os"

	"github.com/splanck/vipc/cmd/vipc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
