package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "vipc",
	Short: "Multi-dialect compiler frontend",
	Long: `vipc compiles BASIC, Pascal, ViperLang, and Zia source (or IL text
directly) through a shared lexer/parser/semantic-analyzer pipeline. Only IL
text input yields a dialect-neutral IL module; source dialects stop after
semantic analysis and are not lowered to IL.

Dialect is chosen by file extension (.bas, .pas, .vip, .zia, .il) unless
overridden with --dialect.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
