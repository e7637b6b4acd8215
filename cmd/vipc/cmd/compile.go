package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/splanck/vipc/internal/il"
	"github.com/splanck/vipc/internal/source"
	"github.com/splanck/vipc/pkg/compiler"
)

var (
	outputFile     string
	dialectFlag    = &dialectValue{}
	disassemble    bool
	compileVerbose bool
	noColor        bool
)

// dialectValue implements pflag.Value so --dialect rejects an unknown
// dialect name at flag-parse time (cobra's usage error), rather than the
// command body having to re-validate a plain string.
type dialectValue struct {
	set bool
	d   compiler.Dialect
}

func (v *dialectValue) String() string {
	if !v.set {
		return ""
	}
	return v.d.String()
}

func (v *dialectValue) Set(s string) error {
	d, err := dialectFromFlag(s)
	if err != nil {
		return err
	}
	v.d, v.set = d, true
	return nil
}

func (v *dialectValue) Type() string { return "dialect" }

var _ pflag.Value = (*dialectValue)(nil)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a source file through the frontend pipeline",
	Long: `Compile a BASIC, Pascal, ViperLang, or Zia source file (or an IL text
file) through the shared lexer/parser/import-resolver/semantic-analyzer
pipeline, printing any diagnostics. Source dialects are checked but not
lowered to IL; only IL text input yields an IL module, which --disassemble
prints on success.

Examples:
  # Compile a ViperLang file, dialect inferred from its .vip extension
  vipc compile main.vip

  # Force a dialect regardless of extension
  vipc compile script.txt --dialect zia

  # Print the parsed IL module of an IL text file
  vipc compile module.il --disassemble`,
	Args: cobra.ExactArgs(1),
	RunE: compileFile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the disassembled IL to this file instead of stdout")
	compileCmd.Flags().Var(dialectFlag, "dialect", "override dialect detection: basic, pascal, viper, zia, il")
	compileCmd.Flags().BoolVar(&disassemble, "disassemble", false, "print the IL module after a successful compile (IL text input only)")
	compileCmd.Flags().BoolVarP(&compileVerbose, "verbose", "v", false, "verbose output")
	compileCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored diagnostic output")
}

func dialectFromExt(path string) (compiler.Dialect, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bas":
		return compiler.DialectBasic, true
	case ".pas":
		return compiler.DialectPascal, true
	case ".vip":
		return compiler.DialectViper, true
	case ".zia":
		return compiler.DialectZia, true
	case ".il":
		return compiler.DialectIL, true
	default:
		return 0, false
	}
}

func dialectFromFlag(name string) (compiler.Dialect, error) {
	switch strings.ToLower(name) {
	case "basic":
		return compiler.DialectBasic, nil
	case "pascal":
		return compiler.DialectPascal, nil
	case "viper":
		return compiler.DialectViper, nil
	case "zia":
		return compiler.DialectZia, nil
	case "il":
		return compiler.DialectIL, nil
	default:
		return 0, fmt.Errorf("unknown dialect %q (want basic, pascal, viper, zia, or il)", name)
	}
}

func compileFile(_ *cobra.Command, args []string) error {
	path := args[0]

	var d compiler.Dialect
	if dialectFlag.set {
		d = dialectFlag.d
	} else {
		var ok bool
		d, ok = dialectFromExt(path)
		if !ok {
			return fmt.Errorf("cannot infer dialect from extension of %s; pass --dialect", path)
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	if compileVerbose {
		fmt.Fprintf(os.Stderr, "Compiling %s as %s...\n", path, d)
	}

	sm := source.New()
	reader := source.NewAFSReader()

	res := compiler.Compile(context.Background(), d, sm, reader, path, string(content))

	colorize := !noColor && isatty.IsTerminal(os.Stderr.Fd())
	res.Engine.PrintAll(os.Stderr, sm, colorize)

	if !res.Succeeded() {
		return fmt.Errorf("compilation failed with %d error(s)", res.Engine.ErrorCount())
	}

	if compileVerbose {
		fmt.Fprintf(os.Stderr, "Compilation successful (%d warning(s))\n", res.Engine.WarningCount())
	}

	if disassemble && res.IL != nil {
		out := os.Stdout
		if outputFile != "" {
			f, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("failed to create output file %s: %w", outputFile, err)
			}
			defer f.Close()
			fmt.Fprint(f, disassembleModule(res.IL))
			return nil
		}
		fmt.Fprint(out, disassembleModule(res.IL))
	} else if !compileVerbose {
		fmt.Printf("Compiled %s (dialect %s)\n", path, d)
	}

	return nil
}

// disassembleModule renders mod back to the IL text form (spec §4.7),
// mirroring the teacher's bytecode.Disassembler but for this module's own
// instruction set rather than a binary chunk.
func disassembleModule(mod *il.Module) string {
	var sb strings.Builder
	if mod.Version != "" {
		fmt.Fprintf(&sb, "il %s\n", mod.Version)
	}
	if mod.TargetTriple != "" {
		fmt.Fprintf(&sb, "target %s\n", mod.TargetTriple)
	}
	for _, e := range mod.Externs {
		fmt.Fprintf(&sb, "extern @%s(%s) -> %s\n", e.Name, paramList(e.Params), e.Ret)
	}
	for _, fn := range mod.Functions {
		fmt.Fprintf(&sb, "\nfunc @%s(%s) -> %s {\n", fn.Name, paramList(fn.Params), fn.Ret)
		for _, b := range fn.Blocks {
			if len(b.Params) == 0 {
				fmt.Fprintf(&sb, "%s:\n", b.Label)
			} else {
				fmt.Fprintf(&sb, "%s(%s):\n", b.Label, paramList(b.Params))
			}
			// Instructions already ends with the terminator.
			for _, instr := range b.Instructions {
				writeInstr(&sb, instr)
			}
		}
		sb.WriteString("}\n")
	}
	return sb.String()
}

func paramList(params []il.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%s %%%s", p.Type, p.Name)
	}
	return strings.Join(parts, ", ")
}

func writeInstr(sb *strings.Builder, instr il.Instr) {
	if instr.Result != "" {
		fmt.Fprintf(sb, "  %%%s = %s %s\n", instr.Result, instr.Opcode, strings.Join(instr.Operands, ", "))
	} else {
		fmt.Fprintf(sb, "  %s %s\n", instr.Opcode, strings.Join(instr.Operands, ", "))
	}
}
