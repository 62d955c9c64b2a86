package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/raymyers/mini-cc/pkg/cabs"
	"github.com/raymyers/mini-cc/pkg/lexer"
	"github.com/raymyers/mini-cc/pkg/parser"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// Debug flags for dumping front-end output
var (
	dParse  bool
	dTokens bool
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	// Normalize compiler-style single-dash flags to double-dash for pflag
	rootCmd.SetArgs(normalizeFlags(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// debugFlagNames lists the flags that accept single-dash style for
// compatibility with the usual cc driver conventions.
var debugFlagNames = []string{"dparse", "dtokens"}

// normalizeFlags converts single-dash flags like -dparse to --dparse
func normalizeFlags(args []string) []string {
	result := make([]string, len(args))
	for i, arg := range args {
		for _, flagName := range debugFlagNames {
			if arg == "-"+flagName {
				result[i] = "--" + flagName
				break
			}
		}
		if result[i] == "" {
			result[i] = arg
		}
	}
	return result
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mini-cc [file]",
		Short: "mini-cc is a small C front end for testing the parsing pass",
		Long: `mini-cc parses a preprocessed C source file into an abstract
syntax tree with names resolved and struct layout computed, and can
dump the result for inspection.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Help()
				return nil
			}
			filename := args[0]

			if dTokens {
				return doTokens(filename, out, errOut)
			}
			if dParse {
				return doParse(filename, out, errOut)
			}

			// Without a dump flag there is nothing downstream yet; still
			// run the parser so errors are reported.
			if _, err := parseFile(filename, errOut); err != nil {
				return err
			}
			fmt.Fprintf(errOut, "mini-cc: parsed %s\n", filename)
			return nil
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.Flags().BoolVar(&dParse, "dparse", false, "Dump the AST after parsing")
	rootCmd.Flags().BoolVar(&dTokens, "dtokens", false, "Dump the token stream")

	return rootCmd
}

// parseFile reads and parses a C file, returning the AST. Parse warnings go
// to errOut; a parse error is reported and returned.
func parseFile(filename string, errOut io.Writer) (*cabs.Program, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(errOut, "mini-cc: error reading %s: %v\n", filename, err)
		return nil, err
	}

	p := parser.New(lexer.New(string(content)))
	program, err := p.ParseProgram()
	for _, w := range p.Warnings() {
		fmt.Fprintf(errOut, "%s: warning: %s\n", filename, w)
	}
	if err != nil {
		fmt.Fprintf(errOut, "%s: %v\n", filename, err)
		return nil, err
	}
	return program, nil
}

// doParse parses the file and writes the AST to a .parsed.c file
func doParse(filename string, out, errOut io.Writer) error {
	program, err := parseFile(filename, errOut)
	if err != nil {
		return err
	}

	outputFilename := parsedOutputFilename(filename)
	outFile, err := os.Create(outputFilename)
	if err != nil {
		fmt.Fprintf(errOut, "mini-cc: error creating %s: %v\n", outputFilename, err)
		return err
	}
	defer outFile.Close()

	printer := cabs.NewPrinter(outFile)
	printer.PrintProgram(program)

	// Also print to stdout for convenience
	printer = cabs.NewPrinter(out)
	printer.PrintProgram(program)

	return nil
}

// parsedOutputFilename returns the output filename for -dparse:
// input.c -> input.parsed.c
func parsedOutputFilename(filename string) string {
	ext := ".c"
	if strings.HasSuffix(filename, ext) {
		return filename[:len(filename)-len(ext)] + ".parsed.c"
	}
	return filename + ".parsed.c"
}

// doTokens lexes the file and dumps one token per line
func doTokens(filename string, out, errOut io.Writer) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(errOut, "mini-cc: error reading %s: %v\n", filename, err)
		return err
	}

	l := lexer.New(string(content))
	for {
		tok := l.NextToken()
		if tok.Type == lexer.TokenEOF {
			return nil
		}
		fmt.Fprintf(out, "%d:%d\t%s\t%q\n", tok.Line, tok.Column, tok.Type, tok.Literal)
	}
}
