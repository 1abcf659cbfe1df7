// Command minic is a single-pass compiler for a small C subset,
// lowering directly to AT&T-syntax x86-64 assembly for an external
// assembler.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skx/minic/compiler"
)

// version is the module's build version, reported by cobra's built-in
// --version flag.
var version = "0.1.0-dev"

func main() {
	root := &cobra.Command{
		Use:                   "minic <input.c> [output] [-o]",
		Short:                 "Compile a small C subset to x86-64 assembly",
		Version:               version,
		Args:                  cobra.RangeArgs(1, 3),
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		RunE:                  run,
	}

	// The third positional argument is the literal sentinel "-o", not
	// a flag; stopping flag parsing at the first positional argument
	// (the input file) passes it through to RunE as a plain argument,
	// while flags given before the input - including cobra's built-in
	// --version - are still parsed.
	root.Flags().SetInterspersed(false)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	input := args[0]

	source, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", input)
	}

	comp := compiler.New(input, string(source))
	asm, err := comp.Compile()
	if err != nil {
		return errors.Wrap(err, "compilation failed")
	}

	switch len(args) {
	case 1:
		return writeFile(input+".s", asm)

	case 2:
		return writeFile(args[1], asm)

	case 3:
		if args[2] != "-o" {
			return errors.Errorf("usage: minic <input.c> [output] [-o]")
		}
		return assembleAndLink(asm, args[1])

	default:
		return errors.Errorf("usage: minic <input.c> [output] [-o]")
	}
}

func writeFile(path, contents string) error {
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// assembleAndLink writes asm to a temporary file, invokes gcc to
// assemble and link it into output, and removes the temporary file
// whether or not gcc succeeds.
func assembleAndLink(asm, output string) error {
	tmp := fmt.Sprintf("tmp%d.s", time.Now().Unix())
	if err := writeFile(tmp, asm); err != nil {
		return err
	}
	defer os.Remove(tmp)

	gcc := exec.Command("gcc", tmp, "-o", output)
	gcc.Stdout = os.Stdout
	gcc.Stderr = os.Stderr
	if err := gcc.Run(); err != nil {
		return errors.Wrap(err, "gcc invocation failed")
	}
	return nil
}
