/*
File    : ctfaw/cmd/ctfawc/main.go

Package main is the ctfawc CLI entry point. Grounded on the teacher's
main/main.go flag dispatch (--help/--version, file mode vs REPL mode),
generalized from "run a Go-Mix file through the tree-walking evaluator"
to "compile a CTFAW file through lex-parse-check-codegen-assemble-link"
(spec §6).
*/
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/unmappedstack/ctfaw/driver"
	"github.com/unmappedstack/ctfaw/repl"
)

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
	greenColor  = color.New(color.FgGreen)
)

const (
	version = "v1.0.0"
	author  = "ctfaw contributors"
	license = "MIT"
	prompt  = "ctfawc >>> "
	line    = "----------------------------------------------------------------"
	banner  = `
  ____ _____ _____ _    __        __
 / ___|_   _|  ___/ \   \ \      / /
| |     | | | |_ / _ \   \ \ /\ / /
| |___  | | |  _/ ___ \   \ V  V /
 \____| |_| |_|/_/   \_\   \_/\_/
`
)

func main() {
	if len(os.Args) < 2 {
		repler := repl.NewRepl(banner, version, author, line, license, prompt)
		repler.Start(os.Stdin, os.Stdout)
		return
	}

	switch os.Args[1] {
	case "--help", "-h":
		showHelp()
		return
	case "--version", "-v":
		showVersion()
		return
	case "repl":
		repler := repl.NewRepl(banner, version, author, line, license, prompt)
		repler.Start(os.Stdin, os.Stdout)
		return
	}

	runFile(os.Args[1:])
}

func showHelp() {
	cyanColor.Println("ctfawc - the CTFAW compiler")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  ctfawc <input-file> [-o <out>] [-S] [-c] [-r]   Compile a CTFAW source file")
	yellowColor.Println("  ctfawc repl                                     Start the interactive REPL")
	yellowColor.Println("  ctfawc --help                                   Display this help message")
	yellowColor.Println("  ctfawc --version                                Display version information")
	cyanColor.Println("")
	cyanColor.Println("FLAGS:")
	yellowColor.Println("  -o <path>     Set the output path (default: input file without extension)")
	yellowColor.Println("  -S            Stop after emitting NASM assembly (.asm)")
	yellowColor.Println("  -c            Stop after assembling to an object file (.o)")
	yellowColor.Println("  -r            Run the produced executable after linking")
	yellowColor.Println("  -colorless    Disable ANSI color in diagnostics")
}

func showVersion() {
	cyanColor.Println("ctfawc - the CTFAW compiler")
	cyanColor.Printf("Version: %s\n", version)
	cyanColor.Printf("License: %s\n", license)
}

// runFile parses ctfawc's compile-mode flags (spec §6) and invokes the
// driver, reporting any diagnostic or process error in red and exiting
// nonzero (spec §7).
func runFile(args []string) {
	opts := driver.Options{Stop: driver.StopNone}
	var inputSet bool

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-o":
			i++
			if i >= len(args) {
				redColor.Fprintf(os.Stderr, "[USAGE ERROR] -o requires a path argument\n")
				os.Exit(1)
			}
			opts.OutputPath = args[i]
		case "-S":
			opts.Stop = driver.StopAsm
		case "-c":
			opts.Stop = driver.StopObjct
		case "-r":
			opts.Run = true
		case "-colorless":
			opts.Colorless = true
			color.NoColor = true
		default:
			if inputSet {
				redColor.Fprintf(os.Stderr, "[USAGE ERROR] unexpected argument %q\n", args[i])
				os.Exit(1)
			}
			opts.InputPath = args[i]
			inputSet = true
		}
	}

	if !inputSet {
		redColor.Fprintf(os.Stderr, "[USAGE ERROR] missing input file\n")
		os.Exit(1)
	}

	res, err := driver.Run(opts)
	if err != nil {
		redColor.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	switch opts.Stop {
	case driver.StopAsm:
		greenColor.Fprintf(os.Stdout, "wrote %s\n", res.AsmPath)
	case driver.StopObjct:
		greenColor.Fprintf(os.Stdout, "wrote %s\n", res.ObjPath)
	default:
		greenColor.Fprintf(os.Stdout, "wrote %s\n", res.ExePath)
	}

	if res.Ran {
		if res.ExitCode != 0 {
			redColor.Fprintf(os.Stdout, "%s\n", fmt.Sprintf("program exited with code %d", res.ExitCode))
			os.Exit(res.ExitCode)
		}
		yellowColor.Fprintf(os.Stdout, "%s\n", fmt.Sprintf("program exited with code %d", res.ExitCode))
	}
}
