// Command asm is the batch assembler driver: for each positional base
// file name it reads "<base>.as", runs both passes, and on success
// writes "<base>.ob" and, when non-empty, "<base>.ext" and "<base>.ent".
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"maman14asm/internal/assemble"
	"maman14asm/internal/diag"
	"maman14asm/internal/emit"
)

const (
	exitOK         = 0
	exitFileError  = 1
	exitWriteError = 2
	exitAllocError = 3
)

func main() {
	verbose := flag.Bool("v", false, "print the final symbol table for each file")
	flag.Parse()
	args := flag.Args()

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: asm <base>...  (reads <base>.as, writes <base>.ob/.ext/.ent)")
		os.Exit(exitOK)
	}

	stderr := colorable.NewColorable(os.Stderr)
	color := isatty.IsTerminal(os.Stderr.Fd())

	sink := diag.NewSink()
	for _, base := range args {
		assembleOne(base, sink, stderr, color, *verbose)
	}
}

func assembleOne(base string, sink *diag.Sink, stderr io.Writer, color, verbose bool) {
	srcPath := base + ".as"
	f, err := os.Open(srcPath)
	if err != nil {
		log.Fatalf("asm: cannot open %s: %v", srcPath, err)
	}

	sink.SetCurrentFile(srcPath)
	lines := assemble.ReadSource(f, sink)
	if err := f.Close(); err != nil {
		log.Fatalf("asm: cannot close %s: %v", srcPath, err)
	}

	a := assemble.NewAssembler(sink)
	ok := a.Assemble(lines)

	emitDiagnostics(sink, stderr, color)

	if verbose {
		diag.DumpState(stderr, fmt.Sprintf("%s: symbol table", base), a.Symtab.InDeclarationOrder())
	}

	sink.ClearCurrentFile()

	if !ok {
		return
	}

	writeOutputs(base, a)
}

func emitDiagnostics(sink *diag.Sink, stderr io.Writer, color bool) {
	for _, d := range sink.Diagnostics() {
		if color {
			fmt.Fprintf(stderr, "\x1b[31m%s\x1b[0m\n", d.String())
		} else {
			fmt.Fprintln(stderr, d.String())
		}
	}
}

func writeOutputs(base string, a *assemble.Assembler) {
	objPath := base + ".ob"
	objFile, err := os.Create(objPath)
	if err != nil {
		log.Fatalf("asm: cannot create %s: %v", objPath, err)
	}
	if err := emit.WriteObject(objFile, &a.Code, &a.Data); err != nil {
		objFile.Close()
		os.Exit(exitWriteError)
	}
	if err := objFile.Close(); err != nil {
		os.Exit(exitFileError)
	}

	if a.Externs.Len() > 0 {
		extPath := base + ".ext"
		extFile, err := os.Create(extPath)
		if err != nil {
			log.Fatalf("asm: cannot create %s: %v", extPath, err)
		}
		if err := emit.WriteExternals(extFile, &a.Externs); err != nil {
			extFile.Close()
			os.Exit(exitWriteError)
		}
		if err := extFile.Close(); err != nil {
			os.Exit(exitFileError)
		}
	}

	if emit.HasEntries(a.Symtab) {
		entPath := base + ".ent"
		entFile, err := os.Create(entPath)
		if err != nil {
			log.Fatalf("asm: cannot create %s: %v", entPath, err)
		}
		if err := emit.WriteEntries(entFile, a.Symtab); err != nil {
			entFile.Close()
			os.Exit(exitWriteError)
		}
		if err := entFile.Close(); err != nil {
			os.Exit(exitFileError)
		}
	}
}
