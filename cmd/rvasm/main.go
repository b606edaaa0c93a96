// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/rvasm/riscv"
)

func main() {
	var output string
	var format string
	var verbose bool

	flag.StringVar(&output, "o", "-", "Output file")
	flag.StringVar(&format, "f", "hex", "Output format (hex, bin, raw)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: Expected a single assembly source file", os.Args[0])
	}
	source := flag.Arg(0)

	inf, err := os.Open(source)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}
	defer inf.Close()

	asm := &riscv.Assembler{Verbose: verbose}
	prog, err := asm.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	ouf := os.Stdout
	if output != "-" {
		ouf, err = os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
	}

	w := bufio.NewWriter(ouf)
	defer w.Flush()

	switch format {
	case "hex":
		for _, word := range prog.Words() {
			fmt.Fprintln(w, word.Hex())
		}
	case "bin":
		for _, word := range prog.Words() {
			fmt.Fprintln(w, word.Binary())
		}
	case "raw":
		err = binary.Write(w, binary.LittleEndian, prog.Binary())
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
	default:
		log.Fatalf("%v: Unknown output format: %v", os.Args[0], format)
	}
}
