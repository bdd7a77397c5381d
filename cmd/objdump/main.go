// Command objdump reads back an object file produced by cmd/asm and
// pretty-prints its header and every code/data word with address and
// hex value — grounded on the teacher's own debug/objdump.go, adapted
// to this repo's object format instead of DULF.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/k0kubun/pp/v3"
)

// decoded is the pretty-printed shape of one object file.
type decoded struct {
	CodeSize int
	DataSize int
	Code     []line
	Data     []line
}

type line struct {
	Address int
	Hex     string
}

func main() {
	var r io.Reader = os.Stdin

	if len(os.Args) == 2 {
		f, err := os.Open(os.Args[1])
		if err != nil {
			log.Fatalf("objdump: %v", err)
		}
		defer f.Close()
		r = f
	}

	dec, err := read(r)
	if err != nil {
		log.Fatalf("objdump: %v", err)
	}
	pp.Println(dec)
}

// read parses the "code_size data_size" header, code_size payload lines,
// a blank separator, and data_size payload lines.
func read(r io.Reader) (decoded, error) {
	sc := bufio.NewScanner(r)

	if !sc.Scan() {
		return decoded{}, fmt.Errorf("empty object file")
	}
	header := strings.Fields(sc.Text())
	if len(header) != 2 {
		return decoded{}, fmt.Errorf("malformed header %q", sc.Text())
	}
	codeSize, err := strconv.Atoi(header[0])
	if err != nil {
		return decoded{}, fmt.Errorf("malformed code_size: %w", err)
	}
	dataSize, err := strconv.Atoi(header[1])
	if err != nil {
		return decoded{}, fmt.Errorf("malformed data_size: %w", err)
	}

	dec := decoded{CodeSize: codeSize, DataSize: dataSize}

	for i := 0; i < codeSize; i++ {
		l, err := readLine(sc)
		if err != nil {
			return decoded{}, err
		}
		dec.Code = append(dec.Code, l)
	}

	if dataSize > 0 {
		sc.Scan() // blank separator line
		for i := 0; i < dataSize; i++ {
			l, err := readLine(sc)
			if err != nil {
				return decoded{}, err
			}
			dec.Data = append(dec.Data, l)
		}
	}

	return dec, sc.Err()
}

func readLine(sc *bufio.Scanner) (line, error) {
	if !sc.Scan() {
		return line{}, fmt.Errorf("unexpected end of object file")
	}
	fields := strings.Fields(sc.Text())
	if len(fields) != 2 {
		return line{}, fmt.Errorf("malformed payload line %q", sc.Text())
	}
	addr, err := strconv.Atoi(fields[0])
	if err != nil {
		return line{}, fmt.Errorf("malformed address: %w", err)
	}
	return line{Address: addr, Hex: fields[1]}, nil
}
