// Command distcalc evaluates expressions over numbers and distributions.
//
// Expressions come from the command-line arguments, or from a file or stdin.
// With -n, each input line is a separate expression.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/zephyrtronium/distexpr"
)

func main() {
	log.SetFlags(0)
	var (
		inname   string
		nl, echo bool
		asJSON   bool
	)
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.BoolVar(&nl, "n", false, "evaluate separate input lines as separate expressions")
	flag.BoolVar(&echo, "echo", false, "print tokens before each result")
	flag.BoolVar(&asJSON, "json", false, "print results as JSON")
	flag.Parse()

	var srcs []string
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		in, err := readExprs(f, nl)
		f.Close()
		if err != nil {
			log.Fatal(err)
		}
		srcs = append(srcs, in...)
	}
	srcs = append(srcs, flag.Args()...)

	failed := false
	for _, src := range srcs {
		if echo {
			fmt.Print(tokenLine(src))
		}
		r, err := distexpr.EvalString(src)
		if err != nil {
			failed = true
			r = distexpr.ErrorResult{Message: err.Error()}
		}
		if asJSON {
			b, err := json.Marshal(r)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Printf("%s\n", b)
			continue
		}
		fmt.Println(distexpr.Format(r))
	}
	if failed {
		os.Exit(1)
	}
}

// readExprs reads expressions from in: the whole input as one expression, or
// each non-blank line as its own when lines is set.
func readExprs(in io.Reader, lines bool) ([]string, error) {
	if !lines {
		b, err := io.ReadAll(in)
		if err != nil {
			return nil, err
		}
		return []string{string(b)}, nil
	}
	var r []string
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		r = append(r, sc.Text())
	}
	return r, sc.Err()
}

// tokenLine describes the tokens of src ahead of its result, or the reason
// it could not be tokenized.
func tokenLine(src string) string {
	toks, err := distexpr.Tokenize(src)
	if err != nil {
		return fmt.Sprintf("<%v> : ", err)
	}
	return fmt.Sprintf("%v : ", toks)
}

// infile opens the input named by inname. Stdin is returned with a no-op
// Close so callers can close whatever they get.
func infile(inname string, std bool) (io.ReadCloser, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return io.NopCloser(os.Stdin), nil
	}
	return nil, nil
}
