// Package terminal is the line-oriented I/O adapter the interactive session
// talks through.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrClosed is returned once input is exhausted.
var ErrClosed = errors.New("terminal input closed")

// Terminal reads and writes single lines.
type Terminal struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewScanner(in), out: out}
}

// ReadLine returns the next input line with surrounding whitespace removed.
func (t *Terminal) ReadLine() (string, error) {
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", fmt.Errorf("read line: %w", err)
		}
		return "", ErrClosed
	}
	return strings.TrimSpace(t.in.Text()), nil
}

// WriteLine writes s followed by a newline.
func (t *Terminal) WriteLine(s string) {
	fmt.Fprintln(t.out, s)
}

// Writef writes a formatted line.
func (t *Terminal) Writef(format string, args ...any) {
	fmt.Fprintf(t.out, format+"\n", args...)
}

// Prompt writes label without a newline and reads the answer.
func (t *Terminal) Prompt(label string) (string, error) {
	fmt.Fprintf(t.out, "\t%s: ", label)
	return t.ReadLine()
}

// PromptInt prompts until the answer parses as an integer. Malformed numbers
// re-prompt rather than failing.
func (t *Terminal) PromptInt(label string) (int64, error) {
	for {
		line, err := t.Prompt(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.ParseInt(line, 10, 64)
		if err == nil {
			return n, nil
		}
		t.WriteLine("\tYour input is invalid!")
	}
}

// PromptFloat prompts until the answer parses as a float.
func (t *Terminal) PromptFloat(label string) (float64, error) {
	for {
		line, err := t.Prompt(label)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(line, 64)
		if err == nil {
			return f, nil
		}
		t.WriteLine("\tYour input is invalid!")
	}
}

// PromptDecimal prompts until the answer parses as a decimal amount.
func (t *Terminal) PromptDecimal(label string) (decimal.Decimal, error) {
	for {
		line, err := t.Prompt(label)
		if err != nil {
			return decimal.Zero, err
		}
		d, err := decimal.NewFromString(line)
		if err == nil {
			return d, nil
		}
		t.WriteLine("\tYour input is invalid!")
	}
}
