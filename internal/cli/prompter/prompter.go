// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package prompter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/platform-engineering-labs/changeset/internal/cli/display"
)

var ErrNoAnswer = errors.New("no answer given")

type Prompter interface {
	Input(prompt string) (string, error)
	Select(prompt string, options []string) (int, error)
}

// BasicPrompter asks line-oriented questions on a terminal.
type BasicPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewBasicPrompter(in io.Reader, out io.Writer) *BasicPrompter {
	return &BasicPrompter{in: bufio.NewReader(in), out: out}
}

func (p *BasicPrompter) Input(prompt string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", display.Gold(prompt))
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return "", ErrNoAnswer
	}
	return line, nil
}

// Select shows numbered options and returns the index of the chosen one.
// The answer may be the option's number or its text.
func (p *BasicPrompter) Select(prompt string, options []string) (int, error) {
	fmt.Fprintln(p.out, display.Gold(prompt))
	for i, option := range options {
		fmt.Fprintf(p.out, "  %s %s\n", display.Greyf("%d)", i+1), option)
	}

	for {
		fmt.Fprint(p.out, display.Grey("> "))
		line, err := p.readLine()
		if err != nil {
			return -1, err
		}

		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		for i, option := range options {
			if strings.EqualFold(line, option) {
				return i, nil
			}
		}

		fmt.Fprintln(p.out, display.Redf("Please choose 1-%d", len(options)))
	}
}

func (p *BasicPrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		if errors.Is(err, io.EOF) {
			return "", ErrNoAnswer
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
