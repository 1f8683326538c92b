package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// Prompter reads operator input line by line. Prompts are written only when
// the input is a terminal so piped scripts produce clean output.
type Prompter struct {
	mu          sync.Mutex
	reader      *bufio.Reader
	out         io.Writer
	interactive bool
}

func NewPrompter(in io.Reader, out io.Writer, interactive bool) *Prompter {
	return &Prompter{reader: bufio.NewReader(in), out: out, interactive: interactive}
}

// ReadLine returns the next trimmed line. A final line without a newline is
// returned as-is; io.EOF is returned once input is exhausted.
func (p *Prompter) ReadLine() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return readLine(p.reader)
}

// Text prints prompt (when interactive) and reads one line.
//
//	Prompt text
//	> _
func (p *Prompter) Text(prompt string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.interactive {
		if _, err := fmt.Fprint(p.out, prompt+"\n> "); err != nil {
			return "", err
		}
	}
	return readLine(p.reader)
}

// TextDefault is Text with a value shown in brackets that is kept when the
// operator enters an empty line.
func (p *Prompter) TextDefault(prompt, def string) (string, error) {
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, def)
	}
	s, err := p.Text(prompt)
	if err != nil {
		return "", err
	}
	if s == "" {
		return def, nil
	}
	return s, nil
}

// Float reads a floating-point number.
func (p *Prompter) Float(prompt string) (float64, error) {
	s, err := p.Text(prompt)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return f, nil
}

// YesNo reads y/yes as true; anything else, including an empty line, is false.
func (p *Prompter) YesNo(prompt string) (bool, error) {
	s, err := p.Text(prompt + " [y/N]")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Confirm implements optimistic.Confirmer.
func (p *Prompter) Confirm(_ context.Context, prompt string) (bool, error) {
	return p.YesNo(prompt)
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
