package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/aalvaropc/crosspost/internal/domain"
	"github.com/aalvaropc/crosspost/internal/ports"
)

// Terminal prompts on out and reads answers line by line from in.
// Secrets are read without echo when in is a terminal.
type Terminal struct {
	reader *bufio.Reader
	out    io.Writer

	fd           int
	isTerminal   func(fd int) bool
	readPassword func(fd int) ([]byte, error)
}

var _ ports.Prompter = (*Terminal)(nil)

// New builds a prompter over arbitrary streams. Secrets are read as plain
// lines unless in is an *os.File attached to a terminal.
func New(in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{
		reader:       bufio.NewReader(in),
		out:          out,
		fd:           -1,
		isTerminal:   term.IsTerminal,
		readPassword: term.ReadPassword,
	}
	if f, ok := in.(*os.File); ok {
		t.fd = int(f.Fd())
	}
	return t
}

func (t *Terminal) Ask(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(t.out, label)
	return t.readLine()
}

func (t *Terminal) AskSecret(ctx context.Context, label string) (domain.Secret, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(t.out, label)

	if t.fd >= 0 && t.isTerminal(t.fd) {
		b, err := t.readPassword(t.fd)
		// ReadPassword swallows the newline typed by the user.
		fmt.Fprintln(t.out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return domain.Secret(string(b)), nil
	}

	line, err := t.readLine()
	if err != nil {
		return "", err
	}
	return domain.Secret(line), nil
}

// ReadSecret reads one line from r as a secret, for --password-stdin.
func ReadSecret(r io.Reader) (domain.Secret, error) {
	line, err := New(r, io.Discard).readLine()
	if err != nil {
		return "", fmt.Errorf("read password from stdin: %w", err)
	}
	return domain.Secret(line), nil
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
