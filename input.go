package main

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"
	"strings"

	"github.com/horgh/catchat/internal/queue"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// errInputAborted means the person asked to quit at the prompt.
var errInputAborted = errors.New("input aborted")

// lineReader reads lines of chat from a person.
type lineReader interface {
	ReadLine() (string, error)
	Close() error
}

// newLineReader reads from the terminal with line editing and history if
// stdin is one, and plain lines otherwise.
func newLineReader(prompt string) lineReader {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return &plainReader{scanner: bufio.NewScanner(os.Stdin)}
	}

	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return &terminalReader{state: state, prompt: prompt}
}

type terminalReader struct {
	state  *liner.State
	prompt string
}

func (r *terminalReader) ReadLine() (string, error) {
	line, err := r.state.Prompt(r.prompt)
	if err != nil {
		if err == liner.ErrPromptAborted {
			return "", errInputAborted
		}
		return "", err
	}

	if strings.TrimSpace(line) != "" {
		r.state.AppendHistory(line)
	}
	return line, nil
}

func (r *terminalReader) Close() error {
	return r.state.Close()
}

type plainReader struct {
	scanner *bufio.Scanner
}

func (r *plainReader) ReadLine() (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

func (r *plainReader) Close() error { return nil }

// readInput sends each line read to outbound until input ends, outbound stops
// taking lines, or ctx is done.
//
// The end of input is not an error. An abort at the prompt returns
// errInputAborted.
func readInput(
	ctx context.Context,
	r lineReader,
	outbound *queue.Queue[string],
) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := r.ReadLine()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			if err == errInputAborted {
				return err
			}
			return errors.Wrap(err, "error reading input")
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := outbound.Send(line); err != nil {
			return err
		}
	}
}

// inputLoop reads chat until input stops. Only an abort ends the session.
// When input simply runs out we stay connected.
func inputLoop(
	ctx context.Context,
	r lineReader,
	outbound *queue.Queue[string],
	cancel context.CancelFunc,
) {
	err := readInput(ctx, r, outbound)
	switch err {
	case nil:
		log.Printf("End of input. Staying connected.")
	case errInputAborted:
		cancel()
	case queue.ErrDeliveryFailed, context.Canceled:
	default:
		log.Printf("%s", err)
	}
}
