package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
)

// errInterrupted is returned by a lineReader when the user aborts the
// pending line with Ctrl-C. The session drops the input and re-prompts.
var errInterrupted = errors.New("interrupted")

// lineReader is the session's input device. ReadLine returns io.EOF when
// input is exhausted and errInterrupted when the user aborts a line.
type lineReader interface {
	ReadLine(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

// linerReader is the built-in line editor, used when the shell runs on a
// terminal and no external wrapper took over. History is seeded from and
// saved back to the on-disk store when one is attached.
type linerReader struct {
	state *liner.State
	hist  *History
}

func newLinerReader(hist *History) *linerReader {
	st := liner.NewLiner()
	st.SetCtrlCAborts(true)
	if hist != nil {
		for _, e := range hist.Entries() {
			st.AppendHistory(e.Text)
		}
	}
	return &linerReader{state: st, hist: hist}
}

func (r *linerReader) ReadLine(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", errInterrupted
	}
	if err != nil {
		return "", err
	}
	return line, nil
}

func (r *linerReader) AppendHistory(line string) {
	r.state.AppendHistory(line)
	if r.hist != nil {
		r.hist.Append(line)
	}
}

// Close restores the terminal and flushes the history store.
func (r *linerReader) Close() error {
	err := r.state.Close()
	if r.hist != nil {
		if saveErr := r.hist.Save(); saveErr != nil && err == nil {
			err = saveErr
		}
	}
	return err
}

// plainReader reads lines without any editing. It serves piped input and
// sessions where an external wrapper such as rlwrap owns the editing; the
// prompt is still printed so the wrapper (or the transcript) shows it.
type plainReader struct {
	in  *bufio.Reader
	out io.Writer
}

func newPlainReader(in io.Reader, out io.Writer) *plainReader {
	return &plainReader{in: bufio.NewReader(in), out: out}
}

func (r *plainReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	line, err := r.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			// final line without a trailing newline still counts
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (r *plainReader) AppendHistory(string) {}

func (r *plainReader) Close() error { return nil }
