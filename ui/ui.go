package ui

import (
	"encoding/json"
	"errors"
	"io"
)

// ErrNoInput is returned by Ask when the input ends before an answer
// passed validation.
var ErrNoInput = errors.New("no valid input before end of input")

// Severity classifies the visual weight of a piece of inline text.
type Severity uint8

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarn
	SeverityError
	SeverityCritical
)

// StyledText pairs a plain string with a Severity. It marshals to JSON as
// the plain string so list commands can dump it without ANSI codes.
type StyledText struct {
	Text     string
	Severity Severity
}

func (s StyledText) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Text)
}

func Yes(text string) StyledText  { return StyledText{Text: text, Severity: SeveritySuccess} }
func No(text string) StyledText   { return StyledText{Text: text, Severity: SeverityError} }
func Bold(text string) StyledText { return StyledText{Text: text, Severity: SeverityCritical} }

// UI is every terminal interaction a command performs.
//
// TerminalUI writes to stdout and reads stdin. RecordingUI captures output
// and serves scripted input for tests. Commands never print directly.
type UI interface {
	// Style colours t by its Severity; plain text when colours are off.
	Style(t StyledText) string

	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	// Error prints a failure. It does not exit.
	Error(format string, args ...any)
	// Critical is for data the user must review before signing, and for
	// proof of what was just broadcast.
	Critical(format string, args ...any)

	// Section prints a separator line centred around title.
	Section(title string)
	// KeyValue prints label/value rows with aligned values.
	KeyValue(rows [][2]string)
	// Table prints a bordered table. Headers may be empty.
	Table(headers []string, rows [][]string)

	// Spinner shows msg while work is in flight. Call the returned func to
	// clear it.
	Spinner(msg string) func()

	// Interpret shows, under the input line, how the last input was read.
	Interpret(value string)

	// Ask prints a "> " prompt and loops until validate accepts the line.
	// A nil validate accepts anything. Once the input is exhausted the last
	// partial line is still validated, and ErrNoInput is returned if it
	// does not pass.
	Ask(validate func(string) error) (string, error)
	// AskSecret reads a line without echoing it.
	AskSecret(prompt string) string
	// Confirm answers false when the input is exhausted.
	Confirm(prompt string, defaultYes bool) bool
	// Choose returns the 0-based index of the chosen option, or -1 when the
	// input is exhausted.
	Choose(prompt string, options []string) int

	// Indent returns a child UI one level deeper sharing the same streams.
	Indent() UI
	// Writer prefixes every written line with the current indentation.
	Writer() io.Writer
}
