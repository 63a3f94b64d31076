package iostreams

import (
	"fmt"
	"io"
)

// IOStreams provides structured access to standard input/output/error streams
// with convenience methods for formatted output.
type IOStreams struct {
	// In is the input stream (stdin)
	In io.Reader
	// Out is the output stream (stdout)
	Out io.Writer
	// ErrOut is the error output stream (stderr)
	ErrOut io.Writer
}

// New creates an IOStreams from the given reader and writers.
func New(in io.Reader, out io.Writer, errOut io.Writer) *IOStreams {
	return &IOStreams{In: in, Out: out, ErrOut: errOut}
}

// Fprintf writes formatted output to Out with automatic newline.
// If args are provided, the format string is processed with fmt.Sprintf.
// If no args are provided, the format string is written directly.
func (s *IOStreams) Fprintf(format string, args ...any) {
	if s.Out == nil {
		return
	}

	var message string
	if len(args) > 0 {
		message = fmt.Sprintf(format, args...)
	} else {
		message = format
	}

	_, _ = fmt.Fprintln(s.Out, message)
}

// Fprintln writes output to Out with automatic newline.
func (s *IOStreams) Fprintln(args ...any) {
	if s.Out == nil {
		return
	}

	_, _ = fmt.Fprintln(s.Out, args...)
}

// Errorf writes formatted error output to ErrOut with automatic newline.
// If args are provided, the format string is processed with fmt.Sprintf.
// If no args are provided, the format string is written directly.
func (s *IOStreams) Errorf(format string, args ...any) {
	if s.ErrOut == nil {
		return
	}

	var message string
	if len(args) > 0 {
		message = fmt.Sprintf(format, args...)
	} else {
		message = format
	}

	_, _ = fmt.Fprintln(s.ErrOut, message)
}

// Errorln writes error output to ErrOut with automatic newline.
func (s *IOStreams) Errorln(args ...any) {
	if s.ErrOut == nil {
		return
	}

	_, _ = fmt.Fprintln(s.ErrOut, args...)
}
