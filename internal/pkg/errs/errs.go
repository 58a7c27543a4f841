package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

// Mark attaches markErr so that both errors.Is and Is report a match.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return marked{cr.Mark(err, markErr)}
}

type marked struct {
	error
}

func (m marked) Unwrap() error {
	return m.error
}

func (m marked) Is(target error) bool {
	return cr.Is(m.error, target)
}

func (m marked) Format(s fmt.State, verb rune) {
	cr.FormatError(m.error, s, verb)
}

// Is also matches marks attached with Mark.
func Is(err, reference error) bool {
	return cr.Is(err, reference)
}

func As(err error, target any) bool {
	return cr.As(err, target)
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
