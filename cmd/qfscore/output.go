package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/qfscore/internal/schema"
)

// Exit codes.
const (
	exitThreshold = 2
	exitInput     = 3
)

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func exitError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

func invalidInput(errs []schema.ValidationError) error {
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		lines = append(lines, "  "+e.Error())
	}
	return exitError(exitInput, "invalid input:\n%s", strings.Join(lines, "\n"))
}

// newLogger returns a development logger on stderr when verbose is set.
func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func encodeJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal output: %w", err)
	}
	return string(data) + "\n", nil
}

// writeOutput writes to path when set, otherwise to w.
func writeOutput(w io.Writer, path, output string) error {
	if path != "" {
		if err := os.WriteFile(path, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	_, err := io.WriteString(w, output)
	return err
}
