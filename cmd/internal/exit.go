package internal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// stderr is a test seam; both CLIs report through it.
var stderr io.Writer = os.Stderr

var failColor = color.New(color.FgRed)

// Fatal will Echo the message and os.Exit with code 1.
func Fatal(msg string, args ...any) {
	Echo(msg, args...)
	os.Exit(1)
}

// Fail is Fatal with the message rendered in the shared failure color.
func Fail(msg string, args ...any) {
	Fatal("%s", failf(msg, args...))
}

// Echo will emit the given message to stderr without any logging formatting.
// A trailing newline is added when the message lacks one.
func Echo(msg string, args ...any) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	_, _ = fmt.Fprintf(stderr, msg, args...)
}

func failf(msg string, args ...any) string {
	return failColor.Sprintf(msg, args...)
}
