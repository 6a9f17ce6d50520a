package main

import (
	"fmt"
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/cj4mm/encryptest/cmd/internal"
	"github.com/cj4mm/encryptest/internal/logging"
	"github.com/cj4mm/encryptest/pkg/chatlog"
)

func main() {
	var (
		helpFlag  bool
		logPath   string
		name      string
		debugPath string
	)
	flags := flag.NewFlagSet("chat", flag.ContinueOnError)
	flags.BoolVarP(&helpFlag, "help", "h", false, "Prints this usage information.")
	flags.StringVarP(&logPath, "log", "l", "chat.log", "Path of the shared chat log file.")
	flags.StringVarP(&name, "name", "n", defaultName(), "Sender name attached to your messages.")
	flags.StringVar(&debugPath, "debug-log", "", "Write JSON diagnostics to this file. Discarded when omitted.")
	flags.Usage = func() {
		fmt.Printf(`
chat is a terminal client for a shared append-only chat log. Messages are either plain text or screened with a password-derived repeating XOR key; encrypted entries stay base64 until you decrypt them with the password.

USAGE:  chat [FLAGS]

Inside the client:
    <text>       append <text> to the log in the clear
    /e <text>    prompt for a password, append <text> encrypted
    /d <id>      prompt for a password, decrypt the entry with that id prefix
    /quit        leave

FLAGS:
%s
SECURITY:
    This is not encryption, this is obfuscation, and they are very different things!
Anything appended to the log is visible to everyone who can read the log file; "encrypted" entries only resist casual observation.
A wrong password can decrypt to plausible garbage without any error; nothing in the scheme can tell the difference.
`, flags.FlagUsages())
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		flags.Usage()
		internal.Fatal("Error parsing flags: %v", err)
	}
	if helpFlag {
		flags.Usage()
		return
	}

	logger, closeLog, err := newLogger(debugPath)
	if err != nil {
		internal.Fatal("Failed to open debug log: %v", err)
	}
	defer closeLog()

	store, err := chatlog.OpenFileStore(logPath, logger)
	if err != nil {
		internal.Fatal("Failed to open chat log %s: %v", logPath, err)
	}
	defer func() { _ = store.Close() }()

	if err := newChatApp(store, name, logger).run(); err != nil {
		internal.Fatal("%v", err)
	}
}

func defaultName() string {
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "anonymous"
}

func newLogger(path string) (logging.Logger, func(), error) {
	if path == "" {
		return logging.NewNopLogger(), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o600)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(f, nil)))
	return logger, func() { _ = f.Close() }, nil
}
