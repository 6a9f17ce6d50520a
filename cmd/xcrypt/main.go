package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"

	"github.com/cj4mm/encryptest/cmd/internal"
	"github.com/cj4mm/encryptest/pkg/keystream"
	"github.com/cj4mm/encryptest/pkg/msgcrypt"
)

var warnColor = color.New(color.FgYellow)

func main() {
	var (
		helpFlag     bool
		decryptFlag  bool
		schemeFlag   string
		passwordFlag string
		saltFlag     string
		inFlag       string
		outFlag      string
		offsetFlag   int
	)
	flags := flag.NewFlagSet("xcrypt", flag.ContinueOnError)
	flags.BoolVarP(&helpFlag, "help", "h", false, "Prints this usage information.")
	flags.BoolVarP(&decryptFlag, "decrypt", "d", false, "Treat MESSAGE as base64 ciphertext and decrypt it.")
	flags.StringVarP(&schemeFlag, "scheme", "s", "sha256", "Key derivation scheme: sha256, legacy, or scrypt.")
	flags.StringVarP(&passwordFlag, "password", "p", "", "Password to derive the key from. Prompted without echo when omitted; passing it here exposes it to shell history.")
	flags.StringVar(&saltFlag, "salt", "", "Hex salt for the scrypt scheme. Generated on encrypt when omitted; required on decrypt.")
	flags.StringVarP(&inFlag, "in", "i", "", "Screen a whole file (or - for stdin) instead of a MESSAGE argument. Raw bytes, no base64; rerunning with the same password reverses it.")
	flags.StringVarP(&outFlag, "out", "o", "", "Output file for --in. Defaults to stdout.")
	flags.IntVar(&offsetFlag, "offset", 0, "Starting offset into the key for --in. The same offset is needed to reverse the result.")
	flags.Usage = func() {
		fmt.Printf(`
xcrypt screens a short message with a password-derived repeating XOR key and prints the base64 ciphertext, or reverses the process with -d.
The same password (and for scrypt, the same salt) recovers the original text. Ciphertext is standard padded base64, readable by any RFC 4648 decoder.
With --in, xcrypt instead streams a whole file through the key as raw bytes with no base64 framing; since the transform is its own inverse, the same invocation restores the original.

USAGE:  xcrypt [FLAGS] MESSAGE
        xcrypt [FLAGS] --in FILE [--out FILE]

ARGS:
    MESSAGE is the text to encrypt, or the base64 ciphertext to decrypt with -d.

FLAGS:
%s
SECURITY:
    This is not encryption, this is obfuscation, and they are very different things!
A repeating XOR key has no integrity protection and is trivially malleable, so treat the output as hidden from casual observation only.
Decryption reporting success means only that the result was valid text; a wrong password can still "succeed" and produce garbage.
The legacy scheme admits just 256 distinct keys and exists only to read data written by old versions of this tool.
`, flags.FlagUsages())
	}
	if len(os.Args) == 1 {
		flags.Usage()
		return
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		flags.Usage()
		internal.Fatal("Error parsing flags: %v", err)
	}
	if helpFlag {
		flags.Usage()
		return
	}

	scheme, err := parseScheme(schemeFlag)
	if err != nil {
		internal.Fatal("%v", err)
	}
	salt, err := parseSalt(saltFlag)
	if err != nil {
		internal.Fatal("%v", err)
	}

	password := passwordFlag
	if password == "" {
		password, err = internal.GetPassword(os.Stderr, "Enter password: ")
		if err != nil {
			internal.Fatal("Failed to read password: %v", err)
		}
	}

	if inFlag != "" {
		if flags.NArg() != 0 {
			internal.Fatal("MESSAGE and --in are mutually exclusive")
		}
		runStream(inFlag, outFlag, offsetFlag, decryptFlag, scheme, password, salt)
		return
	}
	if offsetFlag != 0 {
		internal.Fatal("--offset only applies to --in")
	}
	if flags.NArg() != 1 {
		internal.Fatal("Expected exactly one MESSAGE argument, got %d", flags.NArg())
	}

	res, err := transformText(decryptFlag, scheme, flags.Arg(0), password, salt)
	if err != nil {
		switch {
		case errors.Is(err, msgcrypt.ErrInvalidEncoding):
			internal.Fail("Input is not valid ciphertext (malformed base64).")
		case errors.Is(err, msgcrypt.ErrInvalidText):
			internal.Fail("Result is not valid text: wrong password or corrupted ciphertext.")
		default:
			internal.Fatal("%v", err)
		}
	}

	printSalt(res.salt)
	fmt.Println(res.text)
}

func runStream(inPath, outPath string, offset int, decrypt bool, scheme keystream.Scheme, password string, salt keystream.Salt) {
	var err error
	if scheme == keystream.SchemeScrypt && len(salt) == 0 {
		if decrypt {
			internal.Fatal("Decrypting an scrypt-screened stream requires --salt")
		}
		salt, err = keystream.NewSalt()
		if err != nil {
			internal.Fatal("%v", err)
		}
	}
	key, err := keystream.ForScheme(scheme, password, salt)
	if err != nil {
		internal.Fatal("%v", err)
	}

	var in io.Reader = os.Stdin
	if inPath != "-" {
		f, err := os.Open(inPath)
		if err != nil {
			internal.Fatal("Failed to open input: %v", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	var out io.Writer = os.Stdout
	if outPath != "" && outPath != "-" {
		f, err := os.Create(outPath)
		if err != nil {
			internal.Fatal("Failed to create output: %v", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				internal.Fatal("Failed to finish output: %v", err)
			}
		}()
		out = f
	}

	if scheme == keystream.SchemeScrypt {
		printSalt(salt)
	}
	if _, err := screenStream(in, out, key, offset); err != nil {
		internal.Fail("Screening failed: %v", err)
	}
}

func printSalt(salt keystream.Salt) {
	if len(salt) > 0 {
		_, _ = warnColor.Fprintf(os.Stderr, "salt: %s (store it with the ciphertext; decrypting requires it)\n", hex.EncodeToString(salt))
	}
}
