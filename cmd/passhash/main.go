// Command passhash derives and checks stored credentials in the format the
// server accepts for APP_LOGIN_PASSWORD_HASH.
//
//	passhash hash [-iterations N] <password>
//	passhash verify <password> <stored>
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/MKhiriev/go-secure-api/internal/crypto"
	"github.com/MKhiriev/go-secure-api/internal/logger"
)

const usage = `usage:
  passhash hash [-iterations N] <password>
  passhash verify <password> <stored>`

var errUsage = errors.New(usage)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code: 0 on success, 1 when verification
// fails and 2 on usage or hashing errors.
func run(args []string, stdout, stderr io.Writer) int {
	log := logger.NewConsole(stderr, "passhash")

	if len(args) == 0 {
		fmt.Fprintln(stderr, usage)
		return 2
	}

	switch args[0] {
	case "hash":
		stored, err := hash(args[1:])
		if err != nil {
			log.Error().Err(err).Msg("hashing failed")
			return 2
		}
		fmt.Fprintln(stdout, stored)
		return 0
	case "verify":
		if len(args) != 3 {
			fmt.Fprintln(stderr, usage)
			return 2
		}
		if !crypto.NewPasswordHasher(0).Verify(args[1], args[2]) {
			fmt.Fprintln(stdout, "mismatch")
			return 1
		}
		fmt.Fprintln(stdout, "match")
		return 0
	default:
		fmt.Fprintln(stderr, usage)
		return 2
	}
}

func hash(args []string) (string, error) {
	fs := flag.NewFlagSet("hash", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	iterations := fs.Int("iterations", crypto.DefaultIterations, "PBKDF2 iteration count")
	if err := fs.Parse(args); err != nil {
		return "", fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() != 1 {
		return "", errUsage
	}

	return crypto.NewPasswordHasher(*iterations).Hash(fs.Arg(0), *iterations)
}
