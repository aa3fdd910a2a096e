// Command client drives every endpoint of a running server once and reports
// what each returned. It exits non-zero when any step deviates from the
// expected behaviour.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/go-secure-api/internal/adapter"
	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	address := flag.String("a", "localhost:3000", "server address")
	username := flag.String("u", "admin", "login username")
	password := flag.String("p", "password123", "login password")
	timeout := flag.Duration("t", 10*time.Second, "request timeout")
	flag.Parse()

	log := logger.NewConsole(os.Stderr, "go-secure-client")

	serverAdapter, err := adapter.NewHTTPServerAdapter(*address, *timeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	if err = smoke(context.Background(), serverAdapter, models.Credentials{Username: *username, Password: *password}, log); err != nil {
		log.Fatal().Err(err).Msg("smoke test failed")
	}
	log.Info().Msg("all checks passed")
}

// smoke runs the checks in order and stops at the first failure.
func smoke(ctx context.Context, a adapter.ServerAdapter, creds models.Credentials, log *logger.Logger) error {
	steps := []struct {
		name string
		run  func() (string, error)
		want error
	}{
		{"root", func() (string, error) { return a.Root(ctx) }, nil},
		{"version", func() (string, error) { return a.Version(ctx) }, nil},
		{"dummy-get", func() (string, error) { return a.DummyGet(ctx) }, nil},
		{"dummy-post without token", func() (string, error) { return a.DummyPost(ctx, map[string]string{"a": "b"}) }, adapter.ErrUnauthorized},
		{"login", func() (string, error) { return a.Login(ctx, creds) }, nil},
		{"dummy-post", func() (string, error) {
			return a.DummyPost(ctx, map[string]string{"name": "bob", "password": "not-logged"})
		}, nil},
		{"dummy-post injection", func() (string, error) { return a.DummyPost(ctx, map[string]string{"q": "1; DROP TABLE users"}) }, adapter.ErrRejected},
		{"dummy-delete", func() (string, error) { return a.DummyDelete(ctx, "42") }, nil},
		{"dummy-delete invalid id", func() (string, error) { return a.DummyDelete(ctx, "abc") }, adapter.ErrBadRequest},
	}

	for _, step := range steps {
		out, err := step.run()
		switch {
		case step.want == nil && err != nil:
			return fmt.Errorf("%s: %w", step.name, err)
		case step.want != nil && !errors.Is(err, step.want):
			return fmt.Errorf("%s: expected %v, got %v", step.name, step.want, err)
		}

		event := log.Info().Str("step", step.name)
		if err != nil {
			event = event.AnErr("expected", err)
		}
		event.Msg(out)
	}

	return nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
