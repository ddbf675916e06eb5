// Command authctl performs operator tasks against the account database:
// provisioning admins, wiping all records, and running a housekeeping pass.
//
//	authctl create-admin [-name NAME] [-email EMAIL]
//	authctl reset-db [-force]
//	authctl sweep
//
// It reads the same environment (and .env file) as the service.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/tracehealth/trace/internal/auth/app"
	"github.com/tracehealth/trace/pkg/slogx"
)

const usage = `usage: authctl <command> [flags]

commands:
  create-admin   create an administrator account
  reset-db       delete every user, admin, pending signup and reset request
  sweep          delete expired pending signups and reset requests
`

var errUsage = errors.New("invalid usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errUsage
	}

	in := bufio.NewReader(stdin)
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "create-admin":
		return createAdmin(ctx, rest, in, stdout)
	case "reset-db":
		return resetDB(ctx, rest, in, stdout)
	case "sweep":
		return sweep(ctx, rest, stdout)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		return errUsage
	}
}

// openApp builds the application from the environment with logs on stderr.
func openApp() (*app.Application, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := slogx.New(slogx.Config{
		Service: "authctl",
		Version: app.BuildVersion,
		Env:     cfg.Env,
		Level:   "warn",
		Format:  "text",
		Output:  os.Stderr,
	})
	return app.New(cfg, app.WithLogger(logger))
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}
