package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tracehealth/trace/internal/auth/domain"
	"github.com/tracehealth/trace/internal/auth/service"
)

func createAdmin(ctx context.Context, args []string, in *bufio.Reader, out io.Writer) error {
	fs := newFlagSet("create-admin")
	name := fs.String("name", "", "full name (prompted if empty)")
	email := fs.String("email", "", "email address (prompted if empty)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	var err error
	if *name == "" {
		if *name, err = prompt(in, out, "Full name: "); err != nil {
			return err
		}
	}
	if *email == "" {
		if *email, err = prompt(in, out, "Email: "); err != nil {
			return err
		}
	}
	password, err := promptSecret(in, out, "Password: ")
	if err != nil {
		return err
	}
	confirm, err := promptSecret(in, out, "Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}

	application, err := openApp()
	if err != nil {
		return err
	}
	defer application.Close()

	admin, err := application.Provisioner().CreateAdmin(ctx, service.AdminInput{
		FullName: *name,
		Email:    *email,
		Password: password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return fmt.Errorf("%s is already registered", domain.NormalizeEmail(*email))
		}
		return err
	}

	fmt.Fprintf(out, "created admin %s (%s)\n", admin.Email, admin.ID)
	return nil
}

func resetDB(ctx context.Context, args []string, in *bufio.Reader, out io.Writer) error {
	fs := newFlagSet("reset-db")
	force := fs.Bool("force", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	if !*force {
		fmt.Fprintln(out, "This deletes every user, admin, pending signup and password reset request.")
		answer, err := prompt(in, out, "Type DELETE to confirm: ")
		if err != nil {
			return err
		}
		if answer != "DELETE" {
			fmt.Fprintln(out, "aborted")
			return nil
		}
	}

	application, err := openApp()
	if err != nil {
		return err
	}
	defer application.Close()

	if err := application.Store().Purge(ctx); err != nil {
		return fmt.Errorf("purge: %w", err)
	}

	fmt.Fprintln(out, "database reset")
	return nil
}

func sweep(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("sweep")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	application, err := openApp()
	if err != nil {
		return err
	}
	defer application.Close()

	res := application.Housekeeping().Sweep(ctx)
	fmt.Fprintf(out, "removed %d pending signups and %d password reset requests\n",
		res.PendingSignups, res.PasswordResets)
	return nil
}

// prompt writes label and reads one trimmed line.
func prompt(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	return readLine(in)
}

func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
