package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"golang.org/x/term"

	"github.com/financialos/FinancialOS/internal/auth"
	"github.com/financialos/FinancialOS/internal/storage"
)

var cli struct {
	User     string `required:"" help:"Username for the new account."`
	Password string `help:"Password (prompted for when omitted)."`
	Email    string `help:"Optional email address."`
	Backend  string `default:"sqlite" enum:"sqlite,jsonfile,memory" help:"Storage backend."`
	Path     string `help:"Storage file path (defaults per backend)."`
}

func main() {
	ctx := kong.Parse(&cli)
	ctx.FatalIfErrorf(run(os.Stdin, os.Stdout))
}

func run(stdin io.Reader, stdout io.Writer) error {
	password := cli.Password
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password cannot be empty")
	}

	backend, err := openBackend()
	if err != nil {
		return fmt.Errorf("failed to open storage backend: %w", err)
	}

	store, err := storage.NewStore(backend)
	if err != nil {
		return fmt.Errorf("failed to load record store: %w", err)
	}
	defer store.Close()

	// The JWT manager is only exercised at login; any secret satisfies
	// registration.
	authService := auth.NewService(store, auth.NewJWTManagerWithSecret("adduser"))
	user, err := authService.Register(cli.User, password, cli.Email)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s created successfully with ID %s\n", user.Username, user.ID)
	return nil
}

func openBackend() (storage.Backend, error) {
	path := cli.Path
	switch cli.Backend {
	case "sqlite":
		if path == "" {
			path = "financialos.db"
		}
		return storage.NewSQLiteBackend(path)
	case "jsonfile":
		if path == "" {
			path = "financialos.json"
		}
		return storage.NewJSONFileBackend(path)
	default:
		return storage.NewMemoryBackend(), nil
	}
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
