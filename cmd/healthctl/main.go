// healthctl is a command-line client for the HealthTrack API. It keeps a
// persistent session under the user's home directory, so a login survives
// across invocations the same way the web and mobile clients do.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"healthtrack/pkg/session"
)

const defaultAPI = "http://localhost:8080"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "healthctl:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		usage()
		return fmt.Errorf("missing command")
	}

	manager, err := newManager()
	if err != nil {
		return err
	}
	// Load any session persisted by a previous invocation; without this,
	// logout has no token to revoke server-side.
	manager.Restore()
	ctx := context.Background()

	switch args[0] {
	case "login":
		return login(ctx, manager, args[1:])
	case "register":
		return register(ctx, manager, args[1:])
	case "logout":
		manager.Logout(ctx)
		fmt.Println("Logged out.")
		return nil
	case "whoami":
		return whoami(manager)
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func newManager() (*session.Manager, error) {
	base := os.Getenv("HEALTHTRACK_API")
	if base == "" {
		base = defaultAPI
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home dir: %w", err)
	}
	store := session.NewFileStore(filepath.Join(home, ".healthtrack", "session.json"))
	return session.NewManager(base, store), nil
}

func login(ctx context.Context, manager *session.Manager, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	role := fs.String("role", "PATIENT", "PATIENT or DOCTOR")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sess, err := manager.Login(ctx, *email, *password, session.Role(*role))
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (%s).\n", sess.User.Name, sess.User.Role)
	return nil
}

func register(ctx context.Context, manager *session.Manager, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	phone := fs.String("phone", "", "phone number")
	role := fs.String("role", "PATIENT", "PATIENT or DOCTOR")
	birthday := fs.String("birthday", "", "birth date yyyy-mm-dd (patients)")
	specialization := fs.Int64("specialization", 0, "specialization id (doctors)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sess, err := manager.Register(ctx, session.RegistrationData{
		Name:             *name,
		Email:            *email,
		Password:         *password,
		PhoneNumber:      *phone,
		Role:             session.Role(*role),
		Birthday:         *birthday,
		SpecializationID: *specialization,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Registered %s (%s).\n", sess.User.Email, sess.User.Role)
	return nil
}

func whoami(manager *session.Manager) error {
	sess := manager.Current()
	if !sess.IsAuthenticated() {
		fmt.Println("Not logged in.")
		return nil
	}
	u := sess.User
	fmt.Printf("%s <%s> (%s)\n", u.Name, u.Email, u.Role)
	if u.Specialization != nil {
		fmt.Println("Specialization:", u.Specialization.Name)
	}
	if u.Birthday != nil {
		fmt.Println("Birthday:", *u.Birthday)
	}
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: healthctl <command> [flags]

commands:
  login      -email -password [-role]
  register   -name -email -password -phone [-role] [-birthday] [-specialization]
  logout
  whoami

The API base URL is taken from HEALTHTRACK_API (default `+defaultAPI+`).`)
}
