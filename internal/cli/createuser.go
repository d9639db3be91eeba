package cli

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"libris/internal/auth"
	"libris/internal/config"
	"libris/internal/database"
)

// CreateUserCommand inserts a user with a hashed password, prompting
// interactively for any missing credential.
type CreateUserCommand struct {
	DatabasePath string
	Username     string
	Password     string
	Admin        bool
}

func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{}
}

// ParseFlags parses command line flags.
func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the sqlite database file")
	fs.StringVar(&cmd.Username, "username", "", "Username for the new account")
	fs.StringVar(&cmd.Password, "password", "", "Password (prompted interactively when omitted)")
	fs.BoolVar(&cmd.Admin, "admin", false, "Grant the account the admin flag")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a user account for the web interface.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s create-user -username alex\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s create-user -username alex -admin\n", os.Args[0])
	}

	return fs.Parse(args)
}

// readPassword reads a password from the terminal without echo.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(bytePassword)), nil
}

// promptMissing fills in username and password interactively when
// they were not supplied as flags.
func (cmd *CreateUserCommand) promptMissing() error {
	if cmd.Username == "" {
		fmt.Print("Username: ")
		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			return fmt.Errorf("failed to read username: %w", scanner.Err())
		}
		cmd.Username = strings.TrimSpace(scanner.Text())
	}

	if cmd.Password == "" {
		password, err := readPassword("Password: ")
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		confirm, err := readPassword("Confirm password: ")
		if err != nil {
			return fmt.Errorf("failed to read password confirmation: %w", err)
		}
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}
		cmd.Password = password
	}

	return nil
}

// Run executes the create-user command.
func (cmd *CreateUserCommand) Run() error {
	if err := cmd.promptMissing(); err != nil {
		return err
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	cfg := config.NewConfig()
	service := auth.NewService(db.DB, cfg.Auth)

	user, err := service.CreateUser(cmd.Username, cmd.Password, cmd.Admin)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	role := "user"
	if user.IsAdmin {
		role = "admin"
	}
	fmt.Printf("Created %s %q (id %d)\n", role, user.Username, user.ID)
	return nil
}
