// Package cli implements the maintenance commands: database
// bootstrap, sample-data seeding and user creation.
package cli

import (
	"flag"
	"fmt"
	"os"

	"libris/internal/config"
	"libris/internal/database"
)

// InitDBCommand creates the database schema.
type InitDBCommand struct {
	DatabasePath string
}

func NewInitDBCommand() *InitDBCommand {
	return &InitDBCommand{}
}

// ParseFlags parses command line flags.
func (cmd *InitDBCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("init-db", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the sqlite database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s init-db [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create the database schema. Safe to run repeatedly.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the init-db command.
func (cmd *InitDBCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	fmt.Printf("Database schema created at %s\n", cmd.DatabasePath)
	return nil
}
