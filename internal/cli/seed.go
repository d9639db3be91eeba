package cli

import (
	"flag"
	"fmt"
	"os"

	"libris/internal/config"
	"libris/internal/database"
)

// SeedCommand creates the schema and inserts illustrative sample data.
type SeedCommand struct {
	DatabasePath string
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{}
}

// ParseFlags parses command line flags.
func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the sqlite database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create the database and populate it with sample authors, books and quotes.\n")
		fmt.Fprintf(os.Stderr, "Refuses to run if the database file already exists.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the seed command. An existing database file is left
// untouched.
func (cmd *SeedCommand) Run() error {
	if _, err := os.Stat(cmd.DatabasePath); err == nil {
		return fmt.Errorf("%s already exists; delete it first for a fresh seeded database", cmd.DatabasePath)
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.Seed(); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	fmt.Printf("Database created and populated with sample data at %s\n", cmd.DatabasePath)
	return nil
}
