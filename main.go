package main

import (
	"flag"
	"fmt"
	"os"

	"libris/internal/cli"
	"libris/internal/config"
	"libris/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// If no arguments or a serve command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "run" || os.Args[1] == "serve" {
		var args []string
		if len(os.Args) >= 2 {
			args = os.Args[2:]
		}
		runServer(args)
		return
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "init-db":
		cmd := cli.NewInitDBCommand()
		if err := cmd.ParseFlags(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "seed":
		cmd := cli.NewSeedCommand()
		if err := cmd.ParseFlags(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "create-user":
		cmd := cli.NewCreateUserCommand()
		if err := cmd.ParseFlags(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// runServer starts the HTTP server, with optional host/port flag
// overrides on top of the environment configuration.
func runServer(args []string) {
	cfg := config.NewConfig()

	fs := flag.NewFlagSet("run", flag.ExitOnError)
	host := fs.String("host", cfg.HTTP.Host, "Host interface to bind")
	port := fs.Int("port", int(cfg.HTTP.Port), "Port to listen on")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.HTTP.Host = *host
	cfg.HTTP.Port = int32(*port)

	entrypoint.Run(cfg, Version)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  run          Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  init-db      Create the database schema\n")
	fmt.Fprintf(os.Stderr, "  seed         Create the database and insert sample data\n")
	fmt.Fprintf(os.Stderr, "  create-user  Create a user account for the web interface\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
