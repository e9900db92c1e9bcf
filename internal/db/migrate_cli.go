package db

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

// RunMigrateCommand handles the 'migrate' subcommand dispatching
func RunMigrateCommand(args []string, dbPath string) {
	if len(args) < 1 {
		PrintMigrateHelp()
		os.Exit(1)
	}

	action := args[0]

	// Open database connection without running schema initialization
	// (migrations will manage the schema)
	database, err := OpenDB(dbPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	switch action {
	case "up":
		if err := database.MigrateUp(); err != nil {
			log.Fatalf("Migration up failed: %v", err)
		}
		log.Print("Migrations applied")

	case "down":
		if err := database.MigrateDown(); err != nil {
			log.Fatalf("Migration down failed: %v", err)
		}
		log.Print("Rolled back one migration")

	case "status":
		version, dirty, err := database.MigrateVersion()
		if err != nil {
			log.Fatalf("Failed to read migration status: %v", err)
		}
		log.Printf("Migration version: %d (dirty: %v)", version, dirty)

	case "version":
		if len(args) < 2 {
			log.Fatal("Usage: flightplanning migrate version <version_number>")
		}
		v, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			log.Fatalf("Invalid version number %q: %v", args[1], err)
		}
		if err := database.MigrateTo(uint(v)); err != nil {
			log.Fatalf("Migration to version %d failed: %v", v, err)
		}
		log.Printf("Migrated to version %d", v)

	case "force":
		if len(args) < 2 {
			log.Fatal("Usage: flightplanning migrate force <version_number>")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatalf("Invalid version number %q: %v", args[1], err)
		}
		if err := database.MigrateForce(v); err != nil {
			log.Fatalf("Force migration to version %d failed: %v", v, err)
		}
		log.Printf("Forced migration version to %d", v)

	default:
		PrintMigrateHelp()
		os.Exit(1)
	}
}

// PrintMigrateHelp prints usage for the migrate subcommand.
func PrintMigrateHelp() {
	fmt.Fprintln(os.Stderr, `Usage: flightplanning migrate <command>

Commands:
  up                  apply all pending migrations
  down                roll back the most recent migration
  status              show current migration version
  version <number>    migrate up or down to a specific version
  force <number>      force the version (recover from dirty state)`)
}
