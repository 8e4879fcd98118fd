// Command validate provides a small CLI that validates server configuration
// JSON files. It checks:
//   - JSON structure
//   - Port range and listen address
//   - Default room name against the room-name length cap
//   - Backlog, message, and room-name limits
//   - Token settings, warning when the built-in development secret is used
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikhilkumar118/Real-Time-Chat-Application/chat/config"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Notes contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File  string
	Valid bool
	Notes []string
}

// validateConfigFile loads and validates a single configuration JSON file.
// Unknown settings fall back to defaults the same way the server loads them.
func validateConfigFile(filePath string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
		Notes: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Notes = append(result.Notes, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	cfg := config.Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		result.Valid = false
		result.Notes = append(result.Notes, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := config.Validate(cfg); err != nil {
		result.Valid = false
		// Unwrap the joined problem list into one note per problem.
		msg := err.Error()
		if idx := strings.Index(msg, ": "); idx >= 0 {
			msg = msg[idx+2:]
		}
		for _, problem := range strings.Split(msg, "; ") {
			result.Notes = append(result.Notes, problem)
		}
		return result
	}

	// Informational output for valid configs.
	result.Notes = append(result.Notes, fmt.Sprintf("Listen address: %s", cfg.Addr()))
	result.Notes = append(result.Notes, fmt.Sprintf("Database: %s", cfg.DatabasePath))
	result.Notes = append(result.Notes, fmt.Sprintf("Default room: %s", cfg.DefaultRoom))
	result.Notes = append(result.Notes, fmt.Sprintf("Backlog limit: %d messages", cfg.BacklogLimit))
	result.Notes = append(result.Notes, fmt.Sprintf("Message cap: %d chars, room name cap: %d chars", cfg.MaxMessageLength, cfg.MaxRoomNameLength))
	result.Notes = append(result.Notes, fmt.Sprintf("Token TTL: %d minutes", cfg.TokenTTLMin))

	if cfg.JWTSecret == config.Default().JWTSecret {
		result.Notes = append(result.Notes, "WARNING: jwt_secret is the built-in development value; set CHAT_JWT_SECRET in production")
	}

	return result
}

// main validates the JSON files named on the command line, or every *.json
// file in -dir when no files are given, and exits non-zero if any is invalid.
func main() {
	dir := flag.String("dir", ".", "Directory to scan for *.json config files when no files are given")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		matches, err := filepath.Glob(filepath.Join(*dir, "*.json"))
		if err != nil {
			fmt.Printf("Error finding config files: %v\n", err)
			os.Exit(1)
		}
		files = matches
	}

	if len(files) == 0 {
		fmt.Println("No config files to validate")
		return
	}

	allValid := true
	for _, file := range files {
		result := validateConfigFile(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("VALID")
			for _, note := range result.Notes {
				fmt.Println("  " + note)
			}
		} else {
			fmt.Println("INVALID")
			allValid = false
			for _, note := range result.Notes {
				fmt.Println("  - " + note)
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("All configurations are valid")
	} else {
		fmt.Println("Some configurations have errors")
		os.Exit(1)
	}
}
