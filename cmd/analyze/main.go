// Command analyze prints quick, human-readable statistics about a chat
// history database. It summarizes message volume per room, the most active
// senders, and the busiest hours of the day.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// RoomStat is one room's share of the message volume.
type RoomStat struct {
	Room     string
	Messages int
	Senders  int
}

// SenderStat is one user's share of the message volume.
type SenderStat struct {
	Username string
	Messages int
}

// HourStat is the message count for one hour of the day (0-23).
type HourStat struct {
	Hour     int
	Messages int
}

func main() {
	dbPath := flag.String("db", "chat.db", "Path to the SQLite history database")
	topN := flag.Int("top", 10, "How many senders to list")
	flag.Parse()

	db, err := sql.Open("sqlite3", *dbPath)
	if err != nil {
		fmt.Printf("Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := analyze(db, *topN); err != nil {
		fmt.Printf("Error analyzing database: %v\n", err)
		os.Exit(1)
	}
}

func analyze(db *sql.DB, topN int) error {
	total, err := totalMessages(db)
	if err != nil {
		return err
	}

	fmt.Printf("=== Chat History Analysis ===\n\n")
	fmt.Printf("Total messages: %d\n", total)
	if total == 0 {
		fmt.Println("Nothing else to report.")
		return nil
	}

	rooms, err := roomStats(db)
	if err != nil {
		return err
	}
	fmt.Printf("\nMessages per room (%d rooms):\n", len(rooms))
	for _, r := range rooms {
		fmt.Printf("  %-24s %6d messages, %d senders\n", r.Room, r.Messages, r.Senders)
	}

	senders, err := topSenders(db, topN)
	if err != nil {
		return err
	}
	fmt.Printf("\nTop senders:\n")
	for i, s := range senders {
		fmt.Printf("  %2d. %-20s %6d messages\n", i+1, s.Username, s.Messages)
	}

	hours, err := busiestHours(db)
	if err != nil {
		return err
	}
	fmt.Printf("\nBusiest hours (UTC):\n")
	for _, h := range hours {
		fmt.Printf("  %02d:00  %6d messages\n", h.Hour, h.Messages)
	}

	return nil
}

func totalMessages(db *sql.DB) (int, error) {
	var total int
	if err := db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return total, nil
}

func roomStats(db *sql.DB) ([]RoomStat, error) {
	rows, err := db.Query(`
		SELECT room, COUNT(*), COUNT(DISTINCT username)
		FROM messages
		GROUP BY room
		ORDER BY COUNT(*) DESC, room
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query room stats: %w", err)
	}
	defer rows.Close()

	var stats []RoomStat
	for rows.Next() {
		var s RoomStat
		if err := rows.Scan(&s.Room, &s.Messages, &s.Senders); err != nil {
			return nil, fmt.Errorf("failed to scan room stat: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func topSenders(db *sql.DB, limit int) ([]SenderStat, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.Query(`
		SELECT username, COUNT(*)
		FROM messages
		GROUP BY username
		ORDER BY COUNT(*) DESC, username
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top senders: %w", err)
	}
	defer rows.Close()

	var stats []SenderStat
	for rows.Next() {
		var s SenderStat
		if err := rows.Scan(&s.Username, &s.Messages); err != nil {
			return nil, fmt.Errorf("failed to scan sender stat: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func busiestHours(db *sql.DB) ([]HourStat, error) {
	rows, err := db.Query(`
		SELECT CAST(strftime('%H', created_at) AS INTEGER) AS hour, COUNT(*)
		FROM messages
		GROUP BY hour
		ORDER BY COUNT(*) DESC, hour
		LIMIT 5
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query busiest hours: %w", err)
	}
	defer rows.Close()

	var stats []HourStat
	for rows.Next() {
		var h HourStat
		if err := rows.Scan(&h.Hour, &h.Messages); err != nil {
			return nil, fmt.Errorf("failed to scan hour stat: %w", err)
		}
		stats = append(stats, h)
	}
	return stats, rows.Err()
}
