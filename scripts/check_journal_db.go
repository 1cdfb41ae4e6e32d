//go:build ignore

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"backoffice/internal/config"

	"github.com/jackc/pgx/v5"
)

// Checks that the journal database configured in the environment is reachable and reports its contents.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, cfg.Database.ConnectionString())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	var dbName string
	if err := conn.QueryRow(ctx, "SELECT current_database()").Scan(&dbName); err != nil {
		fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully connected to database: %s\n", dbName)

	var version int64
	err = conn.QueryRow(ctx, "SELECT COALESCE(MAX(version_id), 0) FROM goose_db_version").Scan(&version)
	if err != nil {
		fmt.Println("Journal schema not migrated yet (start the server with JOURNAL_ENABLED=true)")
		return
	}
	fmt.Printf("Journal schema version: %d\n", version)

	rows, err := conn.Query(ctx, `
		SELECT succeeded, COUNT(*)
		FROM order_status_changes
		GROUP BY succeeded
		ORDER BY succeeded DESC`)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Query failed: %v\n", err)
		os.Exit(1)
	}
	defer rows.Close()

	fmt.Println("\nJournaled transitions:")
	for rows.Next() {
		var succeeded bool
		var count int64
		if err := rows.Scan(&succeeded, &count); err != nil {
			fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
			os.Exit(1)
		}
		label := "failed"
		if succeeded {
			label = "succeeded"
		}
		fmt.Printf("  - %s: %d\n", label, count)
	}
}
