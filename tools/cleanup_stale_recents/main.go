// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

// This is a one-time cleanup utility to remove stale entries from the
// recent_projects table. An entry is stale when the project file it points
// at no longer exists on disk.

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/toeirei/licmaster/internal/db"
)

func main() {
	// Initialize the database
	store, err := db.New("sqlite", "licmaster.db")
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	bdb := store.BunDB()
	ctx := context.Background()

	// Load all tracked project paths
	query := `
		SELECT id, path, product_name
		FROM recent_projects
		ORDER BY last_opened_at DESC
	`

	type result struct {
		ID          int
		Path        string
		ProductName string
	}

	var results []result
	err = bdb.NewRaw(query).Scan(ctx, &results)
	if err != nil {
		log.Fatalf("Failed to query recent projects: %v", err)
	}

	// The database cannot stat files, so the staleness check happens here.
	var stale []result
	for _, r := range results {
		if _, err := os.Stat(r.Path); os.IsNotExist(err) {
			stale = append(stale, r)
		}
	}

	if len(stale) == 0 {
		fmt.Printf("✓ All %d recent project(s) still exist on disk. Database is clean!\n", len(results))
		return
	}

	fmt.Printf("Found %d stale recent project(s):\n", len(stale))
	for _, r := range stale {
		fmt.Printf("  - ID %d (%s): %s\n", r.ID, r.ProductName, r.Path)
	}

	// Remove the stale rows
	var removed int64
	for _, r := range stale {
		deleteResult, err := db.ExecRaw(ctx, bdb, "DELETE FROM recent_projects WHERE id = ?", r.ID)
		if err != nil {
			log.Fatalf("Failed to delete recent project %d: %v", r.ID, err)
		}
		rowsAffected, _ := deleteResult.RowsAffected()
		removed += rowsAffected
	}

	fmt.Printf("\n✓ Removed %d stale entry(s) from the recent_projects table.\n", removed)
	fmt.Println("\nCleanup complete! The recents list now only shows projects that still exist.")
}
