//go:build ignore

package main

import (
	"compress/gzip"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// generateSampleSelection creates product selection files for batch tax assignment.
// Upload them under SELECTION_S3_PREFIX or pass their local path as "selectionFile".
func main() {
	dataDir := "data/selections"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	selections := map[string][]string{
		"beverages.txt.gz": {"101", "102", "103", "104"},
		"exempt-basics.txt.gz": {
			"201", // bread
			"202", // milk
			"203", // eggs
			"",    // blank lines are skipped
			"202", // duplicates collapse
		},
		"clearance.txt.gz": {"301", "302", "101"},
	}

	for filename, ids := range selections {
		filePath := filepath.Join(dataDir, filename)

		if err := createSelectionFile(filePath, ids); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d lines\n", filePath, len(ids))
	}

	fmt.Println("\nSample selection files created successfully!")
	fmt.Println(`Try: POST /api/taxes/{id}/batch {"selectionFile":"data/selections/beverages.txt.gz"}`)
}

func createSelectionFile(filePath string, ids []string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	for _, id := range ids {
		if _, err := fmt.Fprintf(gzipWriter, "%s\n", id); err != nil {
			return fmt.Errorf("failed to write product id: %w", err)
		}
	}

	return nil
}
