package scraper

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// WriteCSV exports the records as text,author,tags with tags joined by ";".
func WriteCSV(path string, quotes []Quote) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"text", "author", "tags"}); err != nil {
		return err
	}
	for _, q := range quotes {
		if err := w.Write([]string{q.Text, q.Author, strings.Join(q.Tags, ";")}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Sync()
}
