// internal/events/csv_sink.go
package events

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sync"
)

// CSVSink appends one row per issued code to a spreadsheet-style log file:
// product, brand, code, timestamp. The file is the durable feed the label
// printing and export tooling works from.
type CSVSink struct {
	mu   sync.Mutex
	path string
}

func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

func (s *CSVSink) Path() string {
	return s.path
}

func (s *CSVSink) Publish(ctx context.Context, event CodeIssued) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeHeader := false
	if info, err := os.Stat(s.path); os.IsNotExist(err) || (err == nil && info.Size() == 0) {
		writeHeader = true
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open code log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write([]string{"Product", "Brand", "Code", "Generated At"}); err != nil {
			return fmt.Errorf("failed to write code log header: %w", err)
		}
	}

	record := []string{
		event.ProductName,
		event.Brand,
		event.Code,
		event.IssuedAt.Format("2006-01-02 15:04:05"),
	}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("failed to append to code log: %w", err)
	}

	w.Flush()
	return w.Error()
}
