// Package export writes gzip-compressed JSON dumps of the string store.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/gzip"

	"stringd/internal/analyzer"
	"stringd/internal/logging"
	"stringd/internal/service"
	"stringd/internal/store"
)

// Dump is the on-disk export format.
type Dump struct {
	ExportedAt time.Time          `json:"exported_at"`
	Count      int                `json:"count"`
	Records    []*analyzer.Record `json:"records"`
}

// Exporter dumps stored records to gzip-compressed JSON files.
type Exporter struct {
	svc    *service.Service
	logger *logging.Logger
}

// NewExporter creates a new exporter.
func NewExporter(svc *service.Service, logger *logging.Logger) *Exporter {
	return &Exporter{svc: svc, logger: logger}
}

// Export writes all stored records to path as gzip-compressed JSON.
// It returns the number of records written.
func (e *Exporter) Export(path string) (int, error) {
	records, err := e.svc.List(store.Filter{})
	if err != nil {
		return 0, fmt.Errorf("failed to list records: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := e.Write(f, records); err != nil {
		return 0, err
	}

	e.logger.Info("Exported records", map[string]interface{}{
		"path":  path,
		"count": len(records),
	})

	return len(records), nil
}

// Write writes the records to w as a gzip-compressed JSON dump.
func (e *Exporter) Write(w io.Writer, records []*analyzer.Record) error {
	gz := gzip.NewWriter(w)

	dump := Dump{
		ExportedAt: time.Now().UTC(),
		Count:      len(records),
		Records:    records,
	}
	if err := json.NewEncoder(gz).Encode(dump); err != nil {
		gz.Close()
		return fmt.Errorf("failed to encode export: %w", err)
	}

	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to close gzip writer: %w", err)
	}
	return nil
}

// ReadDump reads a gzip-compressed JSON dump written by Export.
func ReadDump(r io.Reader) (*Dump, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip reader: %w", err)
	}
	defer gz.Close()

	var dump Dump
	if err := json.NewDecoder(gz).Decode(&dump); err != nil {
		return nil, fmt.Errorf("failed to decode export: %w", err)
	}
	return &dump, nil
}

// Import stores every record value from the dump at path. Values already
// stored are skipped. It returns the number of newly stored records.
func (e *Exporter) Import(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	dump, err := ReadDump(f)
	if err != nil {
		return 0, err
	}

	var created int
	for _, rec := range dump.Records {
		_, inserted, err := e.svc.AnalyzeAndStore(rec.Value)
		if err != nil {
			return created, fmt.Errorf("failed to import %q: %w", rec.Value, err)
		}
		if inserted {
			created++
		}
	}

	e.logger.Info("Imported records", map[string]interface{}{
		"path":    path,
		"total":   len(dump.Records),
		"created": created,
	})

	return created, nil
}
