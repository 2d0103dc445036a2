// Package store persists the upload log: one row per (file, document type,
// month, year) combination present in an ingested file's summary. The log is
// append-only; re-uploading the same period creates new rows, and removal is
// by explicit row id or by the (type, month, year[, fileName]) tuple.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"dcastano/siigo-ingest/internal/logging"
	"dcastano/siigo-ingest/internal/models"
)

// UploadRow is one persisted line of the upload log.
type UploadRow struct {
	ID            int                 `yaml:"id"`
	UserID        string              `yaml:"user_id,omitempty"`
	FileName      string              `yaml:"file_name"`
	DocumentType  models.DocumentType `yaml:"document_type"`
	Month         int                 `yaml:"month"` // 0-11
	Year          int                 `yaml:"year"`
	TotalValue    string              `yaml:"total_value"`
	ProcessedRows int                 `yaml:"processed_rows"`
	UploadedAt    time.Time           `yaml:"uploaded_at"`
}

type uploadLog struct {
	NextID int         `yaml:"next_id"`
	Rows   []UploadRow `yaml:"rows"`
}

// UploadStore reads and writes the YAML-backed upload log. Writes are
// whole-file rewrites serialized by a mutex, so pipelines running files
// concurrently can share one store.
type UploadStore struct {
	mu     sync.Mutex
	path   string
	logger logging.Logger
}

// NewUploadStore creates a store backed by the file at path.
func NewUploadStore(path string, logger logging.Logger) *UploadStore {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &UploadStore{path: path, logger: logger}
}

// RowsFromRecords derives the upload-log rows for one ingested file: records
// are grouped by (type, month, year) and each group contributes one row with
// the group's value sum and record count. Rows come back sorted for
// deterministic output.
func RowsFromRecords(userID, fileName string, records []models.Record, uploadedAt time.Time) []UploadRow {
	type key struct {
		Type  models.DocumentType
		Month int
		Year  int
	}
	type group struct {
		total decimal.Decimal
		count int
	}

	groups := make(map[key]*group)
	for _, r := range records {
		k := key{Type: r.Type, Month: r.Month, Year: r.Year}
		g, ok := groups[k]
		if !ok {
			g = &group{}
			groups[k] = g
		}
		g.total = g.total.Add(r.Value)
		g.count++
	}

	rows := make([]UploadRow, 0, len(groups))
	for k, g := range groups {
		rows = append(rows, UploadRow{
			UserID:        userID,
			FileName:      fileName,
			DocumentType:  k.Type,
			Month:         k.Month,
			Year:          k.Year,
			TotalValue:    g.total.StringFixed(2),
			ProcessedRows: g.count,
			UploadedAt:    uploadedAt,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].DocumentType != rows[j].DocumentType {
			return rows[i].DocumentType < rows[j].DocumentType
		}
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		return rows[i].Month < rows[j].Month
	})
	return rows
}

// Append adds rows to the log, assigning ids, and returns them as persisted.
func (s *UploadStore) Append(rows []UploadRow) ([]UploadRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, err := s.load()
	if err != nil {
		return nil, err
	}

	appended := make([]UploadRow, 0, len(rows))
	for _, row := range rows {
		log.NextID++
		row.ID = log.NextID
		log.Rows = append(log.Rows, row)
		appended = append(appended, row)
	}

	if err := s.save(log); err != nil {
		return nil, err
	}
	s.logger.Info("Appended upload rows",
		logging.Field{Key: "count", Value: len(appended)},
		logging.Field{Key: "store", Value: s.path})
	return appended, nil
}

// List returns every row in the log.
func (s *UploadStore) List() ([]UploadRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, err := s.load()
	if err != nil {
		return nil, err
	}
	return log.Rows, nil
}

// DeleteByID removes the row with the given id, reporting how many rows were
// deleted (0 or 1).
func (s *UploadStore) DeleteByID(id int) (int, error) {
	return s.deleteWhere(func(r UploadRow) bool {
		return r.ID == id
	})
}

// DeleteByTuple removes every row matching (documentType, month, year) and,
// when fileName is non-empty, the file name as well. Returns the number of
// rows deleted.
func (s *UploadStore) DeleteByTuple(docType models.DocumentType, month, year int, fileName string) (int, error) {
	return s.deleteWhere(func(r UploadRow) bool {
		if r.DocumentType != docType || r.Month != month || r.Year != year {
			return false
		}
		return fileName == "" || r.FileName == fileName
	})
}

func (s *UploadStore) deleteWhere(match func(UploadRow) bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, err := s.load()
	if err != nil {
		return 0, err
	}

	kept := log.Rows[:0]
	deleted := 0
	for _, row := range log.Rows {
		if match(row) {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	log.Rows = kept

	if deleted == 0 {
		return 0, nil
	}
	if err := s.save(log); err != nil {
		return 0, err
	}
	s.logger.Info("Deleted upload rows",
		logging.Field{Key: "count", Value: deleted},
		logging.Field{Key: "store", Value: s.path})
	return deleted, nil
}

func (s *UploadStore) load() (*uploadLog, error) {
	data, err := os.ReadFile(s.path) // #nosec G304 -- store path comes from configuration
	if err != nil {
		if os.IsNotExist(err) {
			return &uploadLog{}, nil
		}
		return nil, fmt.Errorf("error reading upload log: %w", err)
	}

	var log uploadLog
	if err := yaml.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("error parsing upload log: %w", err)
	}
	return &log, nil
}

func (s *UploadStore) save(log *uploadLog) error {
	data, err := yaml.Marshal(log)
	if err != nil {
		return fmt.Errorf("error encoding upload log: %w", err)
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
			return fmt.Errorf("error creating store directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, models.PermissionStoreFile); err != nil {
		return fmt.Errorf("error writing upload log: %w", err)
	}
	return nil
}
