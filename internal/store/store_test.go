package store

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dcastano/siigo-ingest/internal/logging"
	"dcastano/siigo-ingest/internal/models"
)

func testStore(t *testing.T) *UploadStore {
	t.Helper()
	return NewUploadStore(filepath.Join(t.TempDir(), "uploads.yaml"), logging.NewNop())
}

func testUploadedAt() time.Time {
	return time.Date(2023, time.July, 1, 12, 0, 0, 0, time.UTC)
}

func TestRowsFromRecords(t *testing.T) {
	records := []models.Record{
		{Type: models.DocTypeFC, Month: 0, Year: 2023, Value: decimal.NewFromInt(600)},
		{Type: models.DocTypeFC, Month: 0, Year: 2023, Value: decimal.NewFromInt(400)},
		{Type: models.DocTypeND, Month: 5, Year: 2023, Value: decimal.NewFromInt(500)},
	}

	rows := RowsFromRecords("u1", "compras.xlsx", records, testUploadedAt())
	require.Len(t, rows, 2)

	assert.Equal(t, models.DocTypeFC, rows[0].DocumentType)
	assert.Equal(t, "1000.00", rows[0].TotalValue)
	assert.Equal(t, 2, rows[0].ProcessedRows)
	assert.Equal(t, 0, rows[0].Month)
	assert.Equal(t, 2023, rows[0].Year)
	assert.Equal(t, "u1", rows[0].UserID)
	assert.Equal(t, "compras.xlsx", rows[0].FileName)

	assert.Equal(t, models.DocTypeND, rows[1].DocumentType)
	assert.Equal(t, "500.00", rows[1].TotalValue)
	assert.Equal(t, 1, rows[1].ProcessedRows)
}

func TestRowsFromRecordsEmpty(t *testing.T) {
	assert.Empty(t, RowsFromRecords("u1", "compras.xlsx", nil, testUploadedAt()))
}

func TestAppendAndList(t *testing.T) {
	s := testStore(t)

	rows, err := s.Append([]UploadRow{
		{FileName: "a.xlsx", DocumentType: models.DocTypeFC, Month: 0, Year: 2023, TotalValue: "1000.00", ProcessedRows: 2, UploadedAt: testUploadedAt()},
		{FileName: "a.xlsx", DocumentType: models.DocTypeND, Month: 5, Year: 2023, TotalValue: "500.00", ProcessedRows: 1, UploadedAt: testUploadedAt()},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].ID)
	assert.Equal(t, 2, rows[1].ID)

	listed, err := s.List()
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "a.xlsx", listed[0].FileName)
	assert.Equal(t, "1000.00", listed[0].TotalValue)
}

func TestAppendContinuesIDs(t *testing.T) {
	s := testStore(t)

	_, err := s.Append([]UploadRow{{FileName: "a.xlsx", DocumentType: models.DocTypeFC, Month: 0, Year: 2023}})
	require.NoError(t, err)

	rows, err := s.Append([]UploadRow{{FileName: "b.xlsx", DocumentType: models.DocTypeFC, Month: 1, Year: 2023}})
	require.NoError(t, err)
	assert.Equal(t, 2, rows[0].ID)
}

func TestAppendConcurrent(t *testing.T) {
	s := testStore(t)

	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		month := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Append([]UploadRow{
				{FileName: "a.xlsx", DocumentType: models.DocTypeFC, Month: month, Year: 2023},
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	rows, err := s.List()
	require.NoError(t, err)
	require.Len(t, rows, writers)

	ids := make(map[int]bool, writers)
	for _, r := range rows {
		ids[r.ID] = true
	}
	assert.Len(t, ids, writers, "concurrent appends must not reuse ids or lose rows")
}

func TestListMissingFile(t *testing.T) {
	s := testStore(t)

	rows, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDeleteByID(t *testing.T) {
	s := testStore(t)

	_, err := s.Append([]UploadRow{
		{FileName: "a.xlsx", DocumentType: models.DocTypeFC, Month: 0, Year: 2023},
		{FileName: "a.xlsx", DocumentType: models.DocTypeND, Month: 5, Year: 2023},
	})
	require.NoError(t, err)

	deleted, err := s.DeleteByID(1)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	rows, err := s.List()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].ID)

	deleted, err = s.DeleteByID(99)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestDeleteByTuple(t *testing.T) {
	s := testStore(t)

	_, err := s.Append([]UploadRow{
		{FileName: "a.xlsx", DocumentType: models.DocTypeFC, Month: 0, Year: 2023},
		{FileName: "b.xlsx", DocumentType: models.DocTypeFC, Month: 0, Year: 2023},
		{FileName: "a.xlsx", DocumentType: models.DocTypeND, Month: 5, Year: 2023},
	})
	require.NoError(t, err)

	// File name narrows the match.
	deleted, err := s.DeleteByTuple(models.DocTypeFC, 0, 2023, "b.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	// Empty file name matches any file.
	deleted, err = s.DeleteByTuple(models.DocTypeFC, 0, 2023, "")
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	rows, err := s.List()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.DocTypeND, rows[0].DocumentType)

	deleted, err = s.DeleteByTuple(models.DocTypeRP, 3, 2024, "")
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestStoreCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	s := NewUploadStore(filepath.Join(dir, "nested", "uploads.yaml"), logging.NewNop())

	_, err := s.Append([]UploadRow{{FileName: "a.xlsx", DocumentType: models.DocTypeFC, Month: 0, Year: 2023}})
	require.NoError(t, err)

	rows, err := s.List()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
