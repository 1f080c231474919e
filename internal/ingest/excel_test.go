package ingest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "sleepcli/internal/errors"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cellRef, &row))
	}

	path := filepath.Join(t.TempDir(), "export.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadWorkbook_Preprocessed(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Name", "start_dt", "duration_hr", "interruptions"},
		{"Ann", "2026-03-05 22:00:00", "8", "2"},
		{"Bob", "2026-03-06 23:00:00", "6.5", ""},
	})

	records, err := testLoader().LoadWorkbook(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Ann", records[0].Name)
	assert.Equal(t, time.Date(2026, 3, 5, 22, 0, 0, 0, time.UTC), records[0].Start)
	require.NotNil(t, records[0].InterruptionCount)
	assert.Equal(t, 2.0, *records[0].InterruptionCount)

	assert.Equal(t, "Bob", records[1].Name)
	assert.InDelta(t, 6.5, records[1].DurationHours, 1e-9)
	assert.Nil(t, records[1].InterruptionCount)
}

func TestLoadWorkbook_RawNotes(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Name", "Details"},
		{"Ann", "Date: 3/5 Start time (x) PM 10:00 End time (x) AM 6:00 INTERRUPTIONS TOTAL #: 2"},
	})

	records, err := testLoader().LoadWorkbook(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.InDelta(t, 8.0, records[0].DurationHours, 1e-9)
}

func TestLoadWorkbook_NoRecognizedSheet(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"id", "payload"},
		{"1", "whatever"},
	})

	_, err := testLoader().LoadWorkbook(context.Background(), path)
	require.Error(t, err)
	assert.True(t, apperrors.IsSchemaError(err))
}

func TestLoadWorkbook_MissingFile(t *testing.T) {
	_, err := testLoader().LoadWorkbook(context.Background(), filepath.Join(t.TempDir(), "nope.xlsx"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}

func TestLoadFile_DispatchesOnExtension(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Name", "start_dt", "duration_hr"},
		{"Ann", "2026-03-05 22:00:00", "8"},
	})

	records, err := testLoader().LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
