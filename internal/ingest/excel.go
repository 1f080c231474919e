package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"sleepcli/internal/errors"
	"sleepcli/pkg/contracts/domain"
)

// RowsFromWorkbook opens an xlsx export and returns the rows of the
// first sheet whose header row matches a recognized schema. Source
// systems export the same tables as both delimited text and workbooks,
// so the workbook path feeds the identical row pipeline.
func RowsFromWorkbook(path string) ([][]string, Layout, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, Layout{}, errors.NewStorageError(fmt.Sprintf("open workbook %s", path), err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}
		if layout, err := DetectLayout(rows[0]); err == nil {
			return rows, layout, nil
		}
	}

	return nil, Layout{}, errors.NewSchemaError(
		fmt.Sprintf("no sheet in %s has a recognized header row", path), nil)
}

// LoadWorkbook loads an xlsx export through the standard row pipeline.
func (l *Loader) LoadWorkbook(ctx context.Context, path string) ([]domain.SleepRecord, error) {
	rows, layout, err := RowsFromWorkbook(path)
	if err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "detected workbook schema",
		slog.String("schema", string(layout.Kind)),
		slog.String("path", path),
		slog.Int("rows", len(rows)-1))

	i := 1 // skip header
	return l.loadRows(ctx, layout, func() ([]string, error) {
		if i >= len(rows) {
			return nil, io.EOF
		}
		row := rows[i]
		i++
		return row, nil
	})
}
