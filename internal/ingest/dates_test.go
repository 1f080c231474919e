package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name        string
		expr        string
		defaultYear int
		want        time.Time
		wantOK      bool
	}{
		{
			name:        "month and day only uses default year",
			expr:        "3/5",
			defaultYear: 2026,
			want:        time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
			wantOK:      true,
		},
		{
			name:        "two digit year expands to 2000s",
			expr:        "3/5/24",
			defaultYear: 1999,
			want:        time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			wantOK:      true,
		},
		{
			name:        "four digit year",
			expr:        "12/31/2023",
			defaultYear: 2026,
			want:        time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
			wantOK:      true,
		},
		{
			name:        "year stated only on the second range segment",
			expr:        "3/5 – 3/6/24",
			defaultYear: 1999,
			want:        time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			wantOK:      true,
		},
		{
			name:        "em dash range without year",
			expr:        "3/5 — 3/6",
			defaultYear: 2026,
			want:        time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
			wantOK:      true,
		},
		{
			name:        "trailing prose after the date is ignored",
			expr:        "3/5 Start time (x) PM 10:00",
			defaultYear: 2026,
			want:        time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
			wantOK:      true,
		},
		{
			name:        "impossible month and day",
			expr:        "13/45",
			defaultYear: 2026,
			wantOK:      false,
		},
		{
			name:        "february 29 on a non leap year",
			expr:        "2/29/23",
			defaultYear: 2026,
			wantOK:      false,
		},
		{
			name:        "february 29 on a leap year",
			expr:        "2/29/24",
			defaultYear: 2026,
			want:        time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			wantOK:      true,
		},
		{
			name:        "zero month",
			expr:        "0/5",
			defaultYear: 2026,
			wantOK:      false,
		},
		{
			name:        "no slash shape",
			expr:        "March 5th",
			defaultYear: 2026,
			wantOK:      false,
		},
		{
			name:        "empty expression",
			expr:        "",
			defaultYear: 2026,
			wantOK:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeDate(tt.expr, tt.defaultYear)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
			}
		})
	}
}
