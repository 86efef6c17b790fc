package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Apurer/shop-backoffice/internal/domains/analytics/adapters/report"
)

func TestExport_SeededDemoWorkbook(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("REDIS_URL", "")
	out := filepath.Join(t.TempDir(), "revenue.xlsx")

	err := newApp().RunContext(context.Background(), []string{"report", "--seed", "--out", out})
	require.NoError(t, err)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(report.RevenueSheet)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Product", rows[0][1])
	assert.Equal(t, "Premium Headphones", rows[1][1])
}

func TestExport_RejectsMalformedDate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "revenue.xlsx")
	err := newApp().RunContext(context.Background(), []string{"report", "--start", "June", "--out", out})
	require.Error(t, err)
	assert.NoFileExists(t, out)
}
