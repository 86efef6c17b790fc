package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Apurer/shop-backoffice/internal/domains/analytics/domain"
)

func TestWriteProductRevenue_ReadsBack(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := []domain.ProductRevenue{
		{ProductID: 2, Name: "Smart Watch", Revenue: 299.99},
		{ProductID: 1, Name: "Premium Headphones", Revenue: 159.99},
	}

	var buf bytes.Buffer
	require.NoError(t, NewXLSXWriter().WriteProductRevenue(&buf, domain.Window{Start: &start}, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{RevenueSheet, summarySheet}, f.GetSheetList())

	got, err := f.GetRows(RevenueSheet)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Product ID", "Product", "Revenue"}, got[0])
	assert.Equal(t, "2", got[1][0])
	assert.Equal(t, "Smart Watch", got[1][1])
	assert.Equal(t, "Premium Headphones", got[2][1])

	from, err := f.GetCellValue(summarySheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01T00:00:00Z", from)
	to, err := f.GetCellValue(summarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "open", to)
}

func TestWriteProductRevenue_EmptyRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewXLSXWriter().WriteProductRevenue(&buf, domain.Window{}, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(RevenueSheet)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
