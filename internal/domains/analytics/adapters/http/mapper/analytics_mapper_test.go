package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analyticsdomain "github.com/Apurer/shop-backoffice/internal/domains/analytics/domain"
)

func TestFromDashboard_NilRendersEmptyCollections(t *testing.T) {
	raw, err := json.Marshal(FromDashboard(nil, time.Now()))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, []any{}, decoded["recentOrders"])
	assert.Equal(t, []any{}, decoded["activeDiscounts"])
	assert.Equal(t, []any{}, decoded["productCountsByCategory"])
}

func TestFromProductRevenue_KeepsRowOrder(t *testing.T) {
	rows := FromProductRevenue([]analyticsdomain.ProductRevenue{
		{ProductID: 2, Name: "Smart Watch", Revenue: 299.99},
		{ProductID: 1, Name: "Premium Headphones", Revenue: 159.99},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, int64(2), rows[0].ProductID)
	assert.Equal(t, "Premium Headphones", rows[1].Name)
}
