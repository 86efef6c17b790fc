package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestModels_TableNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Models() {
		tbl, ok := m.(schema.Tabler)
		require.True(t, ok, "%T has no TableName", m)
		name := tbl.TableName()
		assert.False(t, seen[name], "duplicate table %s", name)
		seen[name] = true
	}
	for _, want := range []string{"users", "products", "categories", "tags", "product_tags", "discounts", "orders", "order_items", "returns"} {
		assert.True(t, seen[want], "missing table %s", want)
	}
}

func TestRun_NilDBIsNoop(t *testing.T) {
	assert.NoError(t, Run(nil))
}
