package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/shop-backoffice/internal/shared/patch"
	"github.com/Apurer/shop-backoffice/internal/shared/validation"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

func TestDiscount_ActiveAtMatchesWindowDefinition(t *testing.T) {
	bounds := []*time.Time{nil, at(-48 * time.Hour), at(0), at(48 * time.Hour)}

	for _, flag := range []bool{true, false} {
		for _, start := range bounds {
			for _, end := range bounds {
				d := Discount{IsActive: flag, StartDate: start, EndDate: end}
				want := flag &&
					(start == nil || !start.After(now)) &&
					(end == nil || !end.Before(now))

				name := fmt.Sprintf("active=%t start=%v end=%v", flag, start, end)
				assert.Equal(t, want, d.ActiveAt(now), name)
				assert.Equal(t, want, d.StatusAt(now) == StatusActive, name)
			}
		}
	}
}

func TestDiscount_StatusAt(t *testing.T) {
	tests := []struct {
		name     string
		discount Discount
		want     Status
	}{
		{"expired window", Discount{IsActive: true, EndDate: at(-24 * time.Hour)}, StatusExpired},
		{"future start", Discount{IsActive: true, StartDate: at(24 * time.Hour)}, StatusScheduled},
		{"flag off overrides window", Discount{IsActive: false, StartDate: at(-time.Hour), EndDate: at(time.Hour)}, StatusInactive},
		{"open window", Discount{IsActive: true}, StatusActive},
		{"inverted window reads as scheduled", Discount{IsActive: true, StartDate: at(time.Hour), EndDate: at(-time.Hour)}, StatusScheduled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.discount.StatusAt(now))
		})
	}

	scheduled := Discount{IsActive: true, StartDate: at(24 * time.Hour)}
	assert.False(t, scheduled.ActiveAt(now))
}

func TestDiscount_AppliesTo(t *testing.T) {
	category := int64(3)
	target := Target{ProductID: 7, CategoryID: &category, TagIDs: []int64{1, 4}}
	id := func(v int64) *int64 { return &v }

	assert.True(t, (&Discount{Scope: ScopeAll}).AppliesTo(target))
	assert.True(t, (&Discount{Scope: ScopeProduct, ScopeID: id(7)}).AppliesTo(target))
	assert.False(t, (&Discount{Scope: ScopeProduct, ScopeID: id(8)}).AppliesTo(target))
	assert.True(t, (&Discount{Scope: ScopeCategory, ScopeID: id(3)}).AppliesTo(target))
	assert.False(t, (&Discount{Scope: ScopeCategory, ScopeID: id(3)}).AppliesTo(Target{ProductID: 7}))
	assert.True(t, (&Discount{Scope: ScopeTag, ScopeID: id(4)}).AppliesTo(target))
	assert.False(t, (&Discount{Scope: ScopeTag, ScopeID: id(2)}).AppliesTo(target))
}

func TestDiscount_ValidateRequiresScopeIDForScopedDiscounts(t *testing.T) {
	d := Discount{Name: "Summer Sale", Type: TypePercentage, Value: 20, Scope: ScopeCategory}
	fields, ok := validation.Fields(d.Validate())
	require.True(t, ok)
	assert.Contains(t, fields, "scopeId")

	bad := Discount{Type: "bogo", Value: -1, Scope: "brand"}
	fields, ok = validation.Fields(bad.Validate())
	require.True(t, ok)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "type")
	assert.Contains(t, fields, "value")
	assert.Contains(t, fields, "scope")

	overHundred := Discount{Name: "Generous", Type: TypePercentage, Value: 150, Scope: ScopeAll}
	assert.NoError(t, overHundred.Validate())
}

func TestDiscount_NormalizeClearsScopeIDForAll(t *testing.T) {
	scopeID := int64(9)
	blank := " "
	d := Discount{Name: " New Customer ", Scope: ScopeAll, ScopeID: &scopeID, Code: &blank}
	d.Normalize()

	assert.Equal(t, "New Customer", d.Name)
	assert.Nil(t, d.ScopeID)
	assert.Nil(t, d.Code)
}

func TestDiscount_ApplyClearsDates(t *testing.T) {
	d := Discount{Name: "Flash", Type: TypeFixed, Value: 5, Scope: ScopeAll, IsActive: true, StartDate: at(time.Hour), EndDate: at(2 * time.Hour)}
	off := false

	d.Apply(DiscountPatch{StartDate: patch.Null[time.Time](), IsActive: &off})
	assert.Nil(t, d.StartDate)
	require.NotNil(t, d.EndDate)
	assert.False(t, d.IsActive)
	assert.Equal(t, "Flash", d.Name)
}

func TestParseStatus(t *testing.T) {
	st, ok := ParseStatus(" Scheduled ")
	require.True(t, ok)
	assert.Equal(t, StatusScheduled, st)

	_, ok = ParseStatus("pending")
	assert.False(t, ok)
}
