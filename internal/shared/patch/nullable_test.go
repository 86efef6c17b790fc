package patch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Stock    *int             `json:"stock"`
	ImageURL Nullable[string] `json:"imageUrl"`
}

func TestNullable_DistinguishesMissingNullAndValue(t *testing.T) {
	var missing payload
	require.NoError(t, json.Unmarshal([]byte(`{"stock":5}`), &missing))
	assert.False(t, missing.ImageURL.Set)

	var cleared payload
	require.NoError(t, json.Unmarshal([]byte(`{"imageUrl":null}`), &cleared))
	assert.True(t, cleared.ImageURL.Set)
	assert.Nil(t, cleared.ImageURL.Value)

	var valued payload
	require.NoError(t, json.Unmarshal([]byte(`{"imageUrl":"https://x.test/a.png"}`), &valued))
	require.NotNil(t, valued.ImageURL.Value)
	assert.Equal(t, "https://x.test/a.png", *valued.ImageURL.Value)
}

func TestNullable_Apply(t *testing.T) {
	current := "old"
	target := &current

	Nullable[string]{}.Apply(&target)
	require.NotNil(t, target)
	assert.Equal(t, "old", *target)

	Value("new").Apply(&target)
	assert.Equal(t, "new", *target)
	assert.Equal(t, "old", current)

	Null[string]().Apply(&target)
	assert.Nil(t, target)
}

func TestSet(t *testing.T) {
	stock := 3
	Set(&stock, nil)
	assert.Equal(t, 3, stock)
	five := 5
	Set(&stock, &five)
	assert.Equal(t, 5, stock)
}
