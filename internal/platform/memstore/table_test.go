package memstore

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID    int64
	Name  string
	Items []int64
}

func cloneRow(r row) row {
	r.Items = append([]int64(nil), r.Items...)
	return r
}

func insertNamed(t *testing.T, table *Table[row], name string) row {
	t.Helper()
	inserted, err := table.Insert(func(id int64) (row, error) {
		return row{ID: id, Name: name}, nil
	})
	require.NoError(t, err)
	return inserted
}

func TestInsert_AllocatesMonotonicIDsNeverReused(t *testing.T) {
	table := NewTable(cloneRow)

	first := insertNamed(t, table, "a")
	second := insertNamed(t, table, "b")
	require.Equal(t, int64(1), first.ID)
	require.Equal(t, int64(2), second.ID)

	require.True(t, table.Delete(second.ID))
	third := insertNamed(t, table, "c")
	assert.Equal(t, int64(3), third.ID)
}

func TestInsert_FailedBuildDoesNotConsumeID(t *testing.T) {
	table := NewTable(cloneRow)

	_, err := table.Insert(func(int64) (row, error) { return row{}, errors.New("boom") })
	require.Error(t, err)
	assert.Equal(t, 0, table.Len())

	inserted := insertNamed(t, table, "a")
	assert.Equal(t, int64(1), inserted.ID)
}

func TestUpdate_ErrorLeavesRowUntouched(t *testing.T) {
	table := NewTable(cloneRow)
	inserted := insertNamed(t, table, "a")

	_, found, err := table.Update(inserted.ID, func(r *row) error {
		r.Name = "changed"
		return errors.New("rejected")
	})
	require.True(t, found)
	require.Error(t, err)

	stored, ok := table.Get(inserted.ID)
	require.True(t, ok)
	assert.Equal(t, "a", stored.Name)

	_, found, err = table.Update(99, func(*row) error { return nil })
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGet_ReturnsIsolatedCopies(t *testing.T) {
	table := NewTable(cloneRow)
	inserted, err := table.Insert(func(id int64) (row, error) {
		return row{ID: id, Items: []int64{1, 2}}, nil
	})
	require.NoError(t, err)

	inserted.Items[0] = 42
	stored, _ := table.Get(inserted.ID)
	assert.Equal(t, []int64{1, 2}, stored.Items)
}

func TestDeleteFirst_RemovesEarliestMatch(t *testing.T) {
	table := NewTable(cloneRow)
	insertNamed(t, table, "dup")
	insertNamed(t, table, "dup")
	insertNamed(t, table, "other")

	removed, ok := table.DeleteFirst(func(r row) bool { return r.Name == "dup" })
	require.True(t, ok)
	assert.Equal(t, int64(1), removed.ID)

	remaining := table.Filter(nil)
	require.Len(t, remaining, 2)
	assert.Equal(t, int64(2), remaining[0].ID)
	assert.Equal(t, int64(3), remaining[1].ID)

	_, ok = table.DeleteFirst(func(r row) bool { return r.Name == "missing" })
	assert.False(t, ok)
	assert.False(t, table.Delete(1))
}

func TestInsert_ConcurrentWritersGetDistinctIDs(t *testing.T) {
	table := NewTable(cloneRow)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = table.Insert(func(id int64) (row, error) { return row{ID: id}, nil })
		}()
	}
	wg.Wait()

	rows := table.Filter(nil)
	require.Len(t, rows, 50)
	for i, r := range rows {
		assert.Equal(t, int64(i+1), r.ID)
	}
}

func TestInsertUnique_RejectsDuplicateWithoutConsumingID(t *testing.T) {
	table := NewTable(cloneRow)
	sameName := func(name string) func(row) bool {
		return func(r row) bool { return r.Name == name }
	}
	build := func(name string) func(int64) (row, error) {
		return func(id int64) (row, error) { return row{ID: id, Name: name}, nil }
	}

	first, ok, err := table.InsertUnique(sameName("alice"), build("alice"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(1), first.ID)

	_, ok, err = table.InsertUnique(sameName("alice"), build("alice"))
	require.NoError(t, err)
	assert.False(t, ok)

	second, ok, err := table.InsertUnique(sameName("bob"), build("bob"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(2), second.ID)
}
