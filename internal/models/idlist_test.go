package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDList_Append(t *testing.T) {
	t.Parallel()

	t.Run("appends new id", func(t *testing.T) {
		t.Parallel()
		list := IDList{1, 2}
		assert.Equal(t, IDList{1, 2, 3}, list.Append(3))
	})

	t.Run("append is idempotent", func(t *testing.T) {
		t.Parallel()
		list := IDList{1, 2, 3}
		assert.Equal(t, IDList{1, 2, 3}, list.Append(2))
	})

	t.Run("append to empty list", func(t *testing.T) {
		t.Parallel()
		var list IDList
		assert.Equal(t, IDList{7}, list.Append(7))
	})
}

func TestIDList_Remove(t *testing.T) {
	t.Parallel()

	t.Run("removes present id", func(t *testing.T) {
		t.Parallel()
		list := IDList{1, 2, 3}
		assert.Equal(t, IDList{1, 3}, list.Remove(2))
	})

	t.Run("absent id is a no-op", func(t *testing.T) {
		t.Parallel()
		list := IDList{1, 3}
		assert.Equal(t, IDList{1, 3}, list.Remove(9))
	})

	t.Run("preserves order of remaining ids", func(t *testing.T) {
		t.Parallel()
		list := IDList{5, 4, 3, 2, 1}
		assert.Equal(t, IDList{5, 4, 2, 1}, list.Remove(3))
	})
}

func TestIDList_Contains(t *testing.T) {
	t.Parallel()

	list := IDList{10, 20}
	assert.True(t, list.Contains(10))
	assert.False(t, list.Contains(30))
	assert.False(t, IDList(nil).Contains(1))
}
