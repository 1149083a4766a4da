package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequestResolve(t *testing.T) {
	t.Run("defaults apply when absent", func(t *testing.T) {
		offset, limit := PageRequest{}.Resolve(20)
		assert.Equal(t, 0, offset)
		assert.Equal(t, 20, limit)
	})

	t.Run("page converts to zero-based offset", func(t *testing.T) {
		offset, limit := PageRequest{Page: 3, PageSize: 10}.Resolve(20)
		assert.Equal(t, 20, offset)
		assert.Equal(t, 10, limit)
	})

	t.Run("non-positive values fall back", func(t *testing.T) {
		offset, limit := PageRequest{Page: -1, PageSize: 0}.Resolve(20)
		assert.Equal(t, 0, offset)
		assert.Equal(t, 20, limit)
	})
}

func TestInRange(t *testing.T) {
	// Page 7 of size 10 over 59 rows lands past the end.
	offset, _ := PageRequest{Page: 7, PageSize: 10}.Resolve(20)
	assert.Equal(t, 60, offset)
	assert.False(t, InRange(offset, 59))

	offset, _ = PageRequest{Page: 6, PageSize: 10}.Resolve(20)
	assert.True(t, InRange(offset, 59))

	assert.False(t, InRange(0, 0))
}

func TestBatches(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}

	batches := Batches(ids, 2)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}, {"e"}}, batches)

	assert.Nil(t, Batches(nil, 2))
	assert.Nil(t, Batches(ids, 0))

	single := Batches(ids, 50)
	assert.Len(t, single, 1)
	assert.Len(t, single[0], 5)
}
