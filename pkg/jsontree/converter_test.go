package jsontree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseObject(t *testing.T) {
	c := NewConverter()

	t.Run("decodes an object into a tree", func(t *testing.T) {
		tree, err := c.ParseObject(`{"matchedDefendantId":"md-1","defendantsMatched":[{"defendantId":"d-1"}]}`)

		assert.NoError(t, err)
		assert.Equal(t, "md-1", tree["matchedDefendantId"])
		assert.Len(t, tree["defendantsMatched"], 1)
	})

	t.Run("rejects non-object payloads", func(t *testing.T) {
		_, err := c.ParseObject(`[1,2]`)
		assert.Error(t, err)
	})

	t.Run("rejects malformed payloads", func(t *testing.T) {
		_, err := c.ParseObject(`{broken`)
		assert.Error(t, err)
	})
}
