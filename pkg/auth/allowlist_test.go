package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowList_Allows(t *testing.T) {
	t.Run("empty list allows everyone", func(t *testing.T) {
		// given
		allowList := NewAllowList("")

		// then
		assert.True(t, allowList.IsEmpty())
		assert.True(t, allowList.Allows("anyone@example.com"))
	})

	t.Run("only listed emails are allowed", func(t *testing.T) {
		// given
		allowList := NewAllowList("mom@example.com,dad@example.com")

		// then
		assert.False(t, allowList.IsEmpty())
		assert.True(t, allowList.Allows("mom@example.com"))
		assert.True(t, allowList.Allows("dad@example.com"))
		assert.False(t, allowList.Allows("stranger@example.com"))
	})

	t.Run("matching ignores case and surrounding whitespace", func(t *testing.T) {
		// given
		allowList := NewAllowList(" Mom@Example.com , dad@example.com ")

		// then
		assert.True(t, allowList.Allows("MOM@example.COM"))
		assert.True(t, allowList.Allows("  dad@example.com "))
	})

	t.Run("a list of only separators is treated as empty", func(t *testing.T) {
		// given
		allowList := NewAllowList(" , ,, ")

		// then
		assert.True(t, allowList.IsEmpty())
		assert.True(t, allowList.Allows("anyone@example.com"))
	})
}
