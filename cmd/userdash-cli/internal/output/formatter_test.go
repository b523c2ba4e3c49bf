package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/userdash/internal/domain"
)

func TestProfile(t *testing.T) {
	var buf bytes.Buffer
	p := &domain.UserProfile{
		ID:      "1",
		Name:    "Leanne Graham",
		Address: domain.Address{Street: "Kulas Light", Suite: "Apt. 556", City: "Gwenborough", Zipcode: "92998-3874"},
		Company: domain.Company{Name: "Romaguera-Crona"},
	}

	require.NoError(t, Profile(&buf, p))

	out := buf.String()
	assert.Contains(t, out, "Leanne Graham")
	assert.Contains(t, out, "Kulas Light, Apt. 556, Gwenborough, 92998-3874")
	assert.Contains(t, out, "Romaguera-Crona")
}

func TestActivities(t *testing.T) {
	t.Run("rows in order", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Activities(&buf, []domain.UserActivity{
			{ID: 2, Title: "second", Content: "line one\nline two"},
			{ID: 1, Title: "first", Content: "x"},
		}))

		out := buf.String()
		assert.Contains(t, out, "line one line two")
		assert.Less(t, bytes.Index(buf.Bytes(), []byte("second")), bytes.Index(buf.Bytes(), []byte("first")))
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Activities(&buf, nil))
		assert.Contains(t, buf.String(), "No activities found")
	})
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, []domain.UserActivity{{ID: 1, Title: "t", Content: "c"}}))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "c", decoded[0]["content"])
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abcdefg...", truncateString("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncateString("abcdef", 2))
}

func TestValidFormat(t *testing.T) {
	assert.True(t, ValidFormat("table"))
	assert.True(t, ValidFormat("json"))
	assert.False(t, ValidFormat("yaml"))
}
