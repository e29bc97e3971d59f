package codec

import (
	"testing"
	"time"

	"github.com/aretw0/jot/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleNotes() []core.Note {
	created := time.Date(2024, 3, 1, 9, 30, 0, 123456789, time.UTC)
	return []core.Note{
		{ID: "0190a1b2-0000-7000-8000-000000000001", Title: "Groceries", Content: "milk, eggs", CreatedAt: created, UpdatedAt: created},
		{ID: "0190a1b2-0000-7000-8000-000000000002", Title: "", Content: "multi\nline: \"quoted\"", CreatedAt: created, UpdatedAt: created.Add(time.Minute)},
	}
}

func assertSameNotes(t *testing.T, want, got []core.Note) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Title, got[i].Title)
		assert.Equal(t, want[i].Content, got[i].Content)
		assert.True(t, want[i].CreatedAt.Equal(got[i].CreatedAt), "createdAt of %s", want[i].ID)
		assert.True(t, want[i].UpdatedAt.Equal(got[i].UpdatedAt), "updatedAt of %s", want[i].ID)
	}
}

func TestCodecs(t *testing.T) {
	codecs := []core.Codec{NewJSON(), &JSON{}, NewYAML()}

	for _, c := range codecs {
		t.Run(c.Name(), func(t *testing.T) {
			t.Run("Round Trip Preserves Order And Fields", func(t *testing.T) {
				data, err := c.Encode(sampleNotes())
				require.NoError(t, err)

				got, err := c.Decode(data)
				require.NoError(t, err)
				assertSameNotes(t, sampleNotes(), got)
			})

			t.Run("Empty Collection", func(t *testing.T) {
				data, err := c.Encode(nil)
				require.NoError(t, err)

				got, err := c.Decode(data)
				require.NoError(t, err)
				assert.NotNil(t, got)
				assert.Empty(t, got)
			})

			t.Run("Empty Input", func(t *testing.T) {
				got, err := c.Decode(nil)
				require.NoError(t, err)
				assert.Empty(t, got)
			})
		})
	}
}

func TestJSON_Format(t *testing.T) {
	data, err := NewJSON().Encode(sampleNotes()[:1])
	require.NoError(t, err)

	s := string(data)
	for _, field := range []string{`"id"`, `"title"`, `"content"`, `"createdAt"`, `"updatedAt"`} {
		assert.Contains(t, s, field)
	}
	assert.Contains(t, s, "2024-03-01T09:30:00.123456789Z")
}

func TestDecode_Corrupt(t *testing.T) {
	tests := []struct {
		name  string
		codec core.Codec
		input string
	}{
		{name: "JSON Truncated", codec: NewJSON(), input: `[{"id":"a"`},
		{name: "JSON Object", codec: NewJSON(), input: `{"id":"a"}`},
		{name: "JSON Trailing Data", codec: NewJSON(), input: `[] []`},
		{name: "JSON Bad Time", codec: NewJSON(), input: `[{"id":"a","createdAt":"yesterday"}]`},
		{name: "YAML Mapping", codec: NewYAML(), input: "id: a\n"},
		{name: "YAML Broken", codec: NewYAML(), input: "- id: [a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.codec.Decode([]byte(tt.input))
			assert.ErrorIs(t, err, core.ErrCorrupt)
		})
	}
}

func TestByName(t *testing.T) {
	for name, want := range map[string]string{
		"":     "json",
		"json": "json",
		"JSON": "json",
		".yml": "yaml",
		"yaml": "yaml",
	} {
		c, err := ByName(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, c.Name(), name)
	}

	_, err := ByName("toml")
	assert.Error(t, err)

	assert.Equal(t, ".yaml", Ext(NewYAML()))
}
