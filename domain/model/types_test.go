package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    []string
		expected Header
	}{
		{
			name:     "Unique names are kept",
			input:    []string{"Name", "Age"},
			expected: Header{"Name", "Age"},
		},
		{
			name:     "Later duplicate gets a suffix",
			input:    []string{"id", "id", "id"},
			expected: Header{"id", "id_2", "id_3"},
		},
		{
			name:     "Suffix skips names already taken",
			input:    []string{"a", "a_2", "a"},
			expected: Header{"a", "a_2", "a_3"},
		},
		{
			name:     "Empty names become generic names",
			input:    []string{"", "x", ""},
			expected: Header{"Column 1", "x", "Column 3"},
		},
		{
			name:     "Duplicate is case sensitive",
			input:    []string{"Name", "name"},
			expected: Header{"Name", "name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, UniqueHeader(tt.input))
		})
	}
}

func TestGenericHeader(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Header{"Column 1", "Column 2", "Column 3"}, GenericHeader(3))
	assert.Empty(t, GenericHeader(0))
}

func TestHeader_Equal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		header1  Header
		header2  Header
		expected bool
	}{
		{
			name:     "Equal headers",
			header1:  Header{"col1", "col2"},
			header2:  Header{"col1", "col2"},
			expected: true,
		},
		{
			name:     "Different length headers",
			header1:  Header{"col1", "col2"},
			header2:  Header{"col1"},
			expected: false,
		},
		{
			name:     "Different content headers",
			header1:  Header{"col1", "col2"},
			header2:  Header{"col1", "col3"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.header1.Equal(tt.header2); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestValue(t *testing.T) {
	t.Parallel()

	assert.True(t, Null().IsNull())
	assert.Equal(t, "", Null().String())
	assert.False(t, NewValue("").IsNull(), "explicit empty text is present")
	assert.True(t, NormalizeValue("").IsNull())
	assert.Equal(t, NewValue(" "), NormalizeValue(" "))
}

func TestNewRecord(t *testing.T) {
	t.Parallel()

	header := Header{"A", "B", "C"}

	t.Run("Exact width", func(t *testing.T) {
		t.Parallel()
		r := NewRecord(header, []string{"1", "2", "3"})
		assert.Equal(t, []string{"1", "2", "3"}, r.Fields())
		assert.Empty(t, r.Overflow())
		assert.Equal(t, 3, r.Len())
	})

	t.Run("Short row leaves trailing columns absent", func(t *testing.T) {
		t.Parallel()
		r := NewRecord(header, []string{"1", "2"})
		v, ok := r.Get("C")
		assert.True(t, ok)
		assert.True(t, v.IsNull())
		assert.Equal(t, []string{"1", "2", ""}, r.Fields())
	})

	t.Run("Long row keeps overflow out of the key set", func(t *testing.T) {
		t.Parallel()
		r := NewRecord(header, []string{"1", "2", "3", "4", "5"})
		assert.Equal(t, []string{"4", "5"}, r.Overflow())
		assert.Equal(t, []string{"A", "B", "C"}, r.Keys())
	})

	t.Run("Set only accepts header names", func(t *testing.T) {
		t.Parallel()
		r := NewRecord(header, []string{"1", "2", "3"})
		assert.True(t, r.Set("B", NewValue("x")))
		assert.False(t, r.Set("D", NewValue("y")))
		_, ok := r.Get("D")
		assert.False(t, ok)
		v, _ := r.Get("B")
		assert.Equal(t, "x", v.String())
	})
}

func TestRecord_Equal(t *testing.T) {
	t.Parallel()

	header := Header{"A", "B"}
	r1 := NewRecord(header, []string{"1", "2"})
	r2 := NewRecord(header, []string{"1", "2"})
	r3 := NewRecord(header, []string{"1"})
	r4 := NewRecord(header, []string{"1", "2", "3"})

	assert.True(t, r1.Equal(r2))
	assert.False(t, r1.Equal(r3))
	assert.False(t, r1.Equal(r4))
}
