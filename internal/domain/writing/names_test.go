package writing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullName(t *testing.T) {
	tests := []struct {
		name     string
		first    string
		middle   string
		last     string
		expected string
	}{
		{"all three parts", "John", "Quincy", "Smith", "John Quincy Smith"},
		{"no middle name", "John", "", "Smith", "John Smith"},
		{"first only", "Cher", "", "", "Cher"},
		{"whitespace-only parts dropped", "John", "  ", "Smith", "John Smith"},
		{"parts trimmed", " John ", "", " Smith ", "John Smith"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FullName(tt.first, tt.middle, tt.last))
		})
	}
}

func TestDeriveFullName(t *testing.T) {
	ch := &Character{FirstName: "Jane", LastName: "Doe"}
	DeriveFullName(ch)
	assert.Equal(t, "Jane Doe", ch.FullName)

	// changing a part and re-deriving updates the stored name
	ch.LastName = "Eyre"
	DeriveFullName(ch)
	assert.Equal(t, "Jane Eyre", ch.FullName)

	// nil is a no-op, not a panic
	DeriveFullName(nil)
}
