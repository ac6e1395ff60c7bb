package writing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanGenres(t *testing.T) {
	tests := []struct {
		name        string
		selected    []string
		otherChoice string
		expected    []string
		wantErr     error
	}{
		{
			name:     "plain selection passes through",
			selected: []string{"Fantasy", "Horror"},
			expected: []string{"Fantasy", "Horror"},
		},
		{
			name:        "other replaced in place",
			selected:    []string{"Fantasy", "Other", "Horror"},
			otherChoice: "Cyberpunk",
			expected:    []string{"Fantasy", "Cyberpunk", "Horror"},
		},
		{
			name:        "companion value trimmed",
			selected:    []string{"Other"},
			otherChoice: "  Solarpunk  ",
			expected:    []string{"Solarpunk"},
		},
		{
			name:     "other without companion",
			selected: []string{"Fantasy", "Other"},
			wantErr:  ErrOtherChoiceRequired,
		},
		{
			name:        "companion without other is ignored",
			selected:    []string{"Fantasy"},
			otherChoice: "Cyberpunk",
			expected:    []string{"Fantasy"},
		},
		{
			name:     "empty selection allowed",
			selected: nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanGenres(tt.selected, tt.otherChoice)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCleanGenresUnknownGenre(t *testing.T) {
	_, err := CleanGenres([]string{"Fantasy", "Vaporwave"}, "")
	assert.ErrorContains(t, err, "unknown genre: Vaporwave")
}
