package writing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenreChoicesShape(t *testing.T) {
	assert.Len(t, GenreChoices, 23)
	// "Other" is the escape hatch and stays at the end of the list
	assert.Equal(t, GenreOther, GenreChoices[len(GenreChoices)-1])
}

func TestPersonalityChoicesShape(t *testing.T) {
	assert.Len(t, MBTIChoices, 16)
	assert.Len(t, EnneagramChoices, 9)
}

func TestValidGenreChoice(t *testing.T) {
	assert.True(t, ValidGenreChoice("Fantasy"))
	assert.True(t, ValidGenreChoice(GenreOther))
	assert.False(t, ValidGenreChoice("fantasy")) // case-sensitive
	assert.False(t, ValidGenreChoice(""))
	assert.False(t, ValidGenreChoice("Cyberpunk"))
}

func TestValidPersonalityChoices(t *testing.T) {
	// empty means "not set" and is always acceptable
	assert.True(t, ValidMBTIChoice(""))
	assert.True(t, ValidEnneagramChoice(""))

	assert.True(t, ValidMBTIChoice("INTJ: The Architect"))
	assert.False(t, ValidMBTIChoice("INTJ"))

	assert.True(t, ValidEnneagramChoice("9: The Peacemaker"))
	assert.False(t, ValidEnneagramChoice("10: The Extra"))
}
