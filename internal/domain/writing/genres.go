package writing

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOtherChoiceRequired means "Other" was selected without the
// companion free-text value. Handlers attach it to the other_choice
// field.
var ErrOtherChoiceRequired = errors.New("please specify your other genre choice")

// CleanGenres validates a submitted genre selection and applies the
// "Other" escape hatch: the literal "Other" entry is replaced in place
// by the companion text, preserving the order of the rest.
func CleanGenres(selected []string, otherChoice string) ([]string, error) {
	otherChoice = strings.TrimSpace(otherChoice)

	// a companion value without "Other" selected is just ignored
	cleaned := make([]string, 0, len(selected))

	for _, g := range selected {
		if !ValidGenreChoice(g) {
			return nil, fmt.Errorf("unknown genre: %s", g)
		}
		if g == GenreOther {
			if otherChoice == "" {
				return nil, ErrOtherChoiceRequired
			}
			cleaned = append(cleaned, otherChoice)
			continue
		}
		cleaned = append(cleaned, g)
	}

	return cleaned, nil
}
