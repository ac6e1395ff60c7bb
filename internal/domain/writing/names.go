package writing

import "strings"

// FullName joins the non-empty name parts with single spaces.
// ("John", "", "Smith") -> "John Smith"; ("Cher", "", "") -> "Cher".
func FullName(first, middle, last string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{first, middle, last} {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// DeriveFullName recomputes the derived name fields. Must run on every
// save, before EnsureCharacterSlug.
func DeriveFullName(character *Character) {
	if character == nil {
		return
	}
	character.FullName = FullName(character.FirstName, character.MiddleName, character.LastName)
}
