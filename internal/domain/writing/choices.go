package writing

// Fixed choice tables offered by the forms. These are static data, not
// configuration: the UI renders them and the validation layer checks
// submissions against them.

// GenreOther is the escape-hatch option; picking it requires a free-text
// companion value that replaces it in the stored list.
const GenreOther = "Other"

var GenreChoices = []string{
	"Contemporary Fiction",
	"Literary Fiction",
	"Mystery",
	"Thriller",
	"Science Fiction",
	"Fantasy",
	"Romance",
	"Horror",
	"Crime",
	"Historical Fiction",
	"Young Adult",
	"Children's",
	"Memoir",
	"Biography",
	"Humor",
	"History",
	"True Crime",
	"Flash Fiction",
	"Erotica",
	"Comic",
	"Game",
	"Experimental",
	GenreOther,
}

var MBTIChoices = []string{
	"INTJ: The Architect",
	"INTP: The Logician",
	"ENTJ: The Commander",
	"ENTP: The Visionary",
	"INFJ: The Advocate",
	"INFP: The Idealist",
	"ENFJ: The Giver",
	"ENFP: The Enthusiast",
	"ISTJ: The Duty Fulfiller",
	"ISFJ: The Protector",
	"ESTJ: The Executive",
	"ESFJ: The Caregiver",
	"ISTP: The Craftsman",
	"ISFP: The Artist",
	"ESTP: The Doer",
	"ESFP: The Performer",
}

var EnneagramChoices = []string{
	"1: The Reformer",
	"2: The Helper",
	"3: The Achiever",
	"4: The Romantic",
	"5: The Investigator",
	"6: The Skeptic",
	"7: The Enthusiast",
	"8: The Challenger",
	"9: The Peacemaker",
}

func contains(choices []string, value string) bool {
	for _, c := range choices {
		if c == value {
			return true
		}
	}
	return false
}

// ValidGenreChoice reports whether value is one of the fixed genre
// options (including "Other").
func ValidGenreChoice(value string) bool {
	return contains(GenreChoices, value)
}

func ValidMBTIChoice(value string) bool {
	return value == "" || contains(MBTIChoices, value)
}

func ValidEnneagramChoice(value string) bool {
	return value == "" || contains(EnneagramChoices, value)
}
