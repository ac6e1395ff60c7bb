package characters

type CharacterInput struct {
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`

	Gender     string `json:"gender"`
	Age        string `json:"age"`
	Ethnicity  string `json:"ethnicity"`
	Occupation string `json:"occupation"`
	Location   string `json:"location"`

	HairColor string `json:"hair_color"`
	EyeColor  string `json:"eye_color"`
	Height    string `json:"height"`
	BodyType  string `json:"body_type"`

	MBTIPersonality      string `json:"mbti_personality"`
	EnneagramPersonality string `json:"enneagram_personality"`

	Description string `json:"description"`
}

type CharacterListItem struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Slug     string `json:"slug"`
}
