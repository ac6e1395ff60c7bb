package worlds

type GroupInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type GroupStoriesInput struct {
	StoryIDs []uint `json:"story_ids"`
}

type GroupCharactersInput struct {
	CharacterIDs []uint `json:"character_ids"`
}
