package scenes

type SceneInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	// Order of the plot point this scene covers, if any. Null clears
	// the reference.
	PlotPointOrder *int `json:"plot_point_order"`
}

type SceneNoteInput struct {
	Note string `json:"note" binding:"required,max=500"`
}

type SceneCharactersInput struct {
	CharacterSlugs []string `json:"character_slugs"`
}

type SceneListItem struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Order int    `json:"order"`
}
