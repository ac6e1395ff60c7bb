package plot

type PlotInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type PlotPointInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type PlotPointListItem struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}
