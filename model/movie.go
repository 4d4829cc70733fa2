package model

type Movie struct {
	Id          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Duration    int      `json:"duration"`
	Image       string   `json:"image"`
	Category    []string `json:"category"`
	Languages   []string `json:"languages"`
}

// MovieDetail is the /movies/{id} response: the movie plus the theaters
// currently carrying it.
type MovieDetail struct {
	Movie
	Theaters []Theater `json:"theaters"`
}
