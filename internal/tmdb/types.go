// Package tmdb provides a client for The Movie Database search API.
package tmdb

const imageBaseURL = "https://image.tmdb.org/t/p/"

// posterSize is the TMDB size label used for poster URLs.
const posterSize = "w780"

// Result is a unified TMDB search result for a movie or TV show.
type Result struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	OriginalTitle    string `json:"original_title"`
	Description      string `json:"description"`
	ReleaseDate      string `json:"release_date"` // "1999-03-31"
	PosterURL        string `json:"poster_url,omitempty"`
	BackdropURL      string `json:"backdrop_url,omitempty"`
	OriginalLanguage string `json:"original_language"`
}

// movieResult is a raw /search/movie row.
type movieResult struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	PosterPath       *string `json:"poster_path"`
	BackdropPath     *string `json:"backdrop_path"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	OriginalLanguage string  `json:"original_language"`
}

// tvResult is a raw /search/tv row. TV shows use name/first_air_date.
type tvResult struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	OriginalName     string  `json:"original_name"`
	Overview         string  `json:"overview"`
	FirstAirDate     string  `json:"first_air_date"`
	PosterPath       *string `json:"poster_path"`
	BackdropPath     *string `json:"backdrop_path"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	OriginalLanguage string  `json:"original_language"`
}

type searchResponse[T any] struct {
	Page         int `json:"page"`
	Results      []T `json:"results"`
	TotalResults int `json:"total_results"`
	TotalPages   int `json:"total_pages"`
}

func imageURL(path *string, size string) string {
	if path == nil || *path == "" {
		return ""
	}
	return imageBaseURL + size + *path
}

func (m movieResult) unified() *Result {
	return &Result{
		ID:               m.ID,
		Title:            m.Title,
		OriginalTitle:    m.OriginalTitle,
		Description:      m.Overview,
		ReleaseDate:      m.ReleaseDate,
		PosterURL:        imageURL(m.PosterPath, posterSize),
		BackdropURL:      imageURL(m.BackdropPath, "original"),
		OriginalLanguage: m.OriginalLanguage,
	}
}

func (t tvResult) unified() *Result {
	return &Result{
		ID:               t.ID,
		Title:            t.Name,
		OriginalTitle:    t.OriginalName,
		Description:      t.Overview,
		ReleaseDate:      t.FirstAirDate,
		PosterURL:        imageURL(t.PosterPath, posterSize),
		BackdropURL:      imageURL(t.BackdropPath, "original"),
		OriginalLanguage: t.OriginalLanguage,
	}
}
