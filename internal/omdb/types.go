// Package omdb provides a client for the OMDb API.
package omdb

import "strconv"

// Movie represents OMDb title metadata. Numeric-looking fields are strings
// because that is what the API returns ("N/A" is a common value).
type Movie struct {
	Title      string   `json:"Title"`
	Year       string   `json:"Year"`
	Rated      string   `json:"Rated"`
	Released   string   `json:"Released"`
	Runtime    string   `json:"Runtime"`
	Genre      string   `json:"Genre"`
	Director   string   `json:"Director"`
	Writer     string   `json:"Writer"`
	Actors     string   `json:"Actors"`
	Plot       string   `json:"Plot"`
	Language   string   `json:"Language"`
	Country    string   `json:"Country"`
	Awards     string   `json:"Awards"`
	Poster     string   `json:"Poster"`
	Ratings    []Rating `json:"Ratings"`
	Metascore  string   `json:"Metascore"`
	IMDBRating string   `json:"imdbRating"`
	IMDBVotes  string   `json:"imdbVotes"`
	IMDBID     string   `json:"imdbID"`
	Type       string   `json:"Type"` // "movie", "series", "episode"
	DVD        string   `json:"DVD,omitempty"`
	BoxOffice  string   `json:"BoxOffice,omitempty"`
	Production string   `json:"Production,omitempty"`
	Website    string   `json:"Website,omitempty"`
}

// Rating is a single review-source score, e.g. {"Internet Movie Database", "8.7/10"}.
type Rating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// YearInt extracts the first year from the Year field.
// Series report ranges like "2008-2013".
func (m *Movie) YearInt() int {
	s := m.Year
	if len(s) > 4 {
		s = s[:4]
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return year
}

// SearchResult is one row of an OMDb title search response.
type SearchResult struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDBID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// envelope wraps every OMDb response. Response is "True" or "False";
// on "False" Error carries the reason.
type envelope struct {
	Response string `json:"Response"`
	Error    string `json:"Error,omitempty"`
}

type searchResponse struct {
	envelope
	Search       []SearchResult `json:"Search"`
	TotalResults string         `json:"totalResults"`
}
