package model

import "strconv"

type Classification struct {
	ID   int64  `json:"classification_id"`
	Name string `json:"classification_name"`
}

type Vehicle struct {
	ID               int64   `json:"inv_id"`
	Make             string  `json:"inv_make"`
	Model            string  `json:"inv_model"`
	Year             int     `json:"inv_year"`
	Description      string  `json:"inv_description"`
	Image            string  `json:"inv_image"`
	Thumbnail        string  `json:"inv_thumbnail"`
	Price            float64 `json:"inv_price"`
	Miles            int64   `json:"inv_miles"`
	Color            string  `json:"inv_color"`
	ClassificationID int64   `json:"classification_id"`
}

// Title renders the display name used in page titles and review headings,
// e.g. "2019 Ford Ranger".
func (v Vehicle) Title() string {
	return strconv.Itoa(v.Year) + " " + v.Make + " " + v.Model
}
