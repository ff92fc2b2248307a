package domain

// Project is a portfolio entry.
//
// Intro, Implementation and the image slots are nullable so that the backfill
// script can distinguish "never set" from "deliberately empty".
type Project struct {
	ProjectID      string  `json:"projectID"`
	Title          string  `json:"title"`
	Slug           string  `json:"slug"`
	Summary        string  `json:"summary"`
	Description    string  `json:"description"`
	Intro          *string `json:"intro,omitempty"`
	Implementation *string `json:"implementation,omitempty"`
	Image1         *string `json:"image1,omitempty"`
	Image2         *string `json:"image2,omitempty"`
	Image3         *string `json:"image3,omitempty"`
	Image4         *string `json:"image4,omitempty"`
	Image5         *string `json:"image5,omitempty"`
	Image6         *string `json:"image6,omitempty"`
	Image7         *string `json:"image7,omitempty"`
	Image8         *string `json:"image8,omitempty"`
	LiveURL        string  `json:"liveUrl,omitempty"`
	RepoURL        string  `json:"repoUrl,omitempty"`
	SortOrder      int     `json:"sortOrder"`
	Featured       bool    `json:"featured"`
	Timestamps
}
