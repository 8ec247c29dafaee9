package models

// ConceptItem is the left column entry of a section.
type ConceptItem struct {
	RowKey    string `json:"row_key,omitempty"`
	Number    string `json:"number,omitempty"`
	Label     string `json:"label"`
	Frequency int    `json:"frequency"`
	Body      string `json:"body"`
	BodyHTML  string `json:"body_html"`
	ImageURL  string `json:"image_url,omitempty"`
	First     bool   `json:"first"`
	Favorite  bool   `json:"favorite"`
}

// ProblemItem is the right column entry of a section.
type ProblemItem struct {
	RowKey     string `json:"row_key,omitempty"`
	Number     string `json:"number,omitempty"`
	Text       string `json:"text"`
	TextHTML   string `json:"text_html"`
	Answer     string `json:"answer"`
	AnswerHTML string `json:"answer_html"`
	ImageURL   string `json:"image_url,omitempty"`
	Years      string `json:"years,omitempty"`
	First      bool   `json:"first"`
}

// Section groups the rows that share a group id.
type Section struct {
	GroupID      string        `json:"group_id"`
	MainCategory string        `json:"main_category"`
	MainHeader   string        `json:"main_header,omitempty"`
	Title        string        `json:"title"`
	Concepts     []ConceptItem `json:"concepts"`
	Problems     []ProblemItem `json:"problems"`
}

// NotesView is everything needed to render one notes document.
type NotesView struct {
	Title    string    `json:"title"`
	Filter   Filter    `json:"filter"`
	Sections []Section `json:"sections"`
	RowCount int       `json:"row_count"`
}
