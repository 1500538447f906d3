package catalog

// TotalLessons is the fixed course length for every subject.
const TotalLessons = 5

// Stage is a learning stage. Stages are ordered from PreSchool to Tertiary;
// the menu position of a stage is its index in the catalog's stage list.
type Stage struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

// Subject is a selectable course within a stage.
type Subject struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Stage       string `json:"stage"`
}

// Quiz is an optional multiple-choice check attached to a lesson.
type Quiz struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   int      `json:"answer"`
}

// Lesson is one unit of subject content.
type Lesson struct {
	Title    string `json:"title"`
	Theory   string `json:"theory"`
	Question string `json:"question"`
	Quiz     *Quiz  `json:"quiz,omitempty"`
}
