package models

// ScoreCard holds the 0-100 ratings an ATS review starts with.
type ScoreCard struct {
	ATS       int `json:"atsScore"`
	ToneStyle int `json:"toneStyle"`
	Content   int `json:"content"`
	Structure int `json:"structure"`
	Skills    int `json:"skills"`
	Overall   int `json:"overall"`
}

type CategoryFeedback struct {
	Category    string   `json:"category"`
	Score       int      `json:"score"`
	Feedback    string   `json:"feedback"`
	Suggestions []string `json:"suggestions"`
}

type Report struct {
	Scores      ScoreCard          `json:"scores"`
	Categories  []CategoryFeedback `json:"categories"`
	Analysis    string             `json:"analysis"`
	ScannedText string             `json:"scannedText,omitempty"`
	Model       string             `json:"model"`
	Language    string             `json:"language"`
}
