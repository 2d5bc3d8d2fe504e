package model

// Label is the verdict assigned to a single note.
type Label string

// Verdict labels.
const (
	LabelGenuine Label = "Genuine"
	LabelFake    Label = "Fake"
)

// ImageURL returns the static result image associated with the label.
func (l Label) ImageURL() string {
	if l == LabelGenuine {
		return "/images/genuine.png"
	}
	return "/images/fake.png"
}

// Prediction is the classifier's verdict for one note.
//
// Probability is the classifier's confidence in the assigned label, not the
// probability of the genuine class: a note labeled Fake with probability 0.9
// means the classifier is 90% confident the note is fake.
type Prediction struct {
	Label       Label    `json:"prediction"`
	ImageURL    string   `json:"image_url"`
	Features    Features `json:"features"`
	Probability float64  `json:"probability"`
	ID          int      `json:"id"`
}

// Result bundles the per-note predictions of one batch with their summary.
type Result struct {
	Predictions []Prediction `json:"predictions"`
	Stats       StatsSummary `json:"stats"`
}
