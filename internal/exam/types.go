package exam

import "time"

// CriterionScore is one graded IELTS writing criterion.
type CriterionScore struct {
	Score   float64 `json:"score"`
	Comment string  `json:"comment"`
}

// WritingFeedback is the result of one essay evaluation. Scores follow the
// IELTS 0-9 band scale by contract with the grading model; they are passed
// through unclamped.
type WritingFeedback struct {
	BandScore         float64        `json:"bandScore"`
	TaskResponse      CriterionScore `json:"taskResponse"`
	CoherenceCohesion CriterionScore `json:"coherenceCohesion"`
	LexicalResource   CriterionScore `json:"lexicalResource"`
	GrammaticalRange  CriterionScore `json:"grammaticalRange"`
	CorrectedVersion  string         `json:"correctedVersion"`
	GeneralAdvice     string         `json:"generalAdvice"`
}

// ReadingQuestion is one multiple-choice question. CorrectAnswer indexes
// Options, which always holds four entries.
type ReadingQuestion struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// ReadingPractice is one generated reading test.
type ReadingPractice struct {
	Title     string            `json:"title"`
	Passage   string            `json:"passage"`
	Questions []ReadingQuestion `json:"questions"`
}

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage is one transcript entry of a speaking exercise.
type ChatMessage struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
