package models

import "time"

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Subject struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CategoryID string    `json:"categoryId"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Topic struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SubjectID string    `json:"subjectId"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type QuestionOption struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

type Question struct {
	ID            string           `json:"id"`
	TopicID       string           `json:"topicId"`
	Text          string           `json:"text"`
	Options       []QuestionOption `json:"options"`
	CorrectOption string           `json:"correctOption"`
	Difficulty    Difficulty       `json:"difficulty"`
	Explanation   string           `json:"explanation,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// MockTest is a configured practice exam.
type MockTest struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	CategoryID      string    `json:"categoryId"`
	DurationMinutes int       `json:"durationMinutes"`
	TotalMarks      float64   `json:"totalMarks"`
	NegativeMarking float64   `json:"negativeMarking"`
	QuestionIDs     []string  `json:"questionIds,omitempty"`
	IsPublished     bool      `json:"isPublished"`
	CreatedAt       time.Time `json:"createdAt"`
}
