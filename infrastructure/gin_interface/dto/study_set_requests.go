package dto

import "github.com/DJRGVC/Noter/domain"

type NotebookRequest struct {
	NotebookHTML string `json:"notebook_html" binding:"required"`
	Title        string `json:"title"`
}

type FlashcardsResponse struct {
	Flashcards []domain.Flashcard `json:"flashcards"`
	Count      int                `json:"count"`
	Title      string             `json:"title"`
}

type QuizResponse struct {
	Questions []domain.QuizQuestion `json:"questions"`
	Count     int                   `json:"count"`
	Title     string                `json:"title"`
}

type EvaluateAnswersRequest struct {
	Questions []AnswerSubmissionRequest `json:"questions" binding:"required"`
}

type AnswerSubmissionRequest struct {
	Index        int    `json:"index"`
	Question     string `json:"question"`
	SampleAnswer string `json:"sample_answer"`
	UserAnswer   string `json:"userAnswer"`
}

type EvaluateAnswersResponse struct {
	Scores map[int]domain.AnswerEvaluation `json:"scores"`
}
