package inbound

import (
	"context"

	"github.com/DJRGVC/Noter/domain"
)

type NotebookParams struct {
	NotebookHTML string
	Title        string
}

type AnswerSubmission struct {
	Index        int
	Question     string
	SampleAnswer string
	UserAnswer   string
}

type StudySetGeneratorPort interface {
	GenerateFlashcards(ctx context.Context, params NotebookParams) ([]domain.Flashcard, error)
	GenerateQuiz(ctx context.Context, params NotebookParams) ([]domain.QuizQuestion, error)
	EvaluateAnswers(ctx context.Context, submissions []AnswerSubmission) (map[int]domain.AnswerEvaluation, error)
}
