package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DJRGVC/Noter/application/ports/inbound"
	"github.com/DJRGVC/Noter/application/ports/outbound"
	"github.com/DJRGVC/Noter/infrastructure/adapters"
)

type stubCompletion struct {
	reply string
	err   error
}

func (s *stubCompletion) Complete(_ context.Context, _ outbound.CompletionRequest) (string, error) {
	return s.reply, s.err
}

const testNotebook = `<html><body><h1>Cell Biology</h1>
<p>The mitochondria is the powerhouse of the cell.</p></body></html>`

func TestStudySetGenerator_GenerateFlashcards(t *testing.T) {
	completion := &stubCompletion{reply: "```json\n" + `{
  "flashcards": [
    {"question": "What is the powerhouse of the cell?", "answer": "The mitochondria."},
    {"question": "What does ATP stand for?", "answer": "Adenosine triphosphate."}
  ]
}` + "\n```"}

	generator := NewStudySetGenerator(adapters.NewZerologWrapper(), completion, nil)

	flashcards, err := generator.GenerateFlashcards(context.Background(), inbound.NotebookParams{
		NotebookHTML: testNotebook,
		Title:        "Cell Biology",
	})
	if err != nil {
		t.Fatal("Failed to generate flashcards:", err)
	}

	if len(flashcards) != 2 {
		t.Fatalf("expected 2 flashcards, got %d", len(flashcards))
	}
	if flashcards[0].Answer != "The mitochondria." {
		t.Fatalf("unexpected answer: %q", flashcards[0].Answer)
	}
}

func TestStudySetGenerator_GenerateFlashcards_EmptyNotebook(t *testing.T) {
	generator := NewStudySetGenerator(adapters.NewZerologWrapper(), &stubCompletion{}, nil)

	_, err := generator.GenerateFlashcards(context.Background(), inbound.NotebookParams{
		NotebookHTML: "",
		Title:        "Empty",
	})
	if err == nil {
		t.Fatal("expected an error for empty notebook content")
	}
}

func TestStudySetGenerator_GenerateQuiz(t *testing.T) {
	completion := &stubCompletion{reply: `{
  "questions": [
    {
      "type": "mcq",
      "question": "Which organelle produces ATP?",
      "options": ["Nucleus", "Mitochondria", "Ribosome", "Golgi"],
      "correct_answer": 1,
      "explanation": "Mitochondria run cellular respiration."
    },
    {
      "type": "free_response",
      "question": "Describe cellular respiration.",
      "sample_answer": "Glucose is oxidized to produce ATP."
    }
  ]
}`}

	generator := NewStudySetGenerator(adapters.NewZerologWrapper(), completion, nil)

	questions, err := generator.GenerateQuiz(context.Background(), inbound.NotebookParams{
		NotebookHTML: testNotebook,
		Title:        "Cell Biology",
	})
	if err != nil {
		t.Fatal("Failed to generate quiz:", err)
	}

	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].Type != "mcq" {
		t.Fatalf("unexpected question type: %q", questions[0].Type)
	}
	if questions[0].CorrectAnswer == nil || *questions[0].CorrectAnswer != 1 {
		t.Fatal("expected correct_answer index 1")
	}
	if questions[1].CorrectAnswer != nil {
		t.Fatal("free response question should have no correct_answer index")
	}
}

func TestStudySetGenerator_EvaluateAnswers(t *testing.T) {
	completion := &stubCompletion{reply: `{"score": 0.5, "feedback": "Partially correct."}`}

	generator := NewStudySetGenerator(adapters.NewZerologWrapper(), completion, nil)

	scores, err := generator.EvaluateAnswers(context.Background(), []inbound.AnswerSubmission{
		{Index: 0, Question: "Describe cellular respiration.", SampleAnswer: "Glucose is oxidized.", UserAnswer: "Something with glucose."},
		{Index: 1, Question: "What is ATP?", SampleAnswer: "The energy currency of the cell.", UserAnswer: ""},
	})
	if err != nil {
		t.Fatal("Failed to evaluate answers:", err)
	}

	if scores[0].Score != 0.5 || scores[0].Feedback != "Partially correct." {
		t.Fatalf("unexpected evaluation: %+v", scores[0])
	}
	if scores[1].Score != 0 || scores[1].Feedback != "No answer provided." {
		t.Fatalf("empty answer should score zero without a model call, got %+v", scores[1])
	}
}

func TestStudySetGenerator_EvaluateAnswers_CompletionFailure(t *testing.T) {
	generator := NewStudySetGenerator(adapters.NewZerologWrapper(), &stubCompletion{err: errors.New("model unavailable")}, nil)

	_, err := generator.EvaluateAnswers(context.Background(), []inbound.AnswerSubmission{
		{Index: 0, Question: "What is ATP?", SampleAnswer: "Energy currency.", UserAnswer: "A molecule."},
	})
	if err == nil {
		t.Fatal("expected completion failure to surface")
	}
}
