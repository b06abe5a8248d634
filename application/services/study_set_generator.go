package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/DJRGVC/Noter/application/ports/inbound"
	"github.com/DJRGVC/Noter/application/ports/outbound"
	"github.com/DJRGVC/Noter/domain"
	"github.com/DJRGVC/Noter/html_utils"
	"github.com/DJRGVC/Noter/markdown_utils"
	"github.com/google/uuid"
)

const notebookTextLimit = 8000

const flashcardPrompt = `Based on these notes titled %q, generate 10 flashcards to help students study.

NOTES:
%s

You MUST respond with ONLY valid JSON in exactly this format, with no additional text before or after:
{
  "flashcards": [
    {
      "question": "question here",
      "answer": "answer here"
    }
  ]
}

Make questions clear and answers concise but informative. Return ONLY the JSON, nothing else.`

const quizPrompt = `Based on these notes titled %q, generate 5 quiz questions (mix of multiple choice and free response).

NOTES:
%s

You MUST respond with ONLY valid JSON in exactly this format, with no additional text before or after:
{
  "questions": [
    {
      "type": "mcq",
      "question": "question text",
      "options": ["option1", "option2", "option3", "option4"],
      "correct_answer": 0,
      "explanation": "explanation"
    },
    {
      "type": "free_response",
      "question": "question text",
      "sample_answer": "sample answer"
    }
  ]
}

Make 3 multiple choice and 2 free response questions. Return ONLY the JSON, nothing else.`

const evaluationPrompt = `Evaluate this student's answer:

Question: %s

Student's Answer: %s

Sample Answer: %s

Give a score from 0 to 1 (0 = completely wrong, 0.5 = partially correct, 1 = fully correct).
Provide brief feedback.

Respond in JSON:
{
  "score": 0.0,
  "feedback": "feedback here"
}`

type studySetGenerator struct {
	logger     outbound.LoggerPort
	completion outbound.CompletionPort
	cache      outbound.StudySetCachePort
}

func NewStudySetGenerator(logger outbound.LoggerPort, completion outbound.CompletionPort,
	cache outbound.StudySetCachePort) inbound.StudySetGeneratorPort {
	return &studySetGenerator{
		logger:     logger,
		completion: completion,
		cache:      cache,
	}
}

func (g *studySetGenerator) GenerateFlashcards(ctx context.Context, params inbound.NotebookParams) ([]domain.Flashcard, error) {
	notesText := notebookText(params.NotebookHTML)
	if notesText == "" {
		return nil, fmt.Errorf("notebook content is empty")
	}

	reply, err := g.completion.Complete(ctx, outbound.CompletionRequest{
		Prompt:    fmt.Sprintf(flashcardPrompt, params.Title, notesText),
		MaxTokens: 4096,
	})
	if err != nil {
		g.logger.Error(err, "flashcard generation failed")
		return nil, err
	}

	var parsed struct {
		Flashcards []domain.Flashcard `json:"flashcards"`
	}
	if err := json.Unmarshal([]byte(markdown_utils.ExtractFencedBlock(reply, "json")), &parsed); err != nil {
		g.logger.ErrorWithFields(err, "failed to parse flashcard reply", map[string]interface{}{
			"reply_prefix": truncate(reply, 200),
		})
		return nil, fmt.Errorf("failed to parse flashcards: %w", err)
	}

	g.cacheStudySet(ctx, params.Title, domain.FlashcardStudySet, len(parsed.Flashcards), parsed.Flashcards)

	return parsed.Flashcards, nil
}

func (g *studySetGenerator) GenerateQuiz(ctx context.Context, params inbound.NotebookParams) ([]domain.QuizQuestion, error) {
	notesText := notebookText(params.NotebookHTML)
	if notesText == "" {
		return nil, fmt.Errorf("notebook content is empty")
	}

	reply, err := g.completion.Complete(ctx, outbound.CompletionRequest{
		Prompt:    fmt.Sprintf(quizPrompt, params.Title, notesText),
		MaxTokens: 4096,
	})
	if err != nil {
		g.logger.Error(err, "quiz generation failed")
		return nil, err
	}

	var parsed struct {
		Questions []domain.QuizQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(markdown_utils.ExtractFencedBlock(reply, "json")), &parsed); err != nil {
		g.logger.ErrorWithFields(err, "failed to parse quiz reply", map[string]interface{}{
			"reply_prefix": truncate(reply, 200),
		})
		return nil, fmt.Errorf("failed to parse quiz questions: %w", err)
	}

	g.cacheStudySet(ctx, params.Title, domain.QuizStudySet, len(parsed.Questions), parsed.Questions)

	return parsed.Questions, nil
}

func (g *studySetGenerator) EvaluateAnswers(ctx context.Context, submissions []inbound.AnswerSubmission) (map[int]domain.AnswerEvaluation, error) {
	scores := make(map[int]domain.AnswerEvaluation, len(submissions))

	for _, submission := range submissions {
		if submission.UserAnswer == "" {
			scores[submission.Index] = domain.AnswerEvaluation{
				Score:    0,
				Feedback: "No answer provided.",
			}
			continue
		}

		reply, err := g.completion.Complete(ctx, outbound.CompletionRequest{
			Prompt:    fmt.Sprintf(evaluationPrompt, submission.Question, submission.UserAnswer, submission.SampleAnswer),
			MaxTokens: 512,
		})
		if err != nil {
			g.logger.ErrorWithFields(err, "answer evaluation failed", map[string]interface{}{
				"index": submission.Index,
			})
			return nil, err
		}

		var evaluation domain.AnswerEvaluation
		if err := json.Unmarshal([]byte(markdown_utils.ExtractFencedBlock(reply, "json")), &evaluation); err != nil {
			g.logger.ErrorWithFields(err, "failed to parse evaluation reply", map[string]interface{}{
				"index": submission.Index,
			})
			scores[submission.Index] = domain.AnswerEvaluation{
				Score:    0,
				Feedback: "Could not evaluate answer.",
			}
			continue
		}
		scores[submission.Index] = evaluation
	}

	return scores, nil
}

// cacheStudySet is best-effort: a cache failure is logged, never surfaced.
func (g *studySetGenerator) cacheStudySet(ctx context.Context, title string, kind domain.StudySetKind, count int, payload interface{}) {
	if g.cache == nil {
		return
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		g.logger.Error(err, "failed to encode study set for caching")
		return
	}

	err = g.cache.Save(ctx, domain.StudySet{
		ID:        uuid.NewString(),
		Title:     title,
		Kind:      kind,
		ItemCount: count,
		Payload:   string(encoded),
	})
	if err != nil {
		g.logger.ErrorWithFields(err, "failed to cache study set", map[string]interface{}{
			"title": title,
			"kind":  kind,
		})
	}
}

func notebookText(notebookHTML string) string {
	text := html_utils.TextContent(notebookHTML)
	if len(text) > notebookTextLimit {
		text = text[:notebookTextLimit]
	}
	return text
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
