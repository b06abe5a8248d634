package controllers

import (
	"github.com/DJRGVC/Noter/application/ports/inbound"
	"github.com/DJRGVC/Noter/application/ports/outbound"
	"github.com/DJRGVC/Noter/infrastructure/gin_interface/dto"
	"github.com/gin-gonic/gin"
)

type StudySetController interface {
	GenerateFlashcards(c *gin.Context)
	GenerateQuiz(c *gin.Context)
	EvaluateAnswers(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type studySetController struct {
	logger    outbound.LoggerPort
	generator inbound.StudySetGeneratorPort
}

func NewStudySetController(logger outbound.LoggerPort, generator inbound.StudySetGeneratorPort) StudySetController {
	return &studySetController{
		logger:    logger,
		generator: generator,
	}
}

func (s *studySetController) GenerateFlashcards(c *gin.Context) {
	var notebookRequest dto.NotebookRequest
	if err := c.ShouldBindJSON(&notebookRequest); err != nil {
		err = c.AbortWithError(400, err)
		if err != nil {
			s.logger.Error(err, "failed to abort with error")
		}
		return
	}

	title := notebookRequest.Title
	if title == "" {
		title = "Notes"
	}

	flashcards, err := s.generator.GenerateFlashcards(c.Request.Context(), inbound.NotebookParams{
		NotebookHTML: notebookRequest.NotebookHTML,
		Title:        title,
	})
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, dto.FlashcardsResponse{
		Flashcards: flashcards,
		Count:      len(flashcards),
		Title:      title,
	})
}

func (s *studySetController) GenerateQuiz(c *gin.Context) {
	var notebookRequest dto.NotebookRequest
	if err := c.ShouldBindJSON(&notebookRequest); err != nil {
		err = c.AbortWithError(400, err)
		if err != nil {
			s.logger.Error(err, "failed to abort with error")
		}
		return
	}

	title := notebookRequest.Title
	if title == "" {
		title = "Notes"
	}

	questions, err := s.generator.GenerateQuiz(c.Request.Context(), inbound.NotebookParams{
		NotebookHTML: notebookRequest.NotebookHTML,
		Title:        title,
	})
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, dto.QuizResponse{
		Questions: questions,
		Count:     len(questions),
		Title:     title,
	})
}

func (s *studySetController) EvaluateAnswers(c *gin.Context) {
	var evaluateRequest dto.EvaluateAnswersRequest
	if err := c.ShouldBindJSON(&evaluateRequest); err != nil {
		err = c.AbortWithError(400, err)
		if err != nil {
			s.logger.Error(err, "failed to abort with error")
		}
		return
	}

	submissions := make([]inbound.AnswerSubmission, 0, len(evaluateRequest.Questions))
	for _, question := range evaluateRequest.Questions {
		submissions = append(submissions, inbound.AnswerSubmission{
			Index:        question.Index,
			Question:     question.Question,
			SampleAnswer: question.SampleAnswer,
			UserAnswer:   question.UserAnswer,
		})
	}

	scores, err := s.generator.EvaluateAnswers(c.Request.Context(), submissions)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, dto.EvaluateAnswersResponse{Scores: scores})
}

func (s *studySetController) RegisterRoutes(g *gin.Engine) {
	g.POST("/api/generate-flashcards", s.GenerateFlashcards)
	g.POST("/api/generate-quiz", s.GenerateQuiz)
	g.POST("/api/evaluate-answers", s.EvaluateAnswers)
}
