package dto

import "github.com/DJRGVC/Noter/domain"

type AskRequest struct {
	Question string               `json:"question" binding:"required"`
	Context  string               `json:"context"`
	History  []domain.ChatMessage `json:"history"`
}

type NoteQuestionRequest struct {
	Question    string `json:"question" binding:"required"`
	NoteContent string `json:"noteContent" binding:"required"`
	NoteTitle   string `json:"noteTitle"`
}

type NoteAnswerResponse struct {
	Answer string `json:"answer"`
}
