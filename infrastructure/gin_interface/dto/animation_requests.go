package dto

import "github.com/DJRGVC/Noter/domain"

type CodeGenerationRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	Model  string `json:"model"`
}

type CodeResponse struct {
	Code string `json:"code"`
}

type TopicAnimationRequest struct {
	Topic         string                `json:"topic" binding:"required"`
	Description   string                `json:"description"`
	AnimationType string                `json:"animation_type"`
	Duration      int                   `json:"duration"`
	QuizQuestions []domain.QuizQuestion `json:"quiz_questions"`
}

type RenderVideoRequest struct {
	Code        string `json:"code" binding:"required"`
	FileClass   string `json:"file_class"`
	AspectRatio string `json:"aspect_ratio"`
	Stream      bool   `json:"stream"`
}

type RenderVideoResponse struct {
	Message  string `json:"message"`
	VideoURL string `json:"video_url,omitempty"`
	VideoKey string `json:"video_key,omitempty"`
	Region   string `json:"region,omitempty"`
}
