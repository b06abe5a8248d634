package inbound

import (
	"context"

	"github.com/DJRGVC/Noter/domain"
)

type CodeGenParams struct {
	Prompt string
	Model  string
}

type TopicCodeParams struct {
	Topic         string
	Description   string
	AnimationType string
	Duration      int
	QuizQuestions []domain.QuizQuestion
}

type RenderParams struct {
	Code        string
	SceneName   string
	AspectRatio string
}

type RenderOutcome struct {
	VideoURL    string
	VideoKey    string
	StoreRegion string
}

type AnimationPipelinePort interface {
	GenerateCode(ctx context.Context, params CodeGenParams) (string, error)
	GenerateTopicCode(ctx context.Context, params TopicCodeParams) (string, error)
	RenderVideo(ctx context.Context, params RenderParams, onProgress func(domain.RenderProgress)) (*RenderOutcome, error)
}
