package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/DJRGVC/Noter/application/ports/inbound"
	"github.com/DJRGVC/Noter/application/ports/outbound"
	"github.com/DJRGVC/Noter/domain"
	"github.com/DJRGVC/Noter/markdown_utils"
)

const manimSystemPrompt = `
You are an assistant that knows about Manim. Manim is a mathematical animation engine that is used to create videos programmatically.

The following is an example of the code:
` + "```" + `
from manim import *
from math import *

class GenScene(Scene):
    def construct(self):
        c = Circle(color=BLUE)
        self.play(Create(c))
` + "```" + `

# Rules
1. Always use GenScene as the class name, otherwise, the code will not work.
2. Always use self.play() to play the animation, otherwise, the code will not work.
3. Do not use text to explain the code, only the code.
4. Do not explain the code, only the code.
5. Create educational and visually appealing animations.
`

const topicCodePrompt = `Generate Manim (Mathematical Animation Engine) Python code for an educational animation.

Topic: %s
Description: %s
Animation Type: %s
Target Duration: %d seconds

Key concepts to cover:
%s

Requirements:
1. Create a complete, runnable Manim scene class
2. Use Manim Community Edition syntax
3. Include proper imports from manim
4. Use engaging animations (Write, FadeIn, Transform, Create, etc.)
5. Add colors and styling for visual appeal
6. Include detailed comments explaining each section
7. Make it educational and easy to understand
8. Use self.play() with appropriate run_time parameters
9. Include a title at the beginning

Return ONLY the complete Python code, no markdown formatting or explanations.`

type animationPipeline struct {
	logger     outbound.LoggerPort
	completion outbound.CompletionPort
	renderer   outbound.AnimationRendererPort
	publisher  outbound.VideoPublisherPort
	baseURL    string
}

func NewAnimationPipeline(logger outbound.LoggerPort, completion outbound.CompletionPort,
	renderer outbound.AnimationRendererPort, publisher outbound.VideoPublisherPort, baseURL string) inbound.AnimationPipelinePort {
	return &animationPipeline{
		logger:     logger,
		completion: completion,
		renderer:   renderer,
		publisher:  publisher,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (p *animationPipeline) GenerateCode(ctx context.Context, params inbound.CodeGenParams) (string, error) {
	if params.Prompt == "" {
		return "", fmt.Errorf("prompt is required")
	}

	reply, err := p.completion.Complete(ctx, outbound.CompletionRequest{
		Prompt:    params.Prompt,
		System:    manimSystemPrompt,
		Model:     params.Model,
		MaxTokens: 4096,
	})
	if err != nil {
		p.logger.Error(err, "animation code generation failed")
		return "", err
	}

	return markdown_utils.ExtractFencedBlock(reply, "python"), nil
}

func (p *animationPipeline) GenerateTopicCode(ctx context.Context, params inbound.TopicCodeParams) (string, error) {
	if params.Topic == "" {
		return "", fmt.Errorf("topic is required")
	}

	animationType := params.AnimationType
	if animationType == "" {
		animationType = "educational"
	}
	duration := params.Duration
	if duration <= 0 {
		duration = 60
	}

	var concepts []string
	for i, question := range params.QuizQuestions {
		if i >= 5 {
			break
		}
		if question.Type == domain.MultipleChoiceQuestion {
			concepts = append(concepts, "- "+question.Question)
		}
	}

	reply, err := p.completion.Complete(ctx, outbound.CompletionRequest{
		Prompt:    fmt.Sprintf(topicCodePrompt, params.Topic, params.Description, animationType, duration, strings.Join(concepts, "\n")),
		System:    manimSystemPrompt,
		MaxTokens: 4096,
	})
	if err != nil {
		p.logger.Error(err, "topic animation code generation failed")
		return "", err
	}

	return markdown_utils.ExtractFencedBlock(reply, "python"), nil
}

func (p *animationPipeline) RenderVideo(ctx context.Context, params inbound.RenderParams, onProgress func(domain.RenderProgress)) (*inbound.RenderOutcome, error) {
	if params.Code == "" {
		return nil, fmt.Errorf("code is required")
	}

	sceneName := params.SceneName
	if sceneName == "" {
		sceneName = "GenScene"
	}

	rendered, err := p.renderer.Render(ctx, outbound.RenderVideoRequest{
		Code:        params.Code,
		SceneName:   sceneName,
		AspectRatio: params.AspectRatio,
	}, onProgress)
	if err != nil {
		p.logger.Error(err, "animation rendering failed")
		return nil, err
	}

	if p.publisher != nil {
		published, err := p.publisher.Publish(ctx, outbound.PublishVideoRequest{
			VideoFileName: rendered.VideoFileName,
			SceneName:     sceneName,
		})
		if err != nil {
			p.logger.Error(err, "failed to publish rendered video")
			return nil, err
		}
		return &inbound.RenderOutcome{
			VideoKey:    published.VideoKey,
			StoreRegion: published.StoreRegion,
		}, nil
	}

	return &inbound.RenderOutcome{
		VideoURL: p.baseURL + "/video/" + sceneName + ".mp4",
	}, nil
}
