package controllers

import (
	"encoding/json"

	"github.com/DJRGVC/Noter/application/ports/inbound"
	"github.com/DJRGVC/Noter/application/ports/outbound"
	"github.com/DJRGVC/Noter/domain"
	"github.com/DJRGVC/Noter/infrastructure/gin_interface/dto"
	"github.com/gin-gonic/gin"
)

type AnimationController interface {
	GenerateCode(c *gin.Context)
	GenerateTopicAnimation(c *gin.Context)
	RenderVideo(c *gin.Context)
	ServeVideo(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type animationController struct {
	logger   outbound.LoggerPort
	pipeline inbound.AnimationPipelinePort
	mediaDir string
}

func NewAnimationController(logger outbound.LoggerPort, pipeline inbound.AnimationPipelinePort, mediaDir string) AnimationController {
	return &animationController{
		logger:   logger,
		pipeline: pipeline,
		mediaDir: mediaDir,
	}
}

func (a *animationController) GenerateCode(c *gin.Context) {
	var codeRequest dto.CodeGenerationRequest
	if err := c.ShouldBindJSON(&codeRequest); err != nil {
		err = c.AbortWithError(400, err)
		if err != nil {
			a.logger.Error(err, "failed to abort with error")
		}
		return
	}

	code, err := a.pipeline.GenerateCode(c.Request.Context(), inbound.CodeGenParams{
		Prompt: codeRequest.Prompt,
		Model:  codeRequest.Model,
	})
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, dto.CodeResponse{Code: code})
}

func (a *animationController) GenerateTopicAnimation(c *gin.Context) {
	var topicRequest dto.TopicAnimationRequest
	if err := c.ShouldBindJSON(&topicRequest); err != nil {
		err = c.AbortWithError(400, err)
		if err != nil {
			a.logger.Error(err, "failed to abort with error")
		}
		return
	}

	code, err := a.pipeline.GenerateTopicCode(c.Request.Context(), inbound.TopicCodeParams{
		Topic:         topicRequest.Topic,
		Description:   topicRequest.Description,
		AnimationType: topicRequest.AnimationType,
		Duration:      topicRequest.Duration,
		QuizQuestions: topicRequest.QuizQuestions,
	})
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, dto.CodeResponse{Code: code})
}

func (a *animationController) RenderVideo(c *gin.Context) {
	var renderRequest dto.RenderVideoRequest
	if err := c.ShouldBindJSON(&renderRequest); err != nil {
		err = c.AbortWithError(400, err)
		if err != nil {
			a.logger.Error(err, "failed to abort with error")
		}
		return
	}

	params := inbound.RenderParams{
		Code:        renderRequest.Code,
		SceneName:   renderRequest.FileClass,
		AspectRatio: renderRequest.AspectRatio,
	}

	if renderRequest.Stream {
		a.renderStreaming(c, params)
		return
	}

	outcome, err := a.pipeline.RenderVideo(c.Request.Context(), params, nil)
	if err != nil {
		c.JSON(500, gin.H{"error": "Rendering failed", "details": err.Error()})
		return
	}

	c.JSON(200, dto.RenderVideoResponse{
		Message:  "Video rendered successfully",
		VideoURL: outcome.VideoURL,
		VideoKey: outcome.VideoKey,
		Region:   outcome.StoreRegion,
	})
}

// renderStreaming emits NDJSON progress lines as the engine reports them,
// followed by one terminal line carrying the video location or the error.
func (a *animationController) renderStreaming(c *gin.Context, params inbound.RenderParams) {
	c.Writer.Header().Set("Content-Type", "application/x-ndjson")
	c.Writer.Header().Set("Cache-Control", "no-cache")

	writeLine := func(payload interface{}) {
		line, err := json.Marshal(payload)
		if err != nil {
			a.logger.Error(err, "failed to marshal render progress")
			return
		}
		if _, err := c.Writer.Write(append(line, '\n')); err != nil {
			return
		}
		c.Writer.Flush()
	}

	outcome, err := a.pipeline.RenderVideo(c.Request.Context(), params, func(progress domain.RenderProgress) {
		writeLine(progress)
	})
	if err != nil {
		writeLine(gin.H{"error": "Rendering failed"})
		return
	}

	if outcome.VideoURL != "" {
		writeLine(gin.H{"video_url": outcome.VideoURL})
	} else {
		writeLine(gin.H{"video_key": outcome.VideoKey, "region": outcome.StoreRegion})
	}
}

func (a *animationController) ServeVideo(c *gin.Context) {
	c.FileFromFS(c.Param("filename"), gin.Dir(a.mediaDir, false))
}

func (a *animationController) RegisterRoutes(g *gin.Engine) {
	g.POST("/v1/code/generation", a.GenerateCode)
	g.POST("/api/generate-manim", a.GenerateTopicAnimation)
	g.POST("/api/generate-manim-custom", a.GenerateTopicAnimation)
	g.POST("/v1/video/rendering", a.RenderVideo)
	g.GET("/video/:filename", a.ServeVideo)
}
