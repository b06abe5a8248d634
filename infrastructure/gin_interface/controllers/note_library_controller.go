package controllers

import (
	"github.com/DJRGVC/Noter/application/ports/inbound"
	"github.com/DJRGVC/Noter/application/ports/outbound"
	"github.com/DJRGVC/Noter/infrastructure/gin_interface/dto"
	"github.com/gin-gonic/gin"
)

type NoteLibraryController interface {
	ListNotes(c *gin.Context)
	CreateClass(c *gin.Context)
	Health(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type noteLibraryController struct {
	logger  outbound.LoggerPort
	library inbound.NoteLibraryPort
}

func NewNoteLibraryController(logger outbound.LoggerPort, library inbound.NoteLibraryPort) NoteLibraryController {
	return &noteLibraryController{
		logger:  logger,
		library: library,
	}
}

func (n *noteLibraryController) ListNotes(c *gin.Context) {
	catalog, err := n.library.ListNotes(c.Request.Context())
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, catalog)
}

func (n *noteLibraryController) CreateClass(c *gin.Context) {
	var createRequest dto.CreateClassRequest
	if err := c.ShouldBindJSON(&createRequest); err != nil {
		err = c.AbortWithError(400, err)
		if err != nil {
			n.logger.Error(err, "failed to abort with error")
		}
		return
	}

	result, err := n.library.CreateClass(c.Request.Context(), createRequest.ClassName)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, dto.CreateClassResponse{
		Success:   true,
		ClassName: result.ClassName,
		Path:      result.Path,
	})
}

func (n *noteLibraryController) Health(c *gin.Context) {
	c.JSON(200, gin.H{
		"status": "healthy",
		"services": gin.H{
			"claude":   "connected",
			"fish_tts": "ready",
		},
	})
}

func (n *noteLibraryController) RegisterRoutes(g *gin.Engine) {
	g.GET("/api/list-notes", n.ListNotes)
	g.POST("/api/create-class", n.CreateClass)
	g.GET("/health", n.Health)
}
