// Package recipe exposes the generation flows over HTTP.
package recipe

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"pantry-chef/internal/core/pantry"
	"pantry-chef/internal/core/pipeline"
	recipeService "pantry-chef/internal/core/recipe"
	"pantry-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the recipe endpoints.
type Handler struct {
	service *recipeService.Service
}

// NewHandler creates the handler.
func NewHandler(service *recipeService.Service) *Handler {
	return &Handler{service: service}
}

// GenerateRequest is the body of POST /api/v1/recipe/generate.
type GenerateRequest struct {
	Query  string        `json:"query" binding:"required"`
	Pantry []pantry.Item `json:"pantry" binding:"required"`
	ChefID string        `json:"chef_id"`
}

// VideoRequest is the body of POST /api/v1/recipe/from-video.
type VideoRequest struct {
	MediaPath string        `json:"media_path" binding:"required"`
	Caption   string        `json:"caption"`
	Pantry    []pantry.Item `json:"pantry" binding:"required"`
	ChefID    string        `json:"chef_id"`
}

// ImportRequest is the body of POST /api/v1/recipe/import.
type ImportRequest struct {
	Text   string        `json:"text" binding:"required"`
	Pantry []pantry.Item `json:"pantry" binding:"required"`
}

// HandleGenerate builds a recipe from a free-text request.
func (h *Handler) HandleGenerate(c *gin.Context) {
	requestID := requestIDFrom(c)
	start := time.Now()

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, requestID, err)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeBadRequest(c, requestID, errors.New("query must not be blank"))
		return
	}

	common.LogInfo("recipe generation request",
		zap.String("request_id", requestID),
		zap.Int("pantry_items", len(req.Pantry)),
		zap.String("chef_id", req.ChefID),
	)

	result, err := h.service.GenerateFromQuery(c.Request.Context(), req.Query, req.Pantry, req.ChefID)
	if err != nil {
		writeError(c, requestID, err)
		return
	}

	writeResult(c, requestID, result, start)
}

// HandleVideo extracts a recipe from an uploaded cooking video.
func (h *Handler) HandleVideo(c *gin.Context) {
	requestID := requestIDFrom(c)
	start := time.Now()

	var req VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, requestID, err)
		return
	}

	common.LogInfo("video recipe request",
		zap.String("request_id", requestID),
		zap.String("media_path", req.MediaPath),
		zap.Int("pantry_items", len(req.Pantry)),
	)

	result, err := h.service.GenerateFromVideo(c.Request.Context(), req.MediaPath, req.Caption, req.Pantry, req.ChefID)
	if err != nil {
		writeError(c, requestID, err)
		return
	}

	writeResult(c, requestID, result, start)
}

// HandleImport extracts and pantry-adapts a recipe from raw webpage text.
func (h *Handler) HandleImport(c *gin.Context) {
	requestID := requestIDFrom(c)
	start := time.Now()

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, requestID, err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeBadRequest(c, requestID, errors.New("text must not be blank"))
		return
	}

	common.LogInfo("web import request",
		zap.String("request_id", requestID),
		zap.Int("text_length", len(req.Text)),
		zap.Int("pantry_items", len(req.Pantry)),
	)

	result, err := h.service.ImportFromWebText(c.Request.Context(), req.Text, req.Pantry)
	if err != nil {
		writeError(c, requestID, err)
		return
	}

	writeResult(c, requestID, result, start)
}

// HandleChefs lists the available persona ids.
func (h *Handler) HandleChefs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"chefs": h.service.ChefIDs()})
}

func requestIDFrom(c *gin.Context) string {
	if id := c.GetHeader("X-Request-ID"); id != "" {
		return id
	}
	return common.GenerateUUID()
}

func writeResult(c *gin.Context, requestID string, result *recipeService.Result, start time.Time) {
	common.LogInfo("recipe request served",
		zap.String("request_id", requestID),
		zap.String("title", result.Recipe.Title),
		zap.Int("warnings", len(result.Warnings)),
		zap.Bool("cache_hit", result.CacheHit),
		zap.Duration("duration", time.Since(start)),
	)
	c.JSON(http.StatusOK, result)
}

func writeBadRequest(c *gin.Context, requestID string, err error) {
	common.LogWarn("invalid request payload",
		zap.String("request_id", requestID),
		zap.Error(err),
	)
	c.JSON(http.StatusBadRequest, common.ErrorResponse{
		Code:    common.ErrCodeInvalidRequest,
		Message: "invalid request payload",
		Details: err.Error(),
	})
}

// writeError maps pipeline and service errors onto HTTP responses. Extraction
// and schema failures are the model's fault, not the caller's, so they map to
// 422 rather than 400.
func writeError(c *gin.Context, requestID string, err error) {
	var (
		extractionErr  *pipeline.ExtractionError
		schemaErr      *pipeline.SchemaError
		consistencyErr *pipeline.ConsistencyError
		customErr      *common.CustomError
	)

	status := http.StatusInternalServerError
	code := common.ErrCodeInternalError
	message := "internal server error"

	switch {
	case errors.As(err, &extractionErr):
		status = http.StatusUnprocessableEntity
		code = common.ErrCodeExtractionFailed
		message = "no JSON object could be recovered from the model response"
	case errors.As(err, &schemaErr):
		status = http.StatusUnprocessableEntity
		code = common.ErrCodeSchemaInvalid
		message = "model response failed schema validation"
	case errors.As(err, &consistencyErr):
		status = http.StatusInternalServerError
		code = common.ErrCodeConsistencyFault
		message = "ingredient binding desynchronized"
	case errors.As(err, &customErr):
		status = customErr.Status
		code = customErr.Code
		message = customErr.Message
	}

	common.LogError("recipe request failed",
		zap.String("request_id", requestID),
		zap.String("code", code),
		zap.Int("status", status),
		zap.Error(err),
	)

	c.JSON(status, common.ErrorResponse{
		Code:    code,
		Message: message,
		Details: err.Error(),
	})
}
