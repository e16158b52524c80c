package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stevelee-cq/PDF-Word-extraction/pkg/extract"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/models"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/report"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/services"
)

// HealthCheck reports service liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// StartExtraction starts a new extraction job
func StartExtraction(service *services.ExtractionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ExtractionCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		extraction, err := service.Start(req.Path, req.StartPage, req.EndPage)
		if err != nil {
			status, msg := startErrorStatus(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}

		c.JSON(http.StatusCreated, extraction)
	}
}

// startErrorStatus maps a Start failure to an HTTP status and message.
func startErrorStatus(err error) (int, string) {
	if errors.Is(err, services.ErrBusy) {
		return http.StatusConflict, err.Error()
	}

	var xerr *extract.Error
	if errors.As(err, &xerr) {
		switch xerr.Type {
		case extract.ErrorTypeInvalidRange:
			return http.StatusBadRequest, xerr.UserMessage()
		case extract.ErrorTypeDocumentOpen:
			return http.StatusNotFound, xerr.UserMessage()
		}
	}
	return http.StatusInternalServerError, err.Error()
}

// GetExtraction returns the state and progress of a job
func GetExtraction(service *services.ExtractionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := extractionID(c)
		if !ok {
			return
		}

		extraction, err := service.Get(id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, extraction)
	}
}

// GetExtractionResult returns the ranked words of a succeeded job.
// Until the job is terminal the result is not readable (409).
func GetExtractionResult(service *services.ExtractionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := extractionID(c)
		if !ok {
			return
		}

		result, err := service.Result(id)
		if err != nil {
			c.JSON(resultErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// GetExtractionReport returns the plain-text frequency report of a
// succeeded job
func GetExtractionReport(service *services.ExtractionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := extractionID(c)
		if !ok {
			return
		}

		counter, err := service.Counter(id)
		if err != nil {
			c.JSON(resultErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Type", "text/plain; charset=utf-8")
		c.Status(http.StatusOK)
		if err := report.Write(c.Writer, counter); err != nil {
			_ = c.Error(err)
		}
	}
}

// CancelExtraction requests early termination of a running job
func CancelExtraction(service *services.ExtractionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := extractionID(c)
		if !ok {
			return
		}

		if err := service.Cancel(id); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "cancellation requested"})
	}
}

func extractionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid extraction ID"})
		return uuid.Nil, false
	}
	return id, true
}

func resultErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNotFinished), errors.Is(err, services.ErrNoResult):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
