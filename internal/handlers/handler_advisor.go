package handlers

import (
	"io"
	"net/http"

	portssvc "github.com/SscSPs/finai_backend/internal/core/ports/services"
	"github.com/SscSPs/finai_backend/internal/dto"
	"github.com/SscSPs/finai_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// maxReceiptBytes caps uploaded receipt images.
const maxReceiptBytes = 8 << 20

type advisorHandler struct {
	advisorService portssvc.AdvisorSvcFacade
}

func registerAdvisorRoutes(rg *gin.RouterGroup, as portssvc.AdvisorSvcFacade) {
	h := &advisorHandler{advisorService: as}

	advisor := rg.Group("/advisor")
	{
		advisor.POST("/ask", h.ask)
		advisor.POST("/receipt", h.scanReceipt)
	}
}

// ask godoc
// @Summary Ask the financial advisor
// @Description Answers a question in Portuguese using the user's recent transactions as context
// @Tags advisor
// @Accept  json
// @Produce  json
// @Param   question body dto.AskAdvisorRequest true "Question"
// @Success 200 {object} dto.AskAdvisorResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 503 {object} ErrorResponse "Advisor not configured"
// @Security BearerAuth
// @Router /advisor/ask [post]
func (h *advisorHandler) ask(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	var req dto.AskAdvisorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	answer, err := h.advisorService.Ask(c.Request.Context(), userID, req.Question)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to ask the advisor")
		return
	}
	c.JSON(http.StatusOK, dto.AskAdvisorResponse{Answer: answer})
}

// scanReceipt godoc
// @Summary Read a receipt image
// @Description Extracts merchant, date, amount and a suggested category from a photo of a receipt
// @Tags advisor
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "Receipt image"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 400 {object} ErrorResponse "Missing or invalid image"
// @Failure 503 {object} ErrorResponse "Advisor not configured or the image could not be read"
// @Security BearerAuth
// @Router /advisor/receipt [post]
func (h *advisorHandler) scanReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := requireUser(c, logger); !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		bindError(c, logger, err)
		return
	}
	if fileHeader.Size > maxReceiptBytes {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Receipt image is too large"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		bindError(c, logger, err)
		return
	}
	defer f.Close()
	image, err := io.ReadAll(io.LimitReader(f, maxReceiptBytes))
	if err != nil {
		bindError(c, logger, err)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(image)
	}

	receipt, err := h.advisorService.ScanReceipt(c.Request.Context(), image, mimeType)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to read receipt")
		return
	}
	c.JSON(http.StatusOK, dto.ReceiptResponse{
		Merchant: receipt.Merchant,
		Date:     receipt.Date,
		Amount:   receipt.Amount,
		Category: receipt.Category,
	})
}
