package handlers

import (
	"net/http"

	"github.com/SscSPs/finai_backend/internal/core/domain"
	portssvc "github.com/SscSPs/finai_backend/internal/core/ports/services"
	"github.com/SscSPs/finai_backend/internal/dto"
	"github.com/SscSPs/finai_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type overviewHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// registerOverviewRoutes registers the month picker, the dashboard and the category list.
func registerOverviewRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade) {
	h := &overviewHandler{transactionService: ts}

	rg.GET("/months", h.listMonths)
	rg.GET("/dashboard", h.getDashboard)
	rg.GET("/categories", h.listCategories)
}

// listMonths godoc
// @Summary Month picker
// @Description Lists count months starting at the current one; later months are flagged as future
// @Tags overview
// @Produce  json
// @Param   count query int false "Number of months" default(12)
// @Success 200 {object} dto.MonthOptionsResponse
// @Failure 400 {object} ErrorResponse "Invalid count"
// @Security BearerAuth
// @Router /months [get]
func (h *overviewHandler) listMonths(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.MonthOptionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.MonthOptionsResponse{
		Months: h.transactionService.ListMonthOptions(c.Request.Context(), params.Count),
	})
}

// getDashboard godoc
// @Summary Dashboard
// @Description Totals, expenses by category, six months of cash flow and the latest transactions
// @Tags overview
// @Produce  json
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /dashboard [get]
func (h *overviewHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	dash, err := h.transactionService.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardResponse(dash))
}

// listCategories godoc
// @Summary Suggested categories
// @Tags overview
// @Produce  json
// @Success 200 {object} dto.CategoriesResponse
// @Security BearerAuth
// @Router /categories [get]
func (h *overviewHandler) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, dto.CategoriesResponse{Categories: domain.DefaultCategories})
}
