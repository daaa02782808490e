package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/crm_backend/internal/core/ports/services"
	"github.com/SscSPs/crm_backend/internal/dto"
	"github.com/SscSPs/crm_backend/internal/middleware"
	"github.com/SscSPs/crm_backend/internal/reports"
	"github.com/gin-gonic/gin"
)

// dealHandler handles HTTP requests related to deals.
type dealHandler struct {
	dealService portssvc.DealSvcFacade
}

func newDealHandler(ds portssvc.DealSvcFacade) *dealHandler {
	return &dealHandler{dealService: ds}
}

// registerDealRoutes registers all deal-related routes.
func registerDealRoutes(rg *gin.RouterGroup, dealService portssvc.DealSvcFacade) {
	h := newDealHandler(dealService)

	deals := rg.Group("/deals")
	{
		deals.GET("", h.listDeals)
		deals.POST("", h.createDeal)
		deals.GET("/stats", h.getDealStats)
		deals.GET("/stats/report", h.getDealStatsReport)
		deals.GET("/:id", h.getDeal)
		deals.PUT("/:id", h.updateDeal)
		deals.PATCH("/:id", h.updateDeal)
		deals.DELETE("/:id", h.deleteDeal)
	}
}

// listDeals godoc
// @Summary List deals
// @Description Lists deals ordered by ID. All supplied filters must match.
// @Tags deals
// @Produce json
// @Param status query string false "Deal status" Enums(new, negotiation, won, lost)
// @Param client_id query int false "Client ID"
// @Param assigned_to query int false "Assignee user ID"
// @Success 200 {array} dto.DealResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /deals [get]
func (h *dealHandler) listDeals(c *gin.Context) {
	var params dto.ListDealsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "query parameters")
		return
	}

	deals, err := h.dealService.ListDeals(c.Request.Context(), params.ToFilter())
	if err != nil {
		handleServiceError(c, err, "Failed to list deals")
		return
	}
	c.JSON(http.StatusOK, dto.ToDealResponses(deals))
}

// createDeal godoc
// @Summary Create a deal
// @Description Creates a deal for an existing client. A deal created as won or lost is closed immediately.
// @Tags deals
// @Accept json
// @Produce json
// @Param deal body dto.CreateDealRequest true "Deal details"
// @Success 201 {object} dto.DealResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Client not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /deals [post]
func (h *dealHandler) createDeal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request body")
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	deal, err := h.dealService.CreateDeal(c.Request.Context(), req.ToParams(creatorUserID))
	if err != nil {
		handleServiceError(c, err, "Failed to create deal")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDealResponse(deal))
}

// getDealStats godoc
// @Summary Deal statistics
// @Description Totals per status, the won amount and the average won check, from one snapshot.
// @Tags deals
// @Produce json
// @Success 200 {object} dto.DealStatsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /deals/stats [get]
func (h *dealHandler) getDealStats(c *gin.Context) {
	stats, err := h.dealService.GetDealStats(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to compute deal statistics")
		return
	}
	c.JSON(http.StatusOK, dto.ToDealStatsResponse(stats))
}

// getDealStatsReport godoc
// @Summary Deal statistics report
// @Description Renders the current deal statistics as a PDF document.
// @Tags deals
// @Produce application/pdf
// @Success 200 {file} file
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /deals/stats/report [get]
func (h *dealHandler) getDealStatsReport(c *gin.Context) {
	stats, err := h.dealService.GetDealStats(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to compute deal statistics")
		return
	}

	var buf bytes.Buffer
	if err := reports.WriteDealStatsPDF(&buf, *stats, time.Now()); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to render deal stats report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to render report"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="deal_stats.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// getDeal godoc
// @Summary Get a deal
// @Tags deals
// @Produce json
// @Param id path int true "Deal ID"
// @Success 200 {object} dto.DealResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /deals/{id} [get]
func (h *dealHandler) getDeal(c *gin.Context) {
	dealID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deal, err := h.dealService.GetDeal(c.Request.Context(), dealID)
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve deal")
		return
	}
	c.JSON(http.StatusOK, dto.ToDealResponse(deal))
}

// updateDeal godoc
// @Summary Update a deal
// @Description Partially updates a deal. Status changes maintain closed_at: entering won or lost from an open status sets it, reopening clears it.
// @Tags deals
// @Accept json
// @Produce json
// @Param id path int true "Deal ID"
// @Param deal body dto.UpdateDealRequest true "Fields to update"
// @Success 200 {object} dto.DealResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /deals/{id} [put]
func (h *dealHandler) updateDeal(c *gin.Context) {
	dealID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request body")
		return
	}

	deal, err := h.dealService.UpdateDeal(c.Request.Context(), dealID, req.ToDomain())
	if err != nil {
		handleServiceError(c, err, "Failed to update deal")
		return
	}
	c.JSON(http.StatusOK, dto.ToDealResponse(deal))
}

// deleteDeal godoc
// @Summary Delete a deal
// @Tags deals
// @Param id path int true "Deal ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /deals/{id} [delete]
func (h *dealHandler) deleteDeal(c *gin.Context) {
	dealID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.dealService.DeleteDeal(c.Request.Context(), dealID)
	if err != nil {
		handleServiceError(c, err, "Failed to delete deal")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Deal deleted", slog.Int64("deal_id", deleted.DealID))
	c.Status(http.StatusNoContent)
}
