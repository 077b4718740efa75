package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/monazzem/amlak-api/internal/middleware"
	"github.com/monazzem/amlak-api/internal/repository"
	"github.com/monazzem/amlak-api/internal/services"
)

type InstallmentHandler struct {
	installmentService *services.InstallmentService
}

func NewInstallmentHandler(installmentService *services.InstallmentService) *InstallmentHandler {
	return &InstallmentHandler{installmentService: installmentService}
}

// @Summary List Installments
// @Description Get a paginated list of installments. The "late" status filter
// @Description matches pending installments whose due date has passed.
// @Tags Installments
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param status query string false "Filter by status (pending, paid, late)"
// @Param contract_id query int false "Filter by contract"
// @Param due_from query string false "Due date from (YYYY-MM-DD)"
// @Param due_to query string false "Due date to (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /installments [get]
func (h *InstallmentHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.SortBy = c.Query("sort_by")
	query.SortDir = c.Query("sort_dir")
	if status := c.Query("status"); status != "" {
		query.Filters["status"] = status
	}
	if contractID := c.Query("contract_id"); contractID != "" {
		query.Filters["contract_id"] = contractID
	}
	if dueFrom := c.Query("due_from"); dueFrom != "" {
		query.Filters["due_from"] = dueFrom
	}
	if dueTo := c.Query("due_to"); dueTo != "" {
		query.Filters["due_to"] = dueTo
	}

	installments, total, err := h.installmentService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for i := range installments {
		responses = append(responses, installments[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"installments": responses,
		"pagination": gin.H{
			"page":     query.Page,
			"per_page": query.PerPage,
			"total":    total,
		},
	})
}

// @Summary Get Installment
// @Description Get an installment by ID
// @Tags Installments
// @Accept json
// @Produce json
// @Param installment_id path int true "Installment ID"
// @Success 200 {object} models.InstallmentResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /installments/{installment_id} [get]
func (h *InstallmentHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("installment_id"), 10, 32)
	installment, err := h.installmentService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Installment not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"installment": installment.ToResponse()})
}

// @Summary List Contract Installments
// @Description Get all installments of a contract in due date order
// @Tags Installments
// @Produce json
// @Param contract_id path int true "Contract ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /contracts/{contract_id}/installments [get]
func (h *InstallmentHandler) ByContract(c *gin.Context) {
	contractID, _ := strconv.ParseUint(c.Param("contract_id"), 10, 32)

	installments, err := h.installmentService.FindByContract(c.Request.Context(), uint(contractID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for i := range installments {
		responses = append(responses, installments[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"installments": responses, "count": len(installments)})
}

// @Summary Mark Installment Paid
// @Description Mark a pending installment as paid. Marking an already-paid
// @Description installment again has no effect.
// @Tags Installments
// @Produce json
// @Param installment_id path int true "Installment ID"
// @Success 200 {object} models.InstallmentResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /installments/{installment_id}/mark_paid [post]
func (h *InstallmentHandler) MarkPaid(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("installment_id"), 10, 32)

	installment, err := h.installmentService.MarkPaid(c.Request.Context(), uint(id), middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrInvalidState) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Installment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"installment": installment.ToResponse()})
}

// @Summary List Overdue Installments
// @Description Get all pending installments whose due date has passed
// @Tags Installments
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /installments/overdue [get]
func (h *InstallmentHandler) Overdue(c *gin.Context) {
	installments, err := h.installmentService.FindOverdue(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for i := range installments {
		responses = append(responses, installments[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"installments": responses, "count": len(installments)})
}

// @Summary Get Installment Stats
// @Description Get monthly installment statistics
// @Tags Installments
// @Produce json
// @Success 200 {object} repository.InstallmentStats
// @Security BearerAuth
// @Router /installments/stats [get]
func (h *InstallmentHandler) GetStats(c *gin.Context) {
	stats, err := h.installmentService.GetMonthlyStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
