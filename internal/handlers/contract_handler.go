package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monazzem/amlak-api/internal/middleware"
	"github.com/monazzem/amlak-api/internal/models"
	"github.com/monazzem/amlak-api/internal/repository"
	"github.com/monazzem/amlak-api/internal/services"
)

type ContractHandler struct {
	contractService *services.ContractService
}

func NewContractHandler(contractService *services.ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

// @Summary List Contracts
// @Description Get a paginated list of contracts
// @Tags Contracts
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search term"
// @Param schedule_status query string false "Filter by schedule status (complete, incomplete)"
// @Param property_id query int false "Filter by property"
// @Param tenant_id query int false "Filter by tenant"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /contracts [get]
func (h *ContractHandler) Index(c *gin.Context) {
	query := &repository.ContractQuery{ListQuery: repository.NewListQuery()}
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.SortBy = c.Query("sort_by")
	query.SortDir = c.Query("sort_dir")
	if scheduleStatus := c.Query("schedule_status"); scheduleStatus != "" {
		query.Filters["schedule_status"] = scheduleStatus
	}
	if payFrequency := c.Query("pay_frequency"); payFrequency != "" {
		query.Filters["pay_frequency"] = payFrequency
	}
	if startDate := c.Query("start_date"); startDate != "" {
		query.Filters["start_date"] = startDate
	}
	if endDate := c.Query("end_date"); endDate != "" {
		query.Filters["end_date"] = endDate
	}
	if active := c.Query("active"); active != "" {
		query.Filters["active"] = active
	}
	if propertyID, err := strconv.ParseUint(c.Query("property_id"), 10, 32); err == nil {
		query.PropertyID = uint(propertyID)
	}
	if tenantID, err := strconv.ParseUint(c.Query("tenant_id"), 10, 32); err == nil {
		query.TenantID = uint(tenantID)
	}

	contracts, total, err := h.contractService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for _, contract := range contracts {
		responses = append(responses, contract.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"contracts": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get Contract Stats
// @Description Get contract schedule statistics
// @Tags Contracts
// @Accept json
// @Produce json
// @Success 200 {object} repository.ContractStats
// @Security BearerAuth
// @Router /contracts/stats [get]
func (h *ContractHandler) GetStats(c *gin.Context) {
	stats, err := h.contractService.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary Get Contract
// @Description Get a contract by ID with its installments and ledger
// @Tags Contracts
// @Accept json
// @Produce json
// @Param contract_id path int true "Contract ID"
// @Success 200 {object} models.ContractResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /contracts/{contract_id} [get]
func (h *ContractHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("contract_id"), 10, 32)
	contract, err := h.contractService.FindByIDWithDetails(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"contract": contract.ToResponse()})
}

type CreateContractRequest struct {
	ContractNo   string  `json:"contract_no" binding:"required"`
	PropertyID   uint    `json:"property_id" binding:"required"`
	TenantID     uint    `json:"tenant_id" binding:"required"`
	StartDate    string  `json:"start_date" binding:"required"`
	EndDate      string  `json:"end_date" binding:"required"`
	RentAmount   float64 `json:"rent_amount" binding:"required"`
	PayFrequency string  `json:"pay_frequency" binding:"required"`
	Notes        string  `json:"notes"`
}

// @Summary Create Contract
// @Description Create a contract and generate its installment schedule
// @Tags Contracts
// @Accept json
// @Produce json
// @Param request body CreateContractRequest true "Contract Data"
// @Success 201 {object} models.ContractResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /contracts [post]
func (h *ContractHandler) Create(c *gin.Context) {
	var req CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := time.Parse(models.DateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return
	}
	endDate, err := time.Parse(models.DateLayout, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
		return
	}

	contract := &models.Contract{
		ContractNo:   req.ContractNo,
		PropertyID:   req.PropertyID,
		TenantID:     req.TenantID,
		StartDate:    startDate,
		EndDate:      endDate,
		RentAmount:   req.RentAmount,
		PayFrequency: req.PayFrequency,
		Notes:        req.Notes,
	}

	err = h.contractService.Create(c.Request.Context(), contract, middleware.GetUserID(c))
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"contract": contract.ToResponse()})
	case errors.Is(err, services.ErrScheduleIncomplete):
		// Contract persisted without its schedule. Surface it so the
		// client can offer a regenerate action.
		c.JSON(http.StatusCreated, gin.H{
			"contract": contract.ToResponse(),
			"warning":  "Installment schedule is incomplete and must be regenerated",
		})
	case errors.Is(err, services.ErrInvalidFrequency),
		errors.Is(err, services.ErrInvalidPeriod),
		errors.Is(err, services.ErrInvalidRent):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrPropertyUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": "Property is already rented"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// @Summary Regenerate Schedule
// @Description Rebuild the installment schedule of an incomplete contract
// @Tags Contracts
// @Produce json
// @Param contract_id path int true "Contract ID"
// @Success 200 {object} models.ContractResponse
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /contracts/{contract_id}/regenerate_schedule [post]
func (h *ContractHandler) RegenerateSchedule(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("contract_id"), 10, 32)

	contract, err := h.contractService.RegenerateSchedule(c.Request.Context(), uint(id), middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrInvalidState) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, services.ErrScheduleIncomplete) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"contract": contract.ToResponse()})
}

// @Summary Delete Contract
// @Description Delete a contract and its installments
// @Tags Contracts
// @Produce json
// @Param contract_id path int true "Contract ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /contracts/{contract_id} [delete]
func (h *ContractHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("contract_id"), 10, 32)

	if err := h.contractService.Delete(c.Request.Context(), uint(id), middleware.GetUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contract deleted"})
}
