package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/monazzem/amlak-api/internal/middleware"
	"github.com/monazzem/amlak-api/internal/models"
	"github.com/monazzem/amlak-api/internal/repository"
	"github.com/monazzem/amlak-api/internal/services"
)

type PropertyHandler struct {
	propertyService *services.PropertyService
}

func NewPropertyHandler(propertyService *services.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// @Summary List Properties
// @Description Get a paginated list of properties
// @Tags Properties
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search term"
// @Param status query string false "Filter by status (vacant, rented)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /properties [get]
func (h *PropertyHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.SortBy = c.Query("sort_by")
	query.SortDir = c.Query("sort_dir")
	if status := c.Query("status"); status != "" {
		query.Filters["status"] = status
	}
	if propType := c.Query("property_type"); propType != "" {
		query.Filters["type"] = propType
	}

	properties, total, err := h.propertyService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for _, p := range properties {
		responses = append(responses, p.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": responses,
		"pagination": gin.H{
			"page":     query.Page,
			"per_page": query.PerPage,
			"total":    total,
		},
	})
}

// @Summary Get Property
// @Description Get a property by ID
// @Tags Properties
// @Accept json
// @Produce json
// @Param property_id path int true "Property ID"
// @Success 200 {object} models.PropertyResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /properties/{property_id} [get]
func (h *PropertyHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("property_id"), 10, 32)
	property, err := h.propertyService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"property": property.ToResponse()})
}

// @Summary Create Property
// @Description Create a new property
// @Tags Properties
// @Accept json
// @Produce json
// @Param request body models.Property true "Property Data"
// @Success 201 {object} models.PropertyResponse
// @Security BearerAuth
// @Router /properties [post]
func (h *PropertyHandler) Create(c *gin.Context) {
	var property models.Property
	if err := c.ShouldBindJSON(&property); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.propertyService.Create(c.Request.Context(), &property, middleware.GetUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"property": property.ToResponse()})
}

// @Summary Update Property
// @Description Update an existing property
// @Tags Properties
// @Accept json
// @Produce json
// @Param property_id path int true "Property ID"
// @Param request body models.Property true "Property Data"
// @Success 200 {object} models.PropertyResponse
// @Security BearerAuth
// @Router /properties/{property_id} [put]
func (h *PropertyHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("property_id"), 10, 32)
	var property models.Property
	if err := c.ShouldBindJSON(&property); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	property.ID = uint(id)

	if err := h.propertyService.Update(c.Request.Context(), &property, middleware.GetUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"property": property.ToResponse()})
}

// @Summary Delete Property
// @Description Delete a property. Refused while contracts reference it.
// @Tags Properties
// @Accept json
// @Produce json
// @Param property_id path int true "Property ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /properties/{property_id} [delete]
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("property_id"), 10, 32)

	if err := h.propertyService.Delete(c.Request.Context(), uint(id), middleware.GetUserID(c)); err != nil {
		if errors.Is(err, services.ErrHasContracts) {
			c.JSON(http.StatusConflict, gin.H{"error": "Property has contracts and cannot be deleted"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Property deleted"})
}

type TenantHandler struct {
	tenantService *services.TenantService
}

func NewTenantHandler(tenantService *services.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// @Summary List Tenants
// @Description Get a paginated list of tenants
// @Tags Tenants
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search term"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /tenants [get]
func (h *TenantHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.SortBy = c.Query("sort_by")
	query.SortDir = c.Query("sort_dir")
	if nationality := c.Query("nationality"); nationality != "" {
		query.Filters["nationality"] = nationality
	}

	tenants, total, err := h.tenantService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for _, t := range tenants {
		responses = append(responses, t.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"tenants": responses,
		"pagination": gin.H{
			"page":     query.Page,
			"per_page": query.PerPage,
			"total":    total,
		},
	})
}

// @Summary Get Tenant
// @Description Get a tenant by ID
// @Tags Tenants
// @Accept json
// @Produce json
// @Param tenant_id path int true "Tenant ID"
// @Success 200 {object} models.TenantResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /tenants/{tenant_id} [get]
func (h *TenantHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("tenant_id"), 10, 32)
	tenant, err := h.tenantService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tenant": tenant.ToResponse()})
}

// @Summary Create Tenant
// @Description Create a new tenant
// @Tags Tenants
// @Accept json
// @Produce json
// @Param request body models.Tenant true "Tenant Data"
// @Success 201 {object} models.TenantResponse
// @Security BearerAuth
// @Router /tenants [post]
func (h *TenantHandler) Create(c *gin.Context) {
	var tenant models.Tenant
	if err := c.ShouldBindJSON(&tenant); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.tenantService.Create(c.Request.Context(), &tenant, middleware.GetUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"tenant": tenant.ToResponse()})
}

// @Summary Update Tenant
// @Description Update a tenant. Refused while contracts reference them.
// @Tags Tenants
// @Accept json
// @Produce json
// @Param tenant_id path int true "Tenant ID"
// @Param request body models.Tenant true "Tenant Data"
// @Success 200 {object} models.TenantResponse
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /tenants/{tenant_id} [put]
func (h *TenantHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("tenant_id"), 10, 32)
	var tenant models.Tenant
	if err := c.ShouldBindJSON(&tenant); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tenant.ID = uint(id)

	if err := h.tenantService.Update(c.Request.Context(), &tenant, middleware.GetUserID(c)); err != nil {
		if errors.Is(err, services.ErrHasContracts) {
			c.JSON(http.StatusConflict, gin.H{"error": "Tenant has contracts and cannot be edited"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tenant": tenant.ToResponse()})
}

// @Summary Delete Tenant
// @Description Delete a tenant. Refused while contracts reference them.
// @Tags Tenants
// @Accept json
// @Produce json
// @Param tenant_id path int true "Tenant ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /tenants/{tenant_id} [delete]
func (h *TenantHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("tenant_id"), 10, 32)

	if err := h.tenantService.Delete(c.Request.Context(), uint(id), middleware.GetUserID(c)); err != nil {
		if errors.Is(err, services.ErrHasContracts) {
			c.JSON(http.StatusConflict, gin.H{"error": "Tenant has contracts and cannot be deleted"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tenant deleted"})
}

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// @Summary List Notifications
// @Description Get the current user's notifications
// @Tags Notifications
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param read query string false "Filter by read state (read, unread)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /notifications [get]
func (h *NotificationHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if read := c.Query("read"); read != "" {
		query.Filters["status"] = read
	}

	userID := middleware.GetUserID(c)
	notifications, total, err := h.notificationService.FindByUser(c.Request.Context(), userID, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	unread, _ := h.notificationService.CountUnread(c.Request.Context(), userID)

	var responses []interface{}
	for _, n := range notifications {
		responses = append(responses, n.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": responses,
		"unread_count":  unread,
		"pagination": gin.H{
			"page":     query.Page,
			"per_page": query.PerPage,
			"total":    total,
		},
	})
}

// @Summary Mark Notification Read
// @Description Mark a notification as read
// @Tags Notifications
// @Produce json
// @Param notification_id path int true "Notification ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /notifications/{notification_id}/read [post]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("notification_id"), 10, 32)
	if err := h.notificationService.MarkAsRead(c.Request.Context(), uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// @Summary Mark All Notifications Read
// @Description Mark all of the current user's notifications as read
// @Tags Notifications
// @Produce json
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /notifications/mark_all_read [post]
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if err := h.notificationService.MarkAllAsRead(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

// @Summary Delete Notification
// @Description Delete a notification
// @Tags Notifications
// @Produce json
// @Param notification_id path int true "Notification ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /notifications/{notification_id} [delete]
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("notification_id"), 10, 32)
	if err := h.notificationService.Delete(c.Request.Context(), uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func installmentReportQuery(c *gin.Context) *repository.ListQuery {
	query := repository.NewListQuery()
	query.Search = c.Query("search_term")
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
	return query
}

// @Summary Installments Report
// @Description Get the installments report as JSON: matched rows plus
// @Description projected totals (total, paid, remaining, late)
// @Tags Reports
// @Produce json
// @Param status query string false "Filter by status (pending, paid, late)"
// @Param contract_id query int false "Filter by contract"
// @Param due_from query string false "Due date from (YYYY-MM-DD)"
// @Param due_to query string false "Due date to (YYYY-MM-DD)"
// @Success 200 {object} services.InstallmentReport
// @Security BearerAuth
// @Router /reports/installments [get]
func (h *ReportHandler) Installments(c *gin.Context) {
	report, err := h.reportService.InstallmentsReport(c.Request.Context(), installmentReportQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary Installments Report CSV
// @Description Download an installments report as CSV
// @Tags Reports
// @Produce text/csv
// @Param status query string false "Filter by status (pending, paid, late)"
// @Param due_from query string false "Due date from (YYYY-MM-DD)"
// @Param due_to query string false "Due date to (YYYY-MM-DD)"
// @Success 200 {file} file "installments.csv"
// @Security BearerAuth
// @Router /reports/installments_csv [get]
func (h *ReportHandler) InstallmentsCSV(c *gin.Context) {
	buf, filename, err := h.reportService.GenerateInstallmentsCSV(c.Request.Context(), installmentReportQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.String(http.StatusOK, buf.String())
}

// @Summary Installments Report XLSX
// @Description Download an installments report as an Excel workbook
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param status query string false "Filter by status (pending, paid, late)"
// @Success 200 {file} file "installments.xlsx"
// @Security BearerAuth
// @Router /reports/installments_xlsx [get]
func (h *ReportHandler) InstallmentsXLSX(c *gin.Context) {
	data, filename, err := h.reportService.GenerateInstallmentsXLSX(c.Request.Context(), installmentReportQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// @Summary Contract Statement PDF
// @Description Download a contract statement as PDF
// @Tags Reports
// @Produce application/pdf
// @Param contract_id path int true "Contract ID"
// @Success 200 {file} file "statement.pdf"
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /reports/contracts/{contract_id}/statement_pdf [get]
func (h *ReportHandler) ContractStatementPDF(c *gin.Context) {
	contractID, _ := strconv.ParseUint(c.Param("contract_id"), 10, 32)

	data, filename, err := h.reportService.GenerateContractStatementPDF(c.Request.Context(), uint(contractID))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// @Summary List Audit Logs
// @Description Get a paginated list of system audit logs
// @Tags Audit
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(50)
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /audits [get]
func (h *AuditHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "50"))
	if action := c.Query("action"); action != "" {
		query.Filters["action"] = action
	}
	if entity := c.Query("entity"); entity != "" {
		query.Filters["entity"] = entity
	}
	if userID := c.Query("user_id"); userID != "" {
		query.Filters["user_id"] = userID
	}

	logs, total, err := h.auditService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for _, entry := range logs {
		responses = append(responses, entry.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"audits": responses,
		"pagination": gin.H{
			"page":     query.Page,
			"per_page": query.PerPage,
			"total":    total,
		},
	})
}
