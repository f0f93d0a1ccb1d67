package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rate-engine-service/internal/models"
	"rate-engine-service/internal/repository"
)

// ConfigHandler handles HTTP requests for the company box catalog, shipping
// rules and shipping preferences.
type ConfigHandler struct {
	catalogRepo *repository.CatalogRepository
	policyRepo  *repository.PolicyRepository
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(catalogRepo *repository.CatalogRepository, policyRepo *repository.PolicyRepository) *ConfigHandler {
	return &ConfigHandler{catalogRepo: catalogRepo, policyRepo: policyRepo}
}

// ==================== Boxes ====================

// ListBoxes handles GET /api/shipping/boxes
func (h *ConfigHandler) ListBoxes(c *gin.Context) {
	companyID := getCompanyID(c)
	if companyID == "" {
		respondMissingCompany(c)
		return
	}

	boxes, err := h.catalogRepo.ListBoxes(c.Request.Context(), companyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to list boxes",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: boxes})
}

// CreateBox handles POST /api/shipping/boxes
func (h *ConfigHandler) CreateBox(c *gin.Context) {
	companyID := getCompanyID(c)
	if companyID == "" {
		respondMissingCompany(c)
		return
	}

	var request models.CreateBoxRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	box := &models.Box{
		ID:        uuid.New(),
		CompanyID: companyID,
		SKU:       request.SKU,
		Name:      request.Name,
		Length:    request.Length,
		Width:     request.Width,
		Height:    request.Height,
		MaxWeight: request.MaxWeight,
		Cost:      request.Cost,
		IsActive:  true,
	}

	if err := h.catalogRepo.CreateBox(c.Request.Context(), box); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to create box",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    box,
		Message: stringPtr("Box created successfully"),
	})
}

// UpdateBox handles PUT /api/shipping/boxes/:id
func (h *ConfigHandler) UpdateBox(c *gin.Context) {
	companyID := getCompanyID(c)
	if companyID == "" {
		respondMissingCompany(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid box ID",
			Message: "Box ID must be a valid UUID",
		})
		return
	}

	var request models.UpdateBoxRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	box, err := h.catalogRepo.GetBox(c.Request.Context(), companyID, id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "Box not found",
			Message: err.Error(),
		})
		return
	}

	if request.SKU != nil {
		box.SKU = *request.SKU
	}
	if request.Name != nil {
		box.Name = *request.Name
	}
	if request.Length != nil {
		box.Length = *request.Length
	}
	if request.Width != nil {
		box.Width = *request.Width
	}
	if request.Height != nil {
		box.Height = *request.Height
	}
	if request.MaxWeight != nil {
		box.MaxWeight = *request.MaxWeight
	}
	if request.Cost != nil {
		box.Cost = *request.Cost
	}
	if request.IsActive != nil {
		box.IsActive = *request.IsActive
	}

	if err := h.catalogRepo.UpdateBox(c.Request.Context(), box); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to update box",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: box})
}

// DeleteBox handles DELETE /api/shipping/boxes/:id
func (h *ConfigHandler) DeleteBox(c *gin.Context) {
	companyID := getCompanyID(c)
	if companyID == "" {
		respondMissingCompany(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid box ID",
			Message: "Box ID must be a valid UUID",
		})
		return
	}

	if err := h.catalogRepo.DeleteBox(c.Request.Context(), companyID, id); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to delete box",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    gin.H{"id": id},
		Message: stringPtr("Box deleted successfully"),
	})
}

// ListBoxTemplates handles GET /api/shipping/boxes/templates
func (h *ConfigHandler) ListBoxTemplates(c *gin.Context) {
	templates, err := h.catalogRepo.ListBoxTemplates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to list box templates",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: templates})
}

// CreateBoxFromTemplate handles POST /api/shipping/boxes/from-template
func (h *ConfigHandler) CreateBoxFromTemplate(c *gin.Context) {
	companyID := getCompanyID(c)
	if companyID == "" {
		respondMissingCompany(c)
		return
	}

	var request models.CreateBoxFromTemplateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	template, err := h.catalogRepo.GetBoxTemplate(c.Request.Context(), request.TemplateID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "Box template not found",
			Message: err.Error(),
		})
		return
	}

	box := &models.Box{
		ID:        uuid.New(),
		CompanyID: companyID,
		SKU:       template.SKU,
		Name:      template.Name,
		Length:    template.Length,
		Width:     template.Width,
		Height:    template.Height,
		MaxWeight: template.MaxWeight,
		Cost:      template.Cost,
		IsActive:  true,
	}

	if err := h.catalogRepo.CreateBox(c.Request.Context(), box); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to create box from template",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    box,
		Message: stringPtr("Box created from template"),
	})
}

// ==================== Rules ====================

// ListRules handles GET /api/shipping/rules
func (h *ConfigHandler) ListRules(c *gin.Context) {
	companyID := getCompanyID(c)
	if companyID == "" {
		respondMissingCompany(c)
		return
	}

	rules, err := h.policyRepo.ListRules(c.Request.Context(), companyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to list rules",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: rules})
}

// CreateRule handles POST /api/shipping/rules
func (h *ConfigHandler) CreateRule(c *gin.Context) {
	companyID := getCompanyID(c)
	if companyID == "" {
		respondMissingCompany(c)
		return
	}

	var request models.CreateRuleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	rule := &models.ShippingRule{
		ID:         uuid.New(),
		CompanyID:  companyID,
		Name:       request.Name,
		Priority:   request.Priority,
		IsActive:   true,
		Conditions: request.Conditions,
		Actions:    request.Actions,
	}

	if err := h.policyRepo.CreateRule(c.Request.Context(), rule); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to create rule",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    rule,
		Message: stringPtr("Shipping rule created successfully"),
	})
}

// DeleteRule handles DELETE /api/shipping/rules/:id
func (h *ConfigHandler) DeleteRule(c *gin.Context) {
	companyID := getCompanyID(c)
	if companyID == "" {
		respondMissingCompany(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid rule ID",
			Message: "Rule ID must be a valid UUID",
		})
		return
	}

	if err := h.policyRepo.DeleteRule(c.Request.Context(), companyID, id); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to delete rule",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    gin.H{"id": id},
		Message: stringPtr("Shipping rule deleted successfully"),
	})
}

// ==================== Settings ====================

// GetSettings handles GET /api/shipping/settings
func (h *ConfigHandler) GetSettings(c *gin.Context) {
	companyID := getCompanyID(c)
	if companyID == "" {
		respondMissingCompany(c)
		return
	}

	prefs, err := h.policyRepo.GetOrCreateShippingPrefs(c.Request.Context(), companyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to get shipping settings",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: prefs})
}

// UpdateSettings handles PUT /api/shipping/settings
func (h *ConfigHandler) UpdateSettings(c *gin.Context) {
	companyID := getCompanyID(c)
	if companyID == "" {
		respondMissingCompany(c)
		return
	}

	var request models.UpdateShippingPrefsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	prefs, err := h.policyRepo.GetOrCreateShippingPrefs(c.Request.Context(), companyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to get shipping settings",
			Message: err.Error(),
		})
		return
	}

	if request.SLAPreference != nil {
		prefs.SLAPreference = *request.SLAPreference
	}
	if request.OptimizationObjective != nil {
		prefs.OptimizationObjective = *request.OptimizationObjective
	}
	if request.DeliveryConfidence != nil {
		prefs.DeliveryConfidence = request.DeliveryConfidence
	}
	if request.MaxTransitDays != nil {
		prefs.MaxTransitDays = request.MaxTransitDays
	}
	if request.CarrierWhitelist != nil {
		prefs.CarrierWhitelist = *request.CarrierWhitelist
	}
	if request.ServiceBlacklist != nil {
		prefs.ServiceBlacklist = *request.ServiceBlacklist
	}
	if request.MarkupType != nil {
		prefs.MarkupType = *request.MarkupType
	}
	if request.MarkupValue != nil {
		prefs.MarkupValue = *request.MarkupValue
	}

	if err := h.policyRepo.UpdateShippingPrefs(c.Request.Context(), prefs); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to update shipping settings",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: prefs})
}
