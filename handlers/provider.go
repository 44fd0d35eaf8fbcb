package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mistriconnect/middleware"
	providerSvc "mistriconnect/services/provider"
)

// ProviderHandler exposes provider accounts, trades and availability.
type ProviderHandler struct {
	Service providerSvc.Service
}

// NewProviderHandler returns a handler backed by the given provider service.
func NewProviderHandler(service providerSvc.Service) *ProviderHandler {
	return &ProviderHandler{Service: service}
}

// Register handles POST /api/providers/register.
func (h *ProviderHandler) Register(c *gin.Context) {
	var input providerSvc.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	prov, token, err := h.Service.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"provider": prov, "token": token})
}

// Login handles POST /api/providers/login.
func (h *ProviderHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	prov, token, err := h.Service.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"provider": prov, "token": token})
}

// GetProfile handles GET /api/providers/me.
func (h *ProviderHandler) GetProfile(c *gin.Context) {
	prov, err := h.Service.GetByID(c.Request.Context(), c.GetString(middleware.CtxProviderID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prov)
}

// UpdateProfile handles PUT /api/providers/me.
func (h *ProviderHandler) UpdateProfile(c *gin.Context) {
	var input providerSvc.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Service.UpdateProfile(c.Request.Context(), c.GetString(middleware.CtxProviderID), input); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// Search handles POST /api/providers/search (customer-facing).
func (h *ProviderHandler) Search(c *gin.Context) {
	var input struct {
		ServiceType string `json:"serviceType"`
		Area        string `json:"area"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	providers, err := h.Service.Search(c.Request.Context(), input.ServiceType, input.Area)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers})
}

// AddServiceType handles POST /api/providers/me/services.
func (h *ProviderHandler) AddServiceType(c *gin.Context) {
	var input struct {
		ServiceType string `json:"serviceType"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Service.AddServiceType(c.Request.Context(), c.GetString(middleware.CtxProviderID), input.ServiceType); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service type added successfully"})
}

// RemoveServiceType handles DELETE /api/providers/me/services/:serviceType.
func (h *ProviderHandler) RemoveServiceType(c *gin.Context) {
	if err := h.Service.RemoveServiceType(c.Request.Context(), c.GetString(middleware.CtxProviderID), c.Param("serviceType")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service type deleted successfully"})
}

// BlockSlot handles POST /api/providers/me/slots (mark a slot unavailable).
func (h *ProviderHandler) BlockSlot(c *gin.Context) {
	var input struct {
		Date string `json:"date"`
		Slot string `json:"slot"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Service.BlockSlot(c.Request.Context(), c.GetString(middleware.CtxProviderID), input.Date, input.Slot); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability updated successfully"})
}

// QueryAvailability handles GET /api/providers/availability/:id.
func (h *ProviderHandler) QueryAvailability(c *gin.Context) {
	date := c.Query("date")
	slot := c.Query("slot")
	available, err := h.Service.IsSlotAvailable(c.Request.Context(), c.Param("id"), date, slot)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": available})
}
