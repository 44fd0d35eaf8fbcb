package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mistriconnect/middleware"
	customerSvc "mistriconnect/services/customer"
)

// CustomerHandler exposes customer accounts and profiles.
type CustomerHandler struct {
	Service customerSvc.Service
}

// NewCustomerHandler returns a handler backed by the given customer service.
func NewCustomerHandler(service customerSvc.Service) *CustomerHandler {
	return &CustomerHandler{Service: service}
}

// Register handles POST /api/customers/register.
func (h *CustomerHandler) Register(c *gin.Context) {
	var input customerSvc.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	cust, token, err := h.Service.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"customer": cust, "token": token})
}

// Login handles POST /api/customers/login.
func (h *CustomerHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	cust, token, err := h.Service.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": cust, "token": token})
}

// GetProfile handles GET /api/customers/me.
func (h *CustomerHandler) GetProfile(c *gin.Context) {
	cust, err := h.Service.GetByID(c.Request.Context(), c.GetString(middleware.CtxCustomerID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cust)
}

// UpdateProfile handles PUT /api/customers/me.
func (h *CustomerHandler) UpdateProfile(c *gin.Context) {
	var input struct {
		Username    string `json:"username"`
		Email       string `json:"email"`
		PhoneNumber string `json:"phoneNumber"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Service.UpdateProfile(c.Request.Context(), c.GetString(middleware.CtxCustomerID), input.Username, input.Email, input.PhoneNumber); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}
