package handler

import (
	"net/http"

	"casillero-backend/internal/usecase/address"
	"casillero-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AddressHandler struct {
	service *address.Service
}

func NewAddressHandler(service *address.Service) *AddressHandler {
	return &AddressHandler{service: service}
}

func (h *AddressHandler) RegisterCustomerRoutes(router *gin.RouterGroup) {
	addresses := router.Group("/addresses")
	{
		addresses.POST("", h.Create)
		addresses.GET("", h.ListOwn)
		addresses.DELETE("/:id", h.Delete)
	}
}

func (h *AddressHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/users/:user_id/addresses", h.ListByOwner)
}

func (h *AddressHandler) Create(c *gin.Context) {
	ownerID := c.MustGet("userID").(uuid.UUID)

	var req address.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Country = utils.SanitizeString(req.Country)
	req.City = utils.SanitizeString(req.City)
	req.StreetLine = utils.SanitizeString(req.StreetLine)
	req.Name = utils.SanitizeString(req.Name)

	result, err := h.service.Create(c.Request.Context(), ownerID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Address created successfully", result)
}

func (h *AddressHandler) ListOwn(c *gin.Context) {
	ownerID := c.MustGet("userID").(uuid.UUID)

	result, err := h.service.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Addresses retrieved successfully", result)
}

func (h *AddressHandler) ListByOwner(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	result, err := h.service.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Addresses retrieved successfully", result)
}

func (h *AddressHandler) Delete(c *gin.Context) {
	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid address ID")
		return
	}

	requesterID := c.MustGet("userID").(uuid.UUID)
	isAdmin := c.MustGet("role").(string) == "admin"

	if err := h.service.Delete(c.Request.Context(), requesterID, isAdmin, addressID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Address deleted successfully", nil)
}
