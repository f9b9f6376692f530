package handler

import (
	"errors"
	"net/http"

	domainParcel "casillero-backend/internal/domain/parcel"
	"casillero-backend/internal/usecase/parcel"
	appErrors "casillero-backend/pkg/errors"
	"casillero-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ParcelHandler struct {
	service *parcel.Service
}

func NewParcelHandler(service *parcel.Service) *ParcelHandler {
	return &ParcelHandler{service: service}
}

func (h *ParcelHandler) RegisterRoutes(router *gin.RouterGroup) {
	packages := router.Group("/packages")
	{
		// Anonymous tracking; the (email, tracking number) pair is the key
		packages.POST("/track", h.Track)
	}
}

func (h *ParcelHandler) RegisterCustomerRoutes(router *gin.RouterGroup) {
	packages := router.Group("/packages")
	{
		packages.GET("", h.ListOwn)
		packages.GET("/:id", h.GetParcel)
		packages.POST("/prealert", h.CreatePreAlert)
		packages.PUT("/:id/consolidate", h.SetConsolidate)
	}
}

func (h *ParcelHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	packages := router.Group("/packages")
	{
		packages.GET("", h.ListAll)
		packages.POST("", h.CreateByAdmin)
		packages.PUT("/:id/status", h.UpdateStatusAndDetails)
		packages.DELETE("/:id", h.DeleteParcel)
	}
	router.GET("/users/:user_id/packages", h.ListByOwner)
}

func (h *ParcelHandler) Track(c *gin.Context) {
	var req parcel.TrackRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Track(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Package retrieved successfully", result)
}

func (h *ParcelHandler) CreatePreAlert(c *gin.Context) {
	ownerID := c.MustGet("userID").(uuid.UUID)

	var req parcel.CreatePreAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = utils.SanitizeString(req.Name)
	req.TrackingNumber = utils.SanitizeString(req.TrackingNumber)

	result, warning, err := h.service.CreatePreAlert(c.Request.Context(), ownerID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if warning != "" {
		utils.WarningResponse(c, http.StatusCreated, "Pre-alert created successfully", warning, result)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "Pre-alert created successfully", result)
}

func (h *ParcelHandler) ListOwn(c *gin.Context) {
	ownerID := c.MustGet("userID").(uuid.UUID)

	result, err := h.service.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Packages retrieved successfully", result)
}

func (h *ParcelHandler) GetParcel(c *gin.Context) {
	parcelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid package ID")
		return
	}

	userID := c.MustGet("userID").(uuid.UUID)
	role := c.MustGet("role").(string)

	result, err := h.service.GetParcel(c.Request.Context(), parcelID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if role != "admin" && result.OwnerID != userID {
		utils.ErrorResponse(c, http.StatusForbidden, appErrors.ErrForbidden.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Package retrieved successfully", result)
}

func (h *ParcelHandler) SetConsolidate(c *gin.Context) {
	parcelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid package ID")
		return
	}

	userID := c.MustGet("userID").(uuid.UUID)

	var req parcel.ConsolidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.SetConsolidate(c.Request.Context(), parcelID, userID, req.Consolidate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Consolidate flag updated successfully", result)
}

func (h *ParcelHandler) ListAll(c *gin.Context) {
	result, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Packages retrieved successfully", result)
}

func (h *ParcelHandler) ListByOwner(c *gin.Context) {
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

	utils.SuccessResponse(c, http.StatusOK, "Packages retrieved successfully", result)
}

func (h *ParcelHandler) CreateByAdmin(c *gin.Context) {
	var req parcel.CreateByAdminRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = utils.SanitizeString(req.Name)
	req.TrackingNumber = utils.SanitizeString(req.TrackingNumber)

	result, err := h.service.CreateByAdmin(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Package created successfully", result)
}

// UpdateStatusAndDetails is the only write that surfaces a raw store failure
// to the caller; operations staff read the text to reconcile the record by
// hand.
func (h *ParcelHandler) UpdateStatusAndDetails(c *gin.Context) {
	parcelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid package ID")
		return
	}

	var req parcel.UpdateStatusAndDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = utils.SanitizeString(req.Name)
	req.TrackingNumber = utils.SanitizeString(req.TrackingNumber)

	result, warning, err := h.service.UpdateStatusAndDetails(c.Request.Context(), parcelID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domainParcel.ErrParcelNotFound),
			errors.Is(err, domainParcel.ErrDuplicateTrackingNumber),
			errors.Is(err, domainParcel.ErrInvalidStatus),
			errors.Is(err, domainParcel.ErrInvalidStatusTransition):
			respondWithError(c, err)
		default:
			var appErr *appErrors.AppError
			if errors.As(err, &appErr) {
				respondWithError(c, err)
				return
			}
			utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if warning != "" {
		utils.WarningResponse(c, http.StatusOK, "Package status updated successfully", warning, result)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Package status updated successfully", result)
}

func (h *ParcelHandler) DeleteParcel(c *gin.Context) {
	parcelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid package ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), parcelID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Package deleted successfully", nil)
}
