package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/cashbook_backend/internal/core/ports/services"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/SscSPs/cashbook_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// businessHandler handles businesses and their staff.
type businessHandler struct {
	businessService portssvc.BusinessSvcFacade
}

func newBusinessHandler(bs portssvc.BusinessSvcFacade) *businessHandler {
	return &businessHandler{businessService: bs}
}

// registerBusinessRoutes registers /business and returns the group of a single business
// (/business/:id) so the other handlers can nest under it.
func registerBusinessRoutes(rg *gin.RouterGroup, businessService portssvc.BusinessSvcFacade) *gin.RouterGroup {
	h := newBusinessHandler(businessService)

	businesses := rg.Group("/business")
	{
		businesses.POST("", h.createBusiness)
		businesses.GET("", h.listBusinesses)
	}

	business := rg.Group("/business/:id")
	{
		business.GET("", h.getBusiness)

		staff := business.Group("/staff")
		{
			staff.GET("", h.listStaff)
			staff.POST("", h.addStaff)
			staff.PUT("/:staffId", h.updateStaff)
			staff.DELETE("/:staffId", h.removeStaff)
		}
	}
	return business
}

// createBusiness godoc
// @Summary Create a business
// @Description Creates a business with the caller as its owner.
// @Tags business
// @Accept json
// @Produce json
// @Param business body dto.CreateBusinessRequest true "Business details"
// @Success 201 {object} domain.Business
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business [post]
func (h *businessHandler) createBusiness(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateBusinessRequest
	if !bindJSON(c, &req) {
		return
	}

	business, err := h.businessService.CreateBusiness(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create business")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Business created", slog.String("business_id", business.BusinessID))
	c.JSON(http.StatusCreated, business)
}

// listBusinesses godoc
// @Summary List my businesses
// @Description Lists the businesses the caller is an active member of, with the caller's role in each.
// @Tags business
// @Produce json
// @Success 200 {array} domain.BusinessMembership
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business [get]
func (h *businessHandler) listBusinesses(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	businesses, err := h.businessService.ListBusinesses(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list businesses")
		return
	}
	c.JSON(http.StatusOK, businesses)
}

// getBusiness godoc
// @Summary Get a business
// @Tags business
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {object} domain.BusinessMembership
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id} [get]
func (h *businessHandler) getBusiness(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	business, err := h.businessService.GetBusiness(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve business")
		return
	}
	c.JSON(http.StatusOK, business)
}

// listStaff godoc
// @Summary List staff
// @Description Owner only.
// @Tags staff
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {array} domain.BusinessUser
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/staff [get]
func (h *businessHandler) listStaff(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	staff, err := h.businessService.ListStaff(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to list staff")
		return
	}
	c.JSON(http.StatusOK, staff)
}

// addStaff godoc
// @Summary Add staff
// @Description Adds an existing user as ACCOUNTANT or VIEWER. Owner only.
// @Tags staff
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param staff body dto.AddStaffRequest true "Staff member"
// @Success 201 {object} domain.BusinessUser
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Already a member"
// @Security BearerAuth
// @Router /business/{id}/staff [post]
func (h *businessHandler) addStaff(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.AddStaffRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.businessService.AddStaff(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to add staff")
		return
	}
	c.JSON(http.StatusCreated, member)
}

// updateStaff godoc
// @Summary Update staff
// @Description Changes role, delete permission or active flag of a staff member. Owner only.
// @Tags staff
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param staffId path string true "Business user ID"
// @Param staff body dto.UpdateStaffRequest true "Changes"
// @Success 200 {object} domain.BusinessUser
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/staff/{staffId} [put]
func (h *businessHandler) updateStaff(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateStaffRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.businessService.UpdateStaff(c.Request.Context(), c.Param("id"), c.Param("staffId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update staff")
		return
	}
	c.JSON(http.StatusOK, member)
}

// removeStaff godoc
// @Summary Remove staff
// @Description Deactivates a staff membership. Owner only.
// @Tags staff
// @Param id path string true "Business ID"
// @Param staffId path string true "Business user ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/staff/{staffId} [delete]
func (h *businessHandler) removeStaff(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.businessService.RemoveStaff(c.Request.Context(), c.Param("id"), c.Param("staffId"), userID); err != nil {
		respondError(c, err, "Failed to remove staff")
		return
	}
	c.Status(http.StatusNoContent)
}
