package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/cashbook_backend/internal/core/ports/services"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type categoryHandler struct {
	categoryService portssvc.CategorySvcFacade
}

func newCategoryHandler(cs portssvc.CategorySvcFacade) *categoryHandler {
	return &categoryHandler{categoryService: cs}
}

func registerCategoryRoutes(business *gin.RouterGroup, categoryService portssvc.CategorySvcFacade) {
	h := newCategoryHandler(categoryService)

	categories := business.Group("/categories")
	{
		categories.GET("", h.listCategories)
		categories.POST("", h.createCategory)
		categories.PUT("/:categoryId", h.updateCategory)
		categories.DELETE("/:categoryId", h.deleteCategory)
	}
}

// listCategories godoc
// @Summary List categories
// @Description Lists active categories, optionally only those usable for one entry type.
// @Tags categories
// @Produce json
// @Param id path string true "Business ID"
// @Param type query string false "INCOME, EXPENSE or BOTH"
// @Success 200 {array} domain.Category
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/categories [get]
func (h *categoryHandler) listCategories(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var params dto.ListCategoriesParams
	if !bindQuery(c, &params) {
		return
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), c.Param("id"), params.CategoryType, userID)
	if err != nil {
		respondError(c, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// createCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param category body dto.CreateCategoryRequest true "Category"
// @Success 201 {object} domain.Category
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Name already used"
// @Security BearerAuth
// @Router /business/{id}/categories [post]
func (h *categoryHandler) createCategory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

// updateCategory godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param categoryId path string true "Category ID"
// @Param category body dto.UpdateCategoryRequest true "Changes"
// @Success 200 {object} domain.Category
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/categories/{categoryId} [put]
func (h *categoryHandler) updateCategory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), c.Param("id"), c.Param("categoryId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update category")
		return
	}
	c.JSON(http.StatusOK, category)
}

// deleteCategory godoc
// @Summary Delete a category
// @Description Deactivates the category. Existing entries keep their reference.
// @Tags categories
// @Param id path string true "Business ID"
// @Param categoryId path string true "Category ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/categories/{categoryId} [delete]
func (h *categoryHandler) deleteCategory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), c.Param("id"), c.Param("categoryId"), userID); err != nil {
		respondError(c, err, "Failed to delete category")
		return
	}
	c.Status(http.StatusNoContent)
}
