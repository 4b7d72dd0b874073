package delivery

import (
	"fmt"
	"net/http"

	"catalog_service/internal/dto"
	"catalog_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CategoryHandler struct {
	useCase usecase.CategoryUseCase
	log     *logrus.Logger
}

func NewCategoryHandler(uc usecase.CategoryUseCase, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CategoryHandler) RegisterRoutes(router gin.IRouter) {
	categories := router.Group("/categories")
	{
		categories.POST("", h.CreateCategory)
		categories.GET("", h.ListCategories)
		categories.GET("/:id", h.GetCategoryByID)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for create category: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	category, err := h.useCase.Insert(c.Request.Context(), req)
	if err != nil {
		h.log.Warnf("Failed to create category '%s': %v", req.Name, err)
		respondError(c, h.log, err)
		return
	}

	h.log.Infof("Category created successfully: ID %d, Name %s", category.ID, category.Name)
	c.Header("Location", fmt.Sprintf("%s/%d", c.FullPath(), category.ID))
	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.log.Warnf("Invalid category ID parameter: %s", c.Param("id"))
		ErrorResponse(c, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	category, err := h.useCase.FindByID(c.Request.Context(), id)
	if err != nil {
		h.log.Warnf("Failed to get category by ID %d: %v", id, err)
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.log.Warnf("Invalid category ID parameter for update: %s", c.Param("id"))
		ErrorResponse(c, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for update category ID %d: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	category, err := h.useCase.Update(c.Request.Context(), id, req)
	if err != nil {
		h.log.Warnf("Failed to update category ID %d: %v", id, err)
		respondError(c, h.log, err)
		return
	}

	h.log.Infof("Category updated successfully: ID %d", category.ID)
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.log.Warnf("Invalid category ID parameter for delete: %s", c.Param("id"))
		ErrorResponse(c, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	if err := h.useCase.Delete(c.Request.Context(), id); err != nil {
		h.log.Warnf("Failed to delete category ID %d: %v", id, err)
		respondError(c, h.log, err)
		return
	}

	h.log.Infof("Category deleted successfully: ID %d", id)
	c.Status(http.StatusNoContent)
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	page, err := pageRequest(c, h.log)
	if err != nil {
		h.log.Warnf("Invalid sort parameter for category listing: %v", err)
		respondError(c, h.log, err)
		return
	}

	result, err := h.useCase.FindAllPaged(c.Request.Context(), page)
	if err != nil {
		h.log.Errorf("Failed to list categories: %v", err)
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
