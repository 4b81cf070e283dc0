package handlers

import (
	"net/http"

	"bookfans/internal/models"
	"bookfans/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary  Create a category
// @Tags     categories
// @Accept   json
// @Produce  json
// @Param    input  body      models.CategoryCreate  true  "New category"
// @Success  201    {object}  models.Category
// @Failure  400    {object}  bookfans.ErrorResponse  "category name already exists"
// @Failure  422    {object}  bookfans.ValidationErrorResponse
// @Router   /api/categories/ [post]
func (h *Handler) createCategory(c *gin.Context) {
	var input models.CategoryCreate
	if !h.bindJSON(c, &input) {
		return
	}
	cat, err := h.services.Categories.Create(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, "category_create", err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// @Summary  List categories
// @Tags     categories
// @Produce  json
// @Param    skip   query  int  false  "Offset"  default(0)
// @Param    limit  query  int  false  "Page size"  default(100)
// @Success  200  {array}   models.Category
// @Router   /api/categories/ [get]
func (h *Handler) listCategories(c *gin.Context) {
	page, ok := h.pageFromQuery(c)
	if !ok {
		return
	}
	cats, err := h.services.Categories.List(c.Request.Context(), page)
	if err != nil {
		h.writeError(c, "category_list", err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

// @Summary  Get a category
// @Tags     categories
// @Produce  json
// @Param    id   path      int  true  "Category ID"
// @Success  200  {object}  models.Category
// @Failure  404  {object}  bookfans.ErrorResponse
// @Router   /api/categories/{id} [get]
func (h *Handler) getCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		h.writeError(c, "category_get", &service.NotFoundError{Resource: "category"})
		return
	}
	cat, err := h.services.Categories.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "category_get", err)
		return
	}
	c.JSON(http.StatusOK, cat)
}
