package handlers

import (
	"net/http"

	"bookfans/internal/models"
	"bookfans/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary      Create a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        input  body      models.BookCreate  true  "New book"
// @Success      201    {object}  models.Book
// @Failure      400    {object}  bookfans.ErrorResponse  "isbn already exists or category not found"
// @Failure      422    {object}  bookfans.ValidationErrorResponse
// @Router       /api/books/ [post]
func (h *Handler) createBook(c *gin.Context) {
	var input models.BookCreate
	if !h.bindJSON(c, &input) {
		return
	}
	b, err := h.services.Books.Create(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, "book_create", err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// @Summary  List books
// @Tags     books
// @Produce  json
// @Param    skip   query  int  false  "Offset"  default(0)
// @Param    limit  query  int  false  "Page size"  default(100)
// @Success  200  {array}   models.Book
// @Failure  422  {object}  bookfans.ValidationErrorResponse
// @Router   /api/books/ [get]
func (h *Handler) listBooks(c *gin.Context) {
	page, ok := h.pageFromQuery(c)
	if !ok {
		return
	}
	books, err := h.services.Books.List(c.Request.Context(), page)
	if err != nil {
		h.writeError(c, "book_list", err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// @Summary  Get a book
// @Tags     books
// @Produce  json
// @Param    id   path      int  true  "Book ID"
// @Success  200  {object}  models.Book
// @Failure  404  {object}  bookfans.ErrorResponse
// @Router   /api/books/{id} [get]
func (h *Handler) getBook(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		h.writeError(c, "book_get", &service.NotFoundError{Resource: "book"})
		return
	}
	b, err := h.services.Books.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "book_get", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// @Summary  List reviews of a book
// @Tags     reviews
// @Produce  json
// @Param    id     path   int  true   "Book ID"
// @Param    skip   query  int  false  "Offset"  default(0)
// @Param    limit  query  int  false  "Page size"  default(100)
// @Success  200  {array}   models.Review
// @Failure  404  {object}  bookfans.ErrorResponse
// @Router   /api/books/{id}/reviews [get]
func (h *Handler) listReviews(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		h.writeError(c, "review_list", &service.NotFoundError{Resource: "book"})
		return
	}
	page, ok := h.pageFromQuery(c)
	if !ok {
		return
	}
	reviews, err := h.services.Reviews.ListByBook(c.Request.Context(), id, page)
	if err != nil {
		h.writeError(c, "review_list", err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// @Summary   Review a book
// @Tags      reviews
// @Accept    json
// @Produce   json
// @Param     id     path      int                  true  "Book ID"
// @Param     input  body      models.ReviewCreate  true  "Review"
// @Success   201    {object}  models.Review
// @Failure   401    {object}  bookfans.ErrorResponse
// @Failure   404    {object}  bookfans.ErrorResponse
// @Failure   422    {object}  bookfans.ValidationErrorResponse
// @Router    /api/books/{id}/reviews [post]
// @Security  BearerAuth
func (h *Handler) createReview(c *gin.Context) {
	user, ok := currentUserFrom(c)
	if !ok {
		unauthorized(c, service.ErrUnauthenticated.Error())
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		h.writeError(c, "review_create", &service.NotFoundError{Resource: "book"})
		return
	}
	var input models.ReviewCreate
	if !h.bindJSON(c, &input) {
		return
	}
	r, err := h.services.Reviews.Create(c.Request.Context(), id, user.ID, input)
	if err != nil {
		h.writeError(c, "review_create", err)
		return
	}
	c.JSON(http.StatusCreated, r)
}
