package handlers

import (
	"net/http"

	"bookfans/internal/models"
	"bookfans/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        input  body      models.UserCreate  true  "New user"
// @Success      201    {object}  models.User
// @Failure      400    {object}  bookfans.ErrorResponse  "username or email already registered"
// @Failure      422    {object}  bookfans.ValidationErrorResponse
// @Router       /api/users/ [post]
func (h *Handler) createUser(c *gin.Context) {
	var input models.UserCreate
	if !h.bindJSON(c, &input) {
		return
	}

	u, err := h.services.Users.Register(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, "user_create", err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// @Summary  List users
// @Tags     users
// @Produce  json
// @Param    skip   query  int  false  "Offset"  default(0)
// @Param    limit  query  int  false  "Page size"  default(100)
// @Success  200  {array}   models.User
// @Failure  422  {object}  bookfans.ValidationErrorResponse
// @Router   /api/users/ [get]
func (h *Handler) listUsers(c *gin.Context) {
	page, ok := h.pageFromQuery(c)
	if !ok {
		return
	}
	users, err := h.services.Users.List(c.Request.Context(), page)
	if err != nil {
		h.writeError(c, "user_list", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// @Summary  Get a user
// @Tags     users
// @Produce  json
// @Param    id   path      int  true  "User ID"
// @Success  200  {object}  models.User
// @Failure  404  {object}  bookfans.ErrorResponse
// @Router   /api/users/{id} [get]
func (h *Handler) getUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		h.writeError(c, "user_get", &service.NotFoundError{Resource: "user"})
		return
	}
	u, err := h.services.Users.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "user_get", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary   Current user
// @Tags      users
// @Produce   json
// @Success   200  {object}  models.User
// @Failure   401  {object}  bookfans.ErrorResponse
// @Router    /api/users/me [get]
// @Security  BearerAuth
func (h *Handler) currentUser(c *gin.Context) {
	u, ok := currentUserFrom(c)
	if !ok {
		unauthorized(c, service.ErrUnauthenticated.Error())
		return
	}
	c.JSON(http.StatusOK, u)
}
