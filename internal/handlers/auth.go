package handlers

import (
	"errors"
	"net/http"

	"bookfans"
	"bookfans/internal/service"
	"bookfans/internal/validation"

	"github.com/gin-gonic/gin"
)

// loginCredentials is bound from an OAuth2 password form or a JSON body.
type loginCredentials struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// @Summary      Log in
// @Description  Exchange username and password for a bearer token. Accepts an OAuth2 password form or JSON.
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Accept       json
// @Produce      json
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      200  {object}  bookfans.TokenResponse
// @Failure      400  {object}  bookfans.ErrorResponse
// @Failure      401  {object}  bookfans.ErrorResponse
// @Failure      422  {object}  bookfans.ValidationErrorResponse
// @Router       /api/login/ [post]
func (h *Handler) login(c *gin.Context) {
	var input loginCredentials
	if err := c.ShouldBind(&input); err != nil {
		if h.log != nil {
			h.log.Infow("auth_bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, bookfans.ErrorResponse{Error: "malformed request body"})
		return
	}
	if err := validation.Credentials(input.Username, input.Password); err != nil {
		h.writeError(c, "auth_login", err)
		return
	}

	token, err := h.services.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.countLogin("rejected")
			if h.log != nil {
				h.log.Infow("auth_login_failed", "username", input.Username, "request_id", requestIDFrom(c))
			}
			unauthorized(c, service.ErrInvalidCredentials.Error())
			return
		}
		h.countLogin("error")
		h.writeError(c, "auth_login", err)
		return
	}

	h.countLogin("ok")
	c.JSON(http.StatusOK, bookfans.TokenResponse{AccessToken: token.Token, TokenType: token.TokenType})
}
