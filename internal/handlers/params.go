package handlers

import (
	"strconv"

	"bookfans/internal/service"
	"bookfans/internal/validation"

	"github.com/gin-gonic/gin"
)

// pageFromQuery reads ?skip and ?limit. It writes a 422 and returns false on bad input.
func (h *Handler) pageFromQuery(c *gin.Context) (service.Page, bool) {
	p := service.Page{Skip: 0, Limit: h.defaultLimit}
	var errs validation.Errors

	if s := c.Query("skip"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			errs = append(errs, validation.FieldError{Field: "skip", Message: "must be an integer"})
		}
		p.Skip = v
	}
	if s := c.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			errs = append(errs, validation.FieldError{Field: "limit", Message: "must be an integer"})
		}
		p.Limit = v
	}
	if len(errs) > 0 {
		validationFailed(c, errs)
		return service.Page{}, false
	}
	if err := validation.Page(p.Skip, p.Limit, h.maxLimit); err != nil {
		h.writeError(c, "page", err)
		return service.Page{}, false
	}
	return p, true
}

// idParam parses a positive integer path parameter. Anything else is a 404
// since no such resource can exist.
func idParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
