package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"bookfans"
	"bookfans/internal/service"
	"bookfans/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	msgValidationFailed = "validation failed"
	msgInternal         = "internal server error"
)

var jsonNamesOnce sync.Once

// useJSONFieldNames makes gin's binding validator report fields by their json name.
func useJSONFieldNames() {
	jsonNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, bookfans.ErrorResponse{Error: msg})
}

func validationFailed(c *gin.Context, errs validation.Errors) {
	fields := make([]bookfans.FieldError, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, bookfans.FieldError{Field: fe.Field, Message: fe.Message})
	}
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, bookfans.ValidationErrorResponse{
		Error:  msgValidationFailed,
		Fields: fields,
	})
}

// bindJSON decodes the request body into dst. Malformed JSON is a 400;
// a missing required field is reported like any other validation failure.
func (h *Handler) bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		errs := make(validation.Errors, 0, len(ve))
		for _, fe := range ve {
			errs = append(errs, validation.FieldError{Field: fe.Field(), Message: "is required"})
		}
		validationFailed(c, errs)
		return false
	}
	if h.log != nil {
		h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, bookfans.ErrorResponse{Error: "malformed request body"})
	return false
}

// writeError translates a service error into a status code and body.
// op names the failed operation in logs.
func (h *Handler) writeError(c *gin.Context, op string, err error) {
	var (
		verrs    validation.Errors
		conflict *service.ConflictError
		missing  *service.NotFoundError
	)
	switch {
	case errors.As(err, &verrs):
		validationFailed(c, verrs)
	case errors.As(err, &conflict):
		c.JSON(http.StatusBadRequest, bookfans.ErrorResponse{Error: conflict.Message})
	case errors.Is(err, service.ErrCategoryNotFound), errors.Is(err, service.ErrInvalidTimeRange):
		c.JSON(http.StatusBadRequest, bookfans.ErrorResponse{Error: err.Error()})
	case errors.As(err, &missing):
		c.JSON(http.StatusNotFound, bookfans.ErrorResponse{Error: missing.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		unauthorized(c, service.ErrInvalidCredentials.Error())
	case errors.Is(err, service.ErrUnauthenticated):
		unauthorized(c, service.ErrUnauthenticated.Error())
	default:
		if h.log != nil {
			h.log.Errorw(op+"_failed", "err", err, "request_id", requestIDFrom(c))
		}
		c.JSON(http.StatusInternalServerError, bookfans.ErrorResponse{Error: msgInternal})
		return
	}
	if h.log != nil {
		h.log.Infow(op+"_rejected", "err", err, "request_id", requestIDFrom(c))
	}
}
