package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/FMG-lab/surya-painting/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// bindJSON decodes the request body into req. An empty body decodes to the
// zero value so that required-field validation yields the endpoint's
// documented message instead of a generic bind error. Malformed JSON is a
// 400 — the caller must return immediately when this reports false.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON body"))
		return false
	}
	return true
}

// checkValid runs go-playground/validator tags over req and, on the first
// failure, responds 422 with the endpoint-specific message produced by msg.
func checkValid(c *gin.Context, req interface{}, msg func(fe validator.FieldError) string) bool {
	if err := validate.Struct(req); err != nil {
		var fields validator.ValidationErrors
		if errors.As(err, &fields) && len(fields) > 0 {
			c.JSON(http.StatusUnprocessableEntity, apierror.New(msg(fields[0])))
		} else {
			c.JSON(http.StatusUnprocessableEntity, apierror.New("validation failed"))
		}
		return false
	}
	return true
}
