package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/FRANKLIN09020/smart-billing/internal/presentation/http/dto/response"
	"github.com/FRANKLIN09020/smart-billing/internal/presentation/http/middleware"
	"github.com/FRANKLIN09020/smart-billing/pkg/apperror"
	"github.com/FRANKLIN09020/smart-billing/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// GetOperatorName returns the display name of the signed-in operator
func GetOperatorName(c *gin.Context) string {
	if name := c.GetString(middleware.OperatorNameKey); name != "" {
		return name
	}
	return middleware.GetOperator(c)
}

// bindJSON binds the request body and writes the error response itself when
// binding fails.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]apperror.FieldError, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, apperror.FieldError{
					Field:   strings.ToLower(fe.Field()),
					Message: validationMessage(fe),
				})
			}
			response.ValidationError(c, fields)
			return false
		}
		response.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}

func productIDParam(c *gin.Context) (int64, bool) {
	id, ok := utils.ParseProductID(c.Param("id"))
	if !ok {
		response.ErrorWithCode(c, http.StatusBadRequest, "Invalid product ID")
	}
	return id, ok
}

func lineItemIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.ErrorWithCode(c, http.StatusBadRequest, "Invalid line item ID")
		return uuid.Nil, false
	}
	return id, true
}
