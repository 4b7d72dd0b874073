package delivery

import (
	"errors"
	"net/http"

	"catalog_service/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Response struct {
	Status  string              `json:"Status"`
	Message string              `json:"Message"`
	Data    interface{}         `json:"Data,omitempty"`
	Errors  []domain.FieldError `json:"Errors,omitempty"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Status:  "Success",
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, Response{
		Status:  "Fail",
		Message: message,
	})
}

// respondError writes err with the status mapErrorToStatus picks for it. Internal failures are
// logged and reported without their details.
func respondError(c *gin.Context, log *logrus.Logger, err error) {
	statusCode := mapErrorToStatus(err)
	if statusCode == http.StatusInternalServerError {
		log.WithField("request_id", c.GetString(requestIDKey)).Errorf("Unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		ErrorResponse(c, statusCode, "Internal server error")
		return
	}

	resp := Response{Status: "Fail", Message: err.Error()}
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		resp.Message = "Validation failed"
		resp.Errors = vErr.Fields
	}
	c.AbortWithStatusJSON(statusCode, resp)
}

func mapErrorToStatus(err error) int {
	var vErr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.As(err, &vErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrInvalidSort),
		errors.Is(err, domain.ErrIntegrityViolation):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
