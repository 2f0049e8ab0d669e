package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "pay-chain.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response, mapping domain sentinels and AppErrors to
// their HTTP status. Anything unclassified is a 500.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		})
		return
	}

	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, domainerrors.ErrInvalidInput):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, domainerrors.ErrConflict), errors.Is(err, domainerrors.ErrAlreadyExists):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, domainerrors.ErrMissingIdentityData):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, domainerrors.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, domainerrors.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	}

	c.JSON(status, gin.H{
		"code":    status,
		"message": message,
	})
}
