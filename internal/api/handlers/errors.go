package handlers

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Daksh-create349/stock-Master/internal/domain"
	"github.com/Daksh-create349/stock-Master/pkg/errors"
	"github.com/Daksh-create349/stock-Master/pkg/logging"
	"github.com/Daksh-create349/stock-Master/pkg/middleware"
)

// domainMappings turns domain sentinels into API errors. Rule rejections
// are 422 so clients can tell them apart from malformed requests.
var domainMappings = []errors.Mapping{
	{Target: domain.ErrGeofenceViolation, Build: geofenceError},
	{Target: domain.ErrInsufficientStock, Build: insufficientStockError},
	{Target: domain.ErrOperationNotFound, Build: notFound("operation")},
	{Target: domain.ErrProductNotFound, Build: notFound("product")},
	{Target: domain.ErrContactNotFound, Build: notFound("contact")},
	{Target: errNotificationNotFound, Build: notFound("notification")},
	{Target: domain.ErrInvalidStatusTransition, Build: func(err error) *errors.AppError {
		return errors.NewAppError(errors.CodeBusinessRule, err.Error(), http.StatusConflict)
	}},
	{Target: domain.ErrNegativeStock, Build: func(err error) *errors.AppError {
		return errors.ErrUnprocessable(errors.CodeBusinessRule, err.Error())
	}},
	{Target: domain.ErrWarehouseNotFound, Build: validation},
	{Target: domain.ErrInvalidQuantity, Build: validation},
	{Target: domain.ErrEmptyOperation, Build: validation},
	{Target: domain.ErrInvalidOperationType, Build: validation},
	{Target: domain.ErrInvalidContactType, Build: validation},
	{Target: domain.ErrInvalidStatus, Build: validation},
}

func geofenceError(err error) *errors.AppError {
	appErr := errors.ErrUnprocessable(errors.CodeGeofenceViolation, err.Error())
	var gv *domain.GeofenceViolationError
	if stderrors.As(err, &gv) {
		appErr.WithDetails(map[string]string{
			"warehouse": gv.Warehouse,
			"distance":  fmt.Sprintf("%.0f", gv.Distance),
			"radius":    fmt.Sprintf("%.0f", gv.Radius),
		})
	}
	return appErr
}

func insufficientStockError(err error) *errors.AppError {
	appErr := errors.ErrUnprocessable(errors.CodeInsufficientStock, err.Error())
	var ise *domain.InsufficientStockError
	if stderrors.As(err, &ise) {
		appErr.WithDetail("shortages", ise.Detail())
	}
	return appErr
}

var errNotificationNotFound = stderrors.New("notification not found")

func notFound(resource string) func(error) *errors.AppError {
	return func(error) *errors.AppError { return errors.ErrNotFound(resource) }
}

func validation(err error) *errors.AppError {
	return errors.ErrValidation(err.Error())
}

func respondError(c *gin.Context, logger *logging.Logger, err error) {
	middleware.RespondError(c, logger.Logger, err, domainMappings...)
}

func respondAppError(c *gin.Context, logger *logging.Logger, appErr *errors.AppError) {
	middleware.RespondAppError(c, logger.Logger, appErr)
}
