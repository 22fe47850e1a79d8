package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/HanreDelport/Inventory-Manager/internal/apierror"
	"github.com/HanreDelport/Inventory-Manager/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// writeError maps core engine errors onto HTTP status codes. Anything
// unrecognized — including data-consistency faults — surfaces as a 500 so it
// gets investigated rather than retried by the client.
func writeError(c *gin.Context, err error) {
	var (
		insufficient *domain.InsufficientInventoryError
		conflict     *domain.ReferentialConflictError
		inconsistent *domain.DataConsistencyError
	)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, domain.ErrDuplicateName):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.As(err, &inconsistent):
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
	case errors.As(err, &insufficient),
		errors.Is(err, domain.ErrDuplicateBomEntry),
		errors.Is(err, domain.ErrCircularReference),
		errors.Is(err, domain.ErrInvalidBom),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrAlreadyCompleted),
		errors.Is(err, domain.ErrBomTooDeep),
		errors.Is(err, domain.ErrInvalidStockAdjustment):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, apierror.New("Internal server error"))
	}
}

// parseID extracts the :id path parameter. Writes the 400 response itself
// when the value is not a valid UUID; callers must return on !ok.
func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return uuid.Nil, false
	}
	return id, true
}
