package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/Daksh-create349/stock-Master/pkg/errors"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

var customValidators = map[string]validator.Func{
	"sku":            validateSKU,
	"operation_type": validateOperationType,
	"contact_type":   validateContactType,
	"safe_string":    validateSafeString,
}

// InitValidator registers the stock validators on a standalone validator
// and on gin's binding engine.
func InitValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		register(validate)

		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			register(v)
		}
	})
	return validate
}

func register(v *validator.Validate) {
	for tag, fn := range customValidators {
		_ = v.RegisterValidation(tag, fn)
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
}

var (
	skuRegex        = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{1,49}$`)
	safeStringRegex = regexp.MustCompile(`^[^\x00-\x08\x0B\x0C\x0E-\x1F<>]*$`)
)

func validateSKU(fl validator.FieldLevel) bool {
	return skuRegex.MatchString(fl.Field().String())
}

func validateOperationType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Receipt", "Delivery", "Internal", "Adjustment":
		return true
	}
	return false
}

func validateContactType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Vendor", "Customer", "Internal":
		return true
	}
	return false
}

func validateSafeString(fl validator.FieldLevel) bool {
	return safeStringRegex.MatchString(fl.Field().String())
}

var fieldMessages = map[string]string{
	"required":       "is required",
	"email":          "must be a valid email address",
	"sku":            "must be a valid SKU (uppercase alphanumeric with dashes)",
	"operation_type": "must be one of: Receipt, Delivery, Internal, Adjustment",
	"contact_type":   "must be one of: Vendor, Customer, Internal",
	"safe_string":    "contains invalid characters",
}

var paramMessages = map[string]string{
	"min":   "must be at least ",
	"max":   "must be at most ",
	"gt":    "must be greater than ",
	"gte":   "must be greater than or equal to ",
	"lte":   "must be less than or equal to ",
	"oneof": "must be one of: ",
}

func describe(e validator.FieldError) string {
	if msg, ok := fieldMessages[e.Tag()]; ok {
		return msg
	}
	if prefix, ok := paramMessages[e.Tag()]; ok {
		return prefix + e.Param()
	}
	return "is invalid"
}

// BindAndValidate decodes the JSON body into obj. Tag violations come back
// as a VALIDATION_ERROR keyed by json field name; anything that fails to
// decode is a BAD_REQUEST.
func BindAndValidate(c *gin.Context, obj any) *apperrors.AppError {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return nil
	}
	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return apperrors.ErrBadRequest("invalid request body: " + err.Error())
	}
	fields := make(map[string]string, len(invalid))
	for _, fe := range invalid {
		fields[fe.Field()] = describe(fe)
	}
	return apperrors.ErrValidationWithFields("validation failed", fields)
}

// InputSanitizer trims query values and strips NUL bytes from them.
func InputSanitizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.RawQuery != "" {
			query := c.Request.URL.Query()
			for _, values := range query {
				for i, v := range values {
					values[i] = strings.TrimSpace(strings.ReplaceAll(v, "\x00", ""))
				}
			}
			c.Request.URL.RawQuery = query.Encode()
		}
		c.Next()
	}
}

// ContentType answers 415 to a write whose non-empty body is not JSON.
func ContentType() gin.HandlerFunc {
	return func(c *gin.Context) {
		write := c.Request.Method == http.MethodPost || c.Request.Method == http.MethodPut || c.Request.Method == http.MethodPatch
		if write && c.Request.ContentLength > 0 && !strings.HasPrefix(c.ContentType(), "application/json") {
			AbortWithAppError(c, apperrors.NewAppError("INVALID_CONTENT_TYPE",
				"Content-Type must be application/json", http.StatusUnsupportedMediaType))
			return
		}
		c.Next()
	}
}
