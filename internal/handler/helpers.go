package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/MartinOstios/backend-posco/internal/apierror"
	"github.com/MartinOstios/backend-posco/internal/authz"
	"github.com/MartinOstios/backend-posco/internal/dto"
	"github.com/MartinOstios/backend-posco/internal/middleware"

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

	// Report fields by their wire name.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	return bindWith(c, req, c.ShouldBindJSON)
}

// bindQuery is bindAndValidate for query-string DTOs.
func bindQuery(c *gin.Context, req interface{}) bool {
	return bindWith(c, req, c.ShouldBindQuery)
}

func bindWith(c *gin.Context, req interface{}, bind func(interface{}) error) bool {
	if err := bind(req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, apierror.New("Invalid request: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			respondError(c, err)
			return false
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// pageQuery binds skip/limit. Negative values are a validation error.
func pageQuery(c *gin.Context) (dto.PageQuery, bool) {
	var q dto.PageQuery
	ok := bindQuery(c, &q)
	return q, ok
}

// paramUUID parses a path parameter; a malformed id is a 400.
func paramUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, apierror.InvalidInput("Invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

func respondError(c *gin.Context, err error) { middleware.AbortWithError(c, err) }

func actor(c *gin.Context) *authz.Identity { return middleware.GetIdentity(c) }
