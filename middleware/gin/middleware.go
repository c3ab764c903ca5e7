package ginmw

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reoring/restcodec"
	"github.com/reoring/restcodec/mapper"
	"github.com/reoring/restcodec/middleware"
)

// BindJSON reads the request body as T through m (or a mapper with
// DefaultParseOpt limits when m is nil), stores the value in the request
// context, and on failure aborts with 400 and the failures payload.
func BindJSON[T any](m *mapper.ObjectMapper) gin.HandlerFunc {
	if m == nil {
		m = mapper.New(mapper.WithParseOpt(middleware.DefaultParseOpt()))
	}
	return func(c *gin.Context) {
		v, err := mapper.ReadAs[T](m, c.Request.Body)
		if err != nil {
			switch pe, ok := restcodec.AsParseError(err); {
			case ok:
				c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrorPayload(pe.Failures))
			case errors.Is(err, mapper.ErrUnsupportedType):
				c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, middleware.ErrorMessage(err))
			default:
				c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrorMessage(err))
			}
			return
		}
		// store decoded in request context
		c.Request = c.Request.WithContext(middleware.ContextWithValue(c.Request.Context(), v))
		c.Next()
	}
}

// GetValue fetches the decoded T from gin.Context.
func GetValue[T any](c *gin.Context) (T, bool) {
	return middleware.ValueFromContext[T](c.Request.Context())
}
