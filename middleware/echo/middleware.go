package echomw

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/reoring/restcodec"
	"github.com/reoring/restcodec/mapper"
	"github.com/reoring/restcodec/middleware"
)

// BindJSON reads the request body as T through m, stores the value in the
// request context on success, or responds 400 with the failures when the body
// is invalid. A nil m uses a mapper with DefaultParseOpt limits.
func BindJSON[T any](m *mapper.ObjectMapper) echo.MiddlewareFunc {
	if m == nil {
		m = mapper.New(mapper.WithParseOpt(middleware.DefaultParseOpt()))
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v, err := mapper.ReadAs[T](m, c.Request().Body)
			if err != nil {
				if pe, ok := restcodec.AsParseError(err); ok {
					return c.JSON(http.StatusBadRequest, middleware.ErrorPayload(pe.Failures))
				}
				if errors.Is(err, mapper.ErrUnsupportedType) {
					return c.JSON(http.StatusUnsupportedMediaType, middleware.ErrorMessage(err))
				}
				return c.JSON(http.StatusBadRequest, middleware.ErrorMessage(err))
			}
			ctx := middleware.ContextWithValue(c.Request().Context(), v)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetValue fetches the decoded T from echo.Context.
func GetValue[T any](c echo.Context) (T, bool) {
	return middleware.ValueFromContext[T](c.Request().Context())
}
