package handler

import (
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"healthtrack/internal/auth"
	"healthtrack/internal/httperr"
)

// currentClaims extracts the claims the JWT middleware attached to the request.
func currentClaims(c echo.Context) (*auth.Claims, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	return claims, nil
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

// domainError maps a service error onto the standard error response.
func domainError(c echo.Context, err error) error {
	he := httperr.Map(err)
	return c.JSON(he.StatusCode, he.ToErrorResponse())
}
