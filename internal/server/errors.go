package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zephyrtronium/distexpr"
	"github.com/zephyrtronium/distexpr/internal/keypad"
)

// ErrorHandler maps evaluation and pad errors onto HTTP responses. Parse and
// arithmetic failures are the client's expression being unusable, so they
// answer 422 with the same message the calculator would display.
func ErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var perr *distexpr.ParseError
		if errors.As(err, &perr) {
			_ = c.JSON(http.StatusUnprocessableEntity, map[string]any{
				"error":  perr.Msg,
				"title":  "parse error",
				"column": perr.Col,
			})
			return
		}

		var aerr *distexpr.ArithmeticError
		if errors.As(err, &aerr) {
			_ = c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": aerr.Msg, "title": "arithmetic error"})
			return
		}

		switch {
		case errors.Is(err, ErrPadNotFound):
			_ = c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		case errors.Is(err, keypad.ErrUnknownKey), errors.Is(err, ErrExpressionTooLong):
			_ = c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := fmt.Sprintf("%v", he.Message)
			_ = c.JSON(he.Code, map[string]string{"error": msg})
			return
		}

		slog.Error("Unhandled error", "error", err)
		_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
