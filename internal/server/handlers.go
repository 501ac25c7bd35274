package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/zephyrtronium/distexpr"
	"github.com/zephyrtronium/distexpr/internal/keypad"
)

type evaluateRequest struct {
	Expression string `json:"expression"`
}

type evaluateResponse struct {
	Expression string          `json:"expression"`
	Display    string          `json:"display"`
	Result     distexpr.Result `json:"result"`
}

type keysRequest struct {
	Keys []string `json:"keys"`
}

type padResponse struct {
	ID uuid.UUID `json:"id"`
	keypad.State
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) evaluate(c echo.Context) error {
	var req evaluateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body").SetInternal(err)
	}
	if len(req.Expression) > s.cfg.MaxExpressionLength {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("expression longer than %d bytes", s.cfg.MaxExpressionLength))
	}
	r, err := distexpr.EvalString(req.Expression)
	if err != nil {
		return fmt.Errorf("evaluate %q: %w", req.Expression, err)
	}
	return c.JSON(http.StatusOK, evaluateResponse{
		Expression: req.Expression,
		Display:    distexpr.Format(r),
		Result:     r,
	})
}

func (s *Server) createPad(c echo.Context) error {
	id, st := s.pads.Create()
	return c.JSON(http.StatusCreated, padResponse{ID: id, State: st})
}

func (s *Server) getPad(c echo.Context) error {
	id, err := padID(c)
	if err != nil {
		return err
	}
	st, err := s.pads.Get(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, padResponse{ID: id, State: st})
}

func (s *Server) pressKeys(c echo.Context) error {
	id, err := padID(c)
	if err != nil {
		return err
	}
	var req keysRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body").SetInternal(err)
	}
	if len(req.Keys) > s.cfg.MaxExpressionLength {
		return fmt.Errorf("%d keys: %w", len(req.Keys), ErrExpressionTooLong)
	}
	st, err := s.pads.Press(id, req.Keys)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, padResponse{ID: id, State: st})
}

func (s *Server) deletePad(c echo.Context) error {
	id, err := padID(c)
	if err != nil {
		return err
	}
	if !s.pads.Delete(id) {
		return ErrPadNotFound
	}
	return c.NoContent(http.StatusNoContent)
}

func padID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid pad id").SetInternal(err)
	}
	return id, nil
}
