package http

import (
	"net/http"

	"parcelhub/internal/core/application/readmodel"
	"parcelhub/internal/core/application/usecases/commands"

	"github.com/labstack/echo/v4"
)

// RegisterCourier godoc
//
//	@Summary	Register a courier
//	@Tags		couriers
//	@Accept		json
//	@Produce	json
//	@Param		body	body		NewCourierRequest	true	"courier"
//	@Success	201		{object}	readmodel.CourierView
//	@Failure	400		{object}	Error
//	@Failure	409		{object}	Error
//	@Router		/couriers [post]
func (s *Server) RegisterCourier(c echo.Context) error {
	var req NewCourierRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewRegisterCourierCommand(req.Username)
	if err != nil {
		return err
	}

	registered, err := s.h.RegisterCourier.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, readmodel.NewCourierView(registered))
}
