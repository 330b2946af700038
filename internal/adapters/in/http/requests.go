package http

import (
	"net/http"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type NewParcelRequest struct {
	PickupAddress   string  `json:"pickupAddress"`
	DeliveryAddress string  `json:"deliveryAddress"`
	Weight          float64 `json:"weight"`
	Description     string  `json:"description"`
}

type NewCourierRequest struct {
	Username string `json:"username"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type LocationRequest struct {
	Latitude  *float64 `json:"lat"`
	Longitude *float64 `json:"lon"`
	Zone      string   `json:"zone"`
}

func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return nil
}

func pathID(c echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}
