package http

import (
	"net/http"

	"parcelhub/internal/core/application/readmodel"
	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateParcel godoc
//
//	@Summary	Create a parcel for the calling customer
//	@Tags		parcels
//	@Accept		json
//	@Produce	json
//	@Param		X-Customer-ID	header		string				true	"customer id"
//	@Param		body			body		NewParcelRequest	true	"parcel"
//	@Success	201				{object}	readmodel.ParcelView
//	@Failure	400				{object}	Error
//	@Failure	401				{object}	Error
//	@Router		/parcels [post]
func (s *Server) CreateParcel(c echo.Context) error {
	var req NewParcelRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCreateParcelCommand(customerID(c), parcel.Details{
		PickupAddress:   req.PickupAddress,
		DeliveryAddress: req.DeliveryAddress,
		WeightKg:        req.Weight,
		Description:     req.Description,
	})
	if err != nil {
		return err
	}

	p, err := s.h.CreateParcel.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, readmodel.NewParcelView(p))
}

// TakeParcel godoc
//
//	@Summary	Take a pending parcel
//	@Tags		parcels
//	@Produce	json
//	@Param		X-Courier-Username	header		string	true	"courier username"
//	@Param		id					path		string	true	"parcel id"
//	@Success	200					{object}	readmodel.ParcelView
//	@Failure	404					{object}	Error
//	@Failure	409					{object}	Error
//	@Router		/parcels/{id}/take [post]
func (s *Server) TakeParcel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewTakeParcelCommand(id, courierUsername(c))
	if err != nil {
		return err
	}

	p, err := s.h.TakeParcel.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, readmodel.NewParcelView(p))
}

// DropParcel godoc
//
//	@Summary	Give a held parcel back to the pool
//	@Tags		parcels
//	@Produce	json
//	@Param		X-Courier-Username	header		string	true	"courier username"
//	@Param		id					path		string	true	"parcel id"
//	@Success	200					{object}	readmodel.ParcelView
//	@Failure	403					{object}	Error
//	@Failure	409					{object}	Error
//	@Router		/parcels/{id}/drop [post]
func (s *Server) DropParcel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewDropParcelCommand(id, courierUsername(c))
	if err != nil {
		return err
	}

	p, err := s.h.DropParcel.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, readmodel.NewParcelView(p))
}

// UpdateParcelStatus godoc
//
//	@Summary	Move a held parcel along its lifecycle
//	@Tags		parcels
//	@Accept		json
//	@Produce	json
//	@Param		X-Courier-Username	header		string			true	"courier username"
//	@Param		id					path		string			true	"parcel id"
//	@Param		body				body		StatusRequest	true	"target status"
//	@Success	200					{object}	readmodel.ParcelView
//	@Failure	400					{object}	Error
//	@Failure	403					{object}	Error
//	@Failure	409					{object}	Error
//	@Router		/parcels/{id}/status [put]
func (s *Server) UpdateParcelStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req StatusRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	status, err := parcel.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateParcelStatusCommand(id, courierUsername(c), status)
	if err != nil {
		return err
	}

	p, err := s.h.UpdateStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, readmodel.NewParcelView(p))
}

// UpdateParcelLocation godoc
//
//	@Summary	Report the location of a held parcel
//	@Tags		parcels
//	@Accept		json
//	@Produce	json
//	@Param		X-Courier-Username	header		string			true	"courier username"
//	@Param		id					path		string			true	"parcel id"
//	@Param		body				body		LocationRequest	true	"location"
//	@Success	200					{object}	readmodel.ParcelView
//	@Failure	403					{object}	Error
//	@Failure	412					{object}	Error
//	@Router		/parcels/{id}/location [put]
func (s *Server) UpdateParcelLocation(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req LocationRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	if req.Latitude == nil || req.Longitude == nil {
		return errs.NewValueIsRequiredError("lat/lon")
	}
	location, err := kernel.NewLocation(*req.Latitude, *req.Longitude, req.Zone)
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateParcelLocationCommand(id, courierUsername(c), location)
	if err != nil {
		return err
	}

	p, err := s.h.UpdateLocation.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, readmodel.NewParcelView(p))
}

// CancelParcel godoc
//
//	@Summary	Cancel one of the caller's parcels
//	@Tags		parcels
//	@Produce	json
//	@Param		X-Customer-ID	header		string	true	"customer id"
//	@Param		id				path		string	true	"parcel id"
//	@Success	200				{object}	readmodel.ParcelView
//	@Failure	403				{object}	Error
//	@Failure	409				{object}	Error
//	@Router		/parcels/{id}/cancel [post]
func (s *Server) CancelParcel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewCancelParcelCommand(id, customerID(c))
	if err != nil {
		return err
	}

	p, err := s.h.CancelParcel.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, readmodel.NewParcelView(p))
}
