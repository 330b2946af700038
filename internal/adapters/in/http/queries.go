package http

import (
	"net/http"

	"parcelhub/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// GetParcelHistory godoc
//
//	@Summary	Tracking history of a parcel, oldest first
//	@Tags		parcels
//	@Produce	json
//	@Param		id	path	string	true	"parcel id"
//	@Success	200	{array}	readmodel.HistoryEntryView
//	@Failure	404	{object}	Error
//	@Router		/parcels/{id}/history [get]
func (s *Server) GetParcelHistory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetParcelHistoryQuery(id)
	if err != nil {
		return err
	}

	entries, err := s.h.ParcelHistory.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// ListAvailableParcels godoc
//
//	@Summary	Pending parcels, oldest first
//	@Tags		parcels
//	@Produce	json
//	@Success	200	{array}	readmodel.ParcelView
//	@Router		/parcels/available [get]
func (s *Server) ListAvailableParcels(c echo.Context) error {
	views, err := s.h.AvailableParcels.Handle(c.Request().Context(), queries.NewListAvailableParcelsQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// ListCourierActiveParcels godoc
//
//	@Summary	Parcels a courier currently holds
//	@Tags		couriers
//	@Produce	json
//	@Param		id	path	string	true	"courier id"
//	@Success	200	{array}	readmodel.ParcelView
//	@Failure	404	{object}	Error
//	@Router		/couriers/{id}/parcels/active [get]
func (s *Server) ListCourierActiveParcels(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewListActiveParcelsForCourierQuery(id)
	if err != nil {
		return err
	}

	views, err := s.h.CourierActiveParcels.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// ListCustomerParcels godoc
//
//	@Summary	All parcels of a customer
//	@Tags		customers
//	@Produce	json
//	@Param		id	path	string	true	"customer id"
//	@Success	200	{array}	readmodel.ParcelView
//	@Router		/customers/{id}/parcels [get]
func (s *Server) ListCustomerParcels(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewListCustomerParcelsQuery(id)
	if err != nil {
		return err
	}

	views, err := s.h.CustomerParcels.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// TrackParcel godoc
//
//	@Summary	Public lookup by tracking number
//	@Tags		tracking
//	@Produce	json
//	@Param		trackingNumber	path		string	true	"tracking number"
//	@Success	200				{object}	readmodel.ParcelView
//	@Failure	404				{object}	Error
//	@Router		/tracking/{trackingNumber} [get]
func (s *Server) TrackParcel(c echo.Context) error {
	query, err := queries.NewGetParcelByTrackingNumberQuery(c.Param("trackingNumber"))
	if err != nil {
		return err
	}

	view, err := s.h.TrackingLookup.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}
