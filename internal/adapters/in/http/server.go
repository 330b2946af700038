// Package http exposes the parcel operations as a REST API under /api/v1.
//
// Caller identity comes from the upstream identity layer: courier routes need
// the X-Courier-Username header and customer routes need X-Customer-ID.
// Bearer tokens that were revoked through POST /api/v1/auth/revoke are
// refused on every route.
package http

import (
	"log/slog"
	"net/http"
	"time"

	_ "parcelhub/docs" // registers the swagger document
	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const DefaultRevocationTTL = 24 * time.Hour

// Handlers are the use cases the API delegates to.
type Handlers struct {
	CreateParcel    commands.CreateParcelCommandHandler
	RegisterCourier commands.RegisterCourierCommandHandler
	TakeParcel      commands.TakeParcelCommandHandler
	DropParcel      commands.DropParcelCommandHandler
	UpdateStatus    commands.UpdateParcelStatusCommandHandler
	UpdateLocation  commands.UpdateParcelLocationCommandHandler
	CancelParcel    commands.CancelParcelCommandHandler

	ParcelHistory        queries.GetParcelHistoryQueryHandler
	AvailableParcels     queries.ListAvailableParcelsQueryHandler
	CourierActiveParcels queries.ListActiveParcelsForCourierQueryHandler
	CustomerParcels      queries.ListCustomerParcelsQueryHandler
	TrackingLookup       queries.GetParcelByTrackingNumberQueryHandler
}

// Options tunes token revocation. Without a store the revoke endpoint
// answers 501 and no token is ever refused.
type Options struct {
	Revocations   TokenRevocations
	RevocationTTL time.Duration
}

// Server holds the REST handlers.
type Server struct {
	h             Handlers
	revocations   TokenRevocations
	revocationTTL time.Duration
	logger        *slog.Logger
}

func NewServer(h Handlers, logger *slog.Logger, opts Options) *Server {
	if opts.RevocationTTL <= 0 {
		opts.RevocationTTL = DefaultRevocationTTL
	}
	return &Server{
		h:             h,
		revocations:   opts.Revocations,
		revocationTTL: opts.RevocationTTL,
		logger:        logger.With("component", "HTTPServer"),
	}
}

// NewEcho builds an echo instance with the error handler, middleware and
// every route installed.
func (s *Server) NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = s.handleError
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(s.rejectRevokedTokens)

	s.Register(e)
	return e
}

// Register installs the routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1")

	v1.POST("/auth/revoke", s.RevokeToken)

	v1.POST("/couriers", s.RegisterCourier)
	v1.GET("/couriers/:id/parcels/active", s.ListCourierActiveParcels)
	v1.GET("/customers/:id/parcels", s.ListCustomerParcels)
	v1.GET("/tracking/:trackingNumber", s.TrackParcel)

	parcels := v1.Group("/parcels")
	parcels.GET("/available", s.ListAvailableParcels)
	parcels.GET("/:id/history", s.GetParcelHistory)

	parcels.POST("", s.CreateParcel, requireCustomer)
	parcels.POST("/:id/cancel", s.CancelParcel, requireCustomer)

	parcels.POST("/:id/take", s.TakeParcel, requireCourier)
	parcels.POST("/:id/drop", s.DropParcel, requireCourier)
	parcels.PUT("/:id/status", s.UpdateParcelStatus, requireCourier)
	parcels.PUT("/:id/location", s.UpdateParcelLocation, requireCourier)
}

// Health godoc
//
//	@Summary	Liveness probe
//	@Tags		system
//	@Success	200	{string}	string	"Healthy"
//	@Router		/health [get]
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}
