package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpadapter "parcelhub/internal/adapters/in/http"
	"parcelhub/internal/adapters/out/memory"
	redisadapter "parcelhub/internal/adapters/out/redis"
	"parcelhub/internal/core/application/notifications"
	"parcelhub/internal/core/application/readmodel"
	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/cache"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type uowFactory struct{ f *memory.UnitOfWorkFactory }

func (a uowFactory) Create() commands.UoW { return a.f.Create() }

type courierUoWFactory struct{ f *memory.UnitOfWorkFactory }

func (a courierUoWFactory) Create() commands.CourierUoW { return a.f.Create() }

type commitOnly struct{}

func (commitOnly) CommitAndDispatch(commit func() error, _ notifications.Event) error {
	return commit()
}

type sequentialNumbers struct{ n int }

func (s *sequentialNumbers) Next() string {
	s.n++
	return fmt.Sprintf("PKG-HTTP-%d", s.n)
}

type ServerTestSuite struct {
	suite.Suite
	e        *echo.Echo
	redis    *miniredis.Miniredis
	customer kernel.UUID
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	factory := memory.NewUnitOfWorkFactory(memory.NewStore())

	coordinator := commands.NewCoordinator(
		uowFactory{f: factory},
		commitOnly{},
		cache.Noop{},
		logger,
		commands.CoordinatorConfig{RetryInterval: time.Millisecond},
	)
	rm := queries.NewReadModel(factory.Create(), nil, time.Minute)

	s.redis = miniredis.RunT(s.T())
	revocations := redisadapter.NewRevocationStore(redisadapter.NewClient(redisadapter.Options{Addr: s.redis.Addr()}))

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateParcel:         commands.NewCreateParcelCommandHandler(coordinator, &sequentialNumbers{}),
		RegisterCourier:      commands.NewRegisterCourierCommandHandler(courierUoWFactory{f: factory}),
		TakeParcel:           commands.NewTakeParcelCommandHandler(coordinator),
		DropParcel:           commands.NewDropParcelCommandHandler(coordinator),
		UpdateStatus:         commands.NewUpdateParcelStatusCommandHandler(coordinator),
		UpdateLocation:       commands.NewUpdateParcelLocationCommandHandler(coordinator),
		CancelParcel:         commands.NewCancelParcelCommandHandler(coordinator),
		ParcelHistory:        queries.NewGetParcelHistoryQueryHandler(rm),
		AvailableParcels:     queries.NewListAvailableParcelsQueryHandler(rm),
		CourierActiveParcels: queries.NewListActiveParcelsForCourierQueryHandler(rm),
		CustomerParcels:      queries.NewListCustomerParcelsQueryHandler(rm),
		TrackingLookup:       queries.NewGetParcelByTrackingNumberQueryHandler(rm),
	}, logger, httpadapter.Options{Revocations: revocations, RevocationTTL: time.Hour})

	s.e = server.NewEcho()
	s.customer = kernel.NewUUID()
}

type request struct {
	method  string
	path    string
	body    any
	headers map[string]string
}

func (s *ServerTestSuite) do(r request) *httptest.ResponseRecorder {
	var body io.Reader
	if r.body != nil {
		raw, err := json.Marshal(r.body)
		s.Require().NoError(err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(r.method, r.path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) decode(rec *httptest.ResponseRecorder, dst any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func (s *ServerTestSuite) asCourier(username string) map[string]string {
	return map[string]string{httpadapter.HeaderCourierUsername: username}
}

func (s *ServerTestSuite) asCustomer() map[string]string {
	return map[string]string{httpadapter.HeaderCustomerID: s.customer.String()}
}

func (s *ServerTestSuite) registerCourier(username string) readmodel.CourierView {
	rec := s.do(request{method: http.MethodPost, path: "/api/v1/couriers", body: httpadapter.NewCourierRequest{Username: username}})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var view readmodel.CourierView
	s.decode(rec, &view)
	return view
}

func (s *ServerTestSuite) createParcel() readmodel.ParcelView {
	rec := s.do(request{
		method:  http.MethodPost,
		path:    "/api/v1/parcels",
		headers: s.asCustomer(),
		body: httpadapter.NewParcelRequest{
			PickupAddress:   "Abay 10",
			DeliveryAddress: "Dostyk 5",
			Weight:          1.5,
		},
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var view readmodel.ParcelView
	s.decode(rec, &view)
	return view
}

func (s *ServerTestSuite) parcelAction(id, action, username string) *httptest.ResponseRecorder {
	return s.do(request{method: http.MethodPost, path: "/api/v1/parcels/" + id + "/" + action, headers: s.asCourier(username)})
}

func (s *ServerTestSuite) setStatus(id, username, status string) *httptest.ResponseRecorder {
	return s.do(request{
		method:  http.MethodPut,
		path:    "/api/v1/parcels/" + id + "/status",
		headers: s.asCourier(username),
		body:    httpadapter.StatusRequest{Status: status},
	})
}

func (s *ServerTestSuite) errorBody(rec *httptest.ResponseRecorder) httpadapter.Error {
	var body httpadapter.Error
	s.decode(rec, &body)
	return body
}

func (s *ServerTestSuite) TestHealth() {
	rec := s.do(request{method: http.MethodGet, path: "/health"})
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Healthy", rec.Body.String())
}

func (s *ServerTestSuite) TestRegisterCourier() {
	view := s.registerCourier("alice")
	s.Equal("alice", view.Username)
	s.True(view.Available)

	rec := s.do(request{method: http.MethodPost, path: "/api/v1/couriers", body: httpadapter.NewCourierRequest{Username: "alice"}})
	s.Equal(http.StatusConflict, rec.Code)
	s.Equal(http.StatusConflict, s.errorBody(rec).Code)

	rec = s.do(request{method: http.MethodPost, path: "/api/v1/couriers", body: httpadapter.NewCourierRequest{}})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestIdentityIsRequired() {
	rec := s.do(request{method: http.MethodPost, path: "/api/v1/parcels", body: httpadapter.NewParcelRequest{}})
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(request{
		method:  http.MethodPost,
		path:    "/api/v1/parcels",
		headers: map[string]string{httpadapter.HeaderCustomerID: "not-a-uuid"},
	})
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(request{method: http.MethodPost, path: "/api/v1/parcels/" + kernel.NewUUID().String() + "/take"})
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(s.errorBody(rec).Message, httpadapter.HeaderCourierUsername)
}

func (s *ServerTestSuite) TestParcelLifecycle() {
	alice := s.registerCourier("alice")
	s.registerCourier("bob")
	created := s.createParcel()
	s.Equal("PENDING", created.Status)
	s.Equal("PKG-HTTP-1", created.TrackingNumber)

	rec := s.parcelAction(created.ID, "take", "alice")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var taken readmodel.ParcelView
	s.decode(rec, &taken)
	s.Equal("ASSIGNED", taken.Status)
	s.Require().NotNil(taken.CourierID)
	s.Equal(alice.ID, *taken.CourierID)

	s.Equal(http.StatusConflict, s.parcelAction(created.ID, "take", "bob").Code)
	s.Equal(http.StatusForbidden, s.parcelAction(created.ID, "drop", "bob").Code)
	s.Equal(http.StatusConflict, s.setStatus(created.ID, "alice", "DELIVERED").Code)
	s.Equal(http.StatusBadRequest, s.setStatus(created.ID, "alice", "FLYING").Code)

	for _, next := range []string{"PICKED_UP", "IN_TRANSIT"} {
		rec = s.setStatus(created.ID, "alice", next)
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	}

	rec = s.do(request{
		method:  http.MethodPut,
		path:    "/api/v1/parcels/" + created.ID + "/location",
		headers: s.asCourier("alice"),
		body:    map[string]any{"lat": 43.2, "lon": 76.9, "zone": "center"},
	})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var located readmodel.ParcelView
	s.decode(rec, &located)
	s.Require().NotNil(located.CurrentLocation)
	s.Equal("center", located.CurrentLocation.Zone)

	rec = s.do(request{
		method:  http.MethodPut,
		path:    "/api/v1/parcels/" + created.ID + "/location",
		headers: s.asCourier("alice"),
		body:    map[string]any{"zone": "center"},
	})
	s.Equal(http.StatusBadRequest, rec.Code)

	s.Require().Equal(http.StatusOK, s.setStatus(created.ID, "alice", "delivered").Code)

	rec = s.do(request{
		method:  http.MethodPut,
		path:    "/api/v1/parcels/" + created.ID + "/location",
		headers: s.asCourier("alice"),
		body:    map[string]any{"lat": 43.3, "lon": 76.95},
	})
	s.Equal(http.StatusPreconditionFailed, rec.Code)

	rec = s.do(request{method: http.MethodGet, path: "/api/v1/parcels/" + created.ID + "/history"})
	s.Require().Equal(http.StatusOK, rec.Code)
	var entries []readmodel.HistoryEntryView
	s.decode(rec, &entries)
	kinds := make([]string, 0, len(entries))
	for _, e := range entries {
		kinds = append(kinds, e.Kind)
	}
	s.Equal([]string{"CREATED", "ASSIGNED", "STATUS_CHANGED", "STATUS_CHANGED", "LOCATION_UPDATED", "STATUS_CHANGED"}, kinds)
}

func (s *ServerTestSuite) TestListings() {
	alice := s.registerCourier("alice")
	first := s.createParcel()
	second := s.createParcel()
	s.Require().Equal(http.StatusOK, s.parcelAction(second.ID, "take", "alice").Code)

	rec := s.do(request{method: http.MethodGet, path: "/api/v1/parcels/available"})
	s.Require().Equal(http.StatusOK, rec.Code)
	var available []readmodel.ParcelView
	s.decode(rec, &available)
	s.Require().Len(available, 1)
	s.Equal(first.ID, available[0].ID)

	rec = s.do(request{method: http.MethodGet, path: "/api/v1/couriers/" + alice.ID + "/parcels/active"})
	s.Require().Equal(http.StatusOK, rec.Code)
	var active []readmodel.ParcelView
	s.decode(rec, &active)
	s.Require().Len(active, 1)
	s.Equal(second.ID, active[0].ID)

	rec = s.do(request{method: http.MethodGet, path: "/api/v1/couriers/" + kernel.NewUUID().String() + "/parcels/active"})
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.do(request{method: http.MethodGet, path: "/api/v1/customers/" + s.customer.String() + "/parcels"})
	s.Require().Equal(http.StatusOK, rec.Code)
	var mine []readmodel.ParcelView
	s.decode(rec, &mine)
	s.Len(mine, 2)

	rec = s.do(request{method: http.MethodGet, path: "/api/v1/tracking/pkg-http-1"})
	s.Require().Equal(http.StatusOK, rec.Code)
	var tracked readmodel.ParcelView
	s.decode(rec, &tracked)
	s.Equal(first.ID, tracked.ID)

	s.Equal(http.StatusNotFound, s.do(request{method: http.MethodGet, path: "/api/v1/tracking/PKG-NONE"}).Code)
}

func (s *ServerTestSuite) TestCancel() {
	s.registerCourier("alice")
	created := s.createParcel()
	s.Require().Equal(http.StatusOK, s.parcelAction(created.ID, "take", "alice").Code)

	rec := s.do(request{
		method:  http.MethodPost,
		path:    "/api/v1/parcels/" + created.ID + "/cancel",
		headers: map[string]string{httpadapter.HeaderCustomerID: kernel.NewUUID().String()},
	})
	s.Equal(http.StatusForbidden, rec.Code)

	rec = s.do(request{method: http.MethodPost, path: "/api/v1/parcels/" + created.ID + "/cancel", headers: s.asCustomer()})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var cancelled readmodel.ParcelView
	s.decode(rec, &cancelled)
	s.Equal("CANCELLED", cancelled.Status)

	rec = s.do(request{method: http.MethodPost, path: "/api/v1/parcels/" + created.ID + "/cancel", headers: s.asCustomer()})
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *ServerTestSuite) TestUnknownAndMalformedIDs() {
	s.registerCourier("alice")

	s.Equal(http.StatusNotFound, s.parcelAction(kernel.NewUUID().String(), "take", "alice").Code)
	s.Equal(http.StatusNotFound, s.do(request{method: http.MethodGet, path: "/api/v1/parcels/" + kernel.NewUUID().String() + "/history"}).Code)

	rec := s.parcelAction("not-a-uuid", "take", "alice")
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(http.StatusBadRequest, s.errorBody(rec).Code)

	created := s.createParcel()
	s.Equal(http.StatusNotFound, s.parcelAction(created.ID, "take", "nobody").Code)
}

func (s *ServerTestSuite) TestTokenRevocation() {
	bearer := map[string]string{echo.HeaderAuthorization: "Bearer token-123"}

	s.Equal(http.StatusOK, s.do(request{method: http.MethodGet, path: "/api/v1/parcels/available", headers: bearer}).Code)

	s.Equal(http.StatusUnauthorized, s.do(request{method: http.MethodPost, path: "/api/v1/auth/revoke"}).Code)
	s.Equal(http.StatusNoContent, s.do(request{method: http.MethodPost, path: "/api/v1/auth/revoke", headers: bearer}).Code)

	rec := s.do(request{method: http.MethodGet, path: "/api/v1/parcels/available", headers: bearer})
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("token has been revoked", s.errorBody(rec).Message)

	other := map[string]string{echo.HeaderAuthorization: "Bearer token-456"}
	s.Equal(http.StatusOK, s.do(request{method: http.MethodGet, path: "/api/v1/parcels/available", headers: other}).Code)

	s.redis.FastForward(2 * time.Hour)
	s.Equal(http.StatusOK, s.do(request{method: http.MethodGet, path: "/api/v1/parcels/available", headers: bearer}).Code)
}

func (s *ServerTestSuite) TestRevocationStoreFailureIsInternalError() {
	s.redis.SetError("ERR unavailable")
	defer s.redis.SetError("")

	rec := s.do(request{
		method:  http.MethodGet,
		path:    "/api/v1/parcels/available",
		headers: map[string]string{echo.HeaderAuthorization: "Bearer token-123"},
	})
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal("internal error", s.errorBody(rec).Message)
}
