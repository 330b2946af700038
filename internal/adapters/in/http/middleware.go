package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

const (
	HeaderCourierUsername = "X-Courier-Username"
	HeaderCustomerID      = "X-Customer-ID"

	courierKey  = "courierUsername"
	customerKey = "customerID"
)

// TokenRevocations is the revocation store used by the API.
type TokenRevocations interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

func requireCourier(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		username := strings.TrimSpace(c.Request().Header.Get(HeaderCourierUsername))
		if username == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing "+HeaderCourierUsername+" header")
		}
		c.Set(courierKey, username)
		return next(c)
	}
}

func requireCustomer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := strings.TrimSpace(c.Request().Header.Get(HeaderCustomerID))
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing "+HeaderCustomerID+" header")
		}
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid "+HeaderCustomerID+" header")
		}
		c.Set(customerKey, id)
		return next(c)
	}
}

func courierUsername(c echo.Context) string {
	username, _ := c.Get(courierKey).(string)
	return username
}

func customerID(c echo.Context) kernel.UUID {
	id, _ := c.Get(customerKey).(kernel.UUID)
	return id
}

// rejectRevokedTokens refuses requests whose bearer token was revoked.
// Requests without a token pass through.
func (s *Server) rejectRevokedTokens(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.revocations == nil {
			return next(c)
		}
		token, ok := bearerToken(c.Request())
		if !ok {
			return next(c)
		}

		revoked, err := s.revocations.IsRevoked(c.Request().Context(), token)
		if err != nil {
			return err
		}
		if revoked {
			return echo.NewHTTPError(http.StatusUnauthorized, "token has been revoked")
		}
		return next(c)
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get(echo.HeaderAuthorization), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RevokeToken godoc
//
//	@Summary	Revoke the presented bearer token
//	@Tags		auth
//	@Security	BearerAuth
//	@Success	204
//	@Failure	401	{object}	Error
//	@Failure	501	{object}	Error
//	@Router		/auth/revoke [post]
func (s *Server) RevokeToken(c echo.Context) error {
	if s.revocations == nil {
		return echo.NewHTTPError(http.StatusNotImplemented, "token revocation is not configured")
	}
	token, ok := bearerToken(c.Request())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}

	if err := s.revocations.Revoke(c.Request().Context(), token, s.revocationTTL); err != nil {
		return err
	}
	s.logger.InfoContext(c.Request().Context(), "token revoked")
	return c.NoContent(http.StatusNoContent)
}
