package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"participation-tracker/internal/biddingerrors"
	"participation-tracker/internal/identity"
	model "participation-tracker/internal/models"
	handler "participation-tracker/services/bidding/handler"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T, service handler.ParticipationServiceInterface, resolver identity.Resolver) *gin.Engine {
	t.Helper()
	return SetupRouter(RouterConfig{
		Service:        service,
		Resolver:       resolver,
		RequestTimeout: time.Second,
		StoreBackend:   "memory",
	})
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func TestRequireUser(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		resolverSetup  func(m *identity.MockResolver)
		serviceSetup   func(m *handler.MockParticipationServiceInterface)
		expectedStatus int
		expectedBody   map[string]any
	}{
		{
			name: "unauthenticated_never_reaches_service",
			path: "/bids/participation",
			resolverSetup: func(m *identity.MockResolver) {
				m.EXPECT().Resolve(gomock.Any()).Return("", biddingerrors.ErrUnauthenticated)
			},
			serviceSetup:   func(m *handler.MockParticipationServiceInterface) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   map[string]any{"message": "Unauthorized"},
		},
		{
			name: "blank_user_is_unauthenticated",
			path: "/users/me/participation",
			resolverSetup: func(m *identity.MockResolver) {
				m.EXPECT().Resolve(gomock.Any()).Return("", nil)
			},
			serviceSetup:   func(m *handler.MockParticipationServiceInterface) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   map[string]any{"message": "Unauthorized"},
		},
		{
			name: "session_store_down",
			path: "/bids/participation",
			resolverSetup: func(m *identity.MockResolver) {
				m.EXPECT().Resolve(gomock.Any()).Return("", biddingerrors.ErrStoreUnavailable)
			},
			serviceSetup:   func(m *handler.MockParticipationServiceInterface) {},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name: "authenticated_user_passed_to_service",
			path: "/users/me/participation",
			resolverSetup: func(m *identity.MockResolver) {
				m.EXPECT().Resolve(gomock.Any()).Return("user1", nil)
			},
			serviceSetup: func(m *handler.MockParticipationServiceInterface) {
				m.EXPECT().GetParticipation(gomock.Any(), "user1").Return(model.Participation{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]any{
				"participated": []any{},
				"activeBids":   []any{},
				"won":          []any{},
				"lost":         []any{},
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			resolver := identity.NewMockResolver(ctrl)
			service := handler.NewMockParticipationServiceInterface(ctrl)
			tc.resolverSetup(resolver)
			tc.serviceSetup(service)

			w := httptest.NewRecorder()
			router := newRouter(t, service, resolver)
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))

			require.Equal(t, tc.expectedStatus, w.Code)
			if tc.expectedBody != nil {
				var body map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				require.Equal(t, tc.expectedBody, body)
			}
		})
	}
}

func TestTimeoutMiddleware_SetsDeadline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resolver := identity.NewMockResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any()).Return("user1", nil)

	service := handler.NewMockParticipationServiceInterface(ctrl)
	service.EXPECT().GetParticipation(gomock.Any(), "user1").
		DoAndReturn(func(ctx context.Context, _ string) (model.Participation, error) {
			_, ok := ctx.Deadline()
			require.True(t, ok, "request context should carry a deadline")
			<-ctx.Done()
			return model.Participation{}, ctx.Err()
		})

	router := SetupRouter(RouterConfig{Service: service, Resolver: resolver, RequestTimeout: 20 * time.Millisecond})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bids/participation", nil))
	require.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestTimeoutMiddleware_ZeroDisables(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.GET("/", TimeoutMiddleware(0), func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		c.JSON(http.StatusOK, gin.H{"deadline": ok})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.JSONEq(t, `{"deadline":false}`, w.Body.String())
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router := newRouter(t, handler.NewMockParticipationServiceInterface(ctrl), identity.NewMockResolver(ctrl))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}

func TestHealthAndMetrics(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router := newRouter(t, handler.NewMockParticipationServiceInterface(ctrl), identity.NewMockResolver(ctrl))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":200,"message":"ok","data":{"store":"memory"}}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, strings.Contains(w.Body.String(), "participation_tracker_http_requests_total"))
}

func TestUnknownRoute(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router := newRouter(t, handler.NewMockParticipationServiceInterface(ctrl), identity.NewMockResolver(ctrl))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bids", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}
