package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/questx-lab/questboard/config"
	"github.com/questx-lab/questboard/internal/model"
	"github.com/questx-lab/questboard/pkg/authenticator"
	"github.com/questx-lab/questboard/pkg/errorx"
	"github.com/questx-lab/questboard/pkg/logger"
	"github.com/questx-lab/questboard/pkg/router"
	"github.com/questx-lab/questboard/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type whoamiRequest struct{}

type whoamiResponse struct {
	UserID string `json:"user_id"`
}

type envelope struct {
	Code  errorx.Code    `json:"code"`
	Error string         `json:"error"`
	Data  whoamiResponse `json:"data"`
}

func newTestServer(t *testing.T, engine authenticator.TokenEngine[model.AccessToken]) *router.Router {
	gin.SetMode(gin.TestMode)

	ctx := xcontext.WithLogger(context.Background(), logger.NewNopLogger())
	r := router.New(ctx)
	r.Use(Logger(ctx))

	authed := r.Branch()
	authed.Before(Authenticate(engine))
	router.GET(authed, "/whoami", func(ctx context.Context, req *whoamiRequest) (*whoamiResponse, error) {
		token, _ := xcontext.AccessToken(ctx)
		return &whoamiResponse{UserID: token.UserID}, nil
	})

	return r
}

func call(t *testing.T, h http.Handler, token string) envelope {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestAuthenticate(t *testing.T) {
	engine := authenticator.NewTokenEngine[model.AccessToken](config.AuthConfigs{
		TokenSecret:     "secret",
		TokenExpiration: time.Minute,
	})
	h := newTestServer(t, engine).Handler()

	token, err := engine.Generate("user1", model.AccessToken{UserID: "user1", GuildID: "guild1"})
	require.NoError(t, err)

	resp := call(t, h, "Bearer "+token)
	require.Equal(t, errorx.Code(0), resp.Code)
	require.Equal(t, "user1", resp.Data.UserID)

	resp = call(t, h, "")
	require.Equal(t, errorx.Unauthenticated, resp.Code)

	resp = call(t, h, token)
	require.Equal(t, errorx.Unauthenticated, resp.Code)

	resp = call(t, h, "Bearer invalid")
	require.Equal(t, errorx.Unauthenticated, resp.Code)

	noGuild, err := engine.Generate("user1", model.AccessToken{UserID: "user1"})
	require.NoError(t, err)
	resp = call(t, h, "Bearer "+noGuild)
	require.Equal(t, errorx.Unauthenticated, resp.Code)
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimit(1, 2))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	codes := []int{}
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	require.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Another client has its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCors(t *testing.T) {
	h := Cors([]string{"https://questboard.example"}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://questboard.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, "https://questboard.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.True(t, strings.TrimSpace(rec.Header().Get("Access-Control-Allow-Origin")) == "")
}
