package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/questx-lab/questboard/pkg/errorx"
	"github.com/stretchr/testify/require"
)

type (
	rootKey struct{}
	userKey struct{}
)

type echoRequest struct {
	Name string `json:"name" form:"name"`
}

type echoResponse struct {
	Name string `json:"name"`
	Root string `json:"root"`
	User string `json:"user"`
}

func echo(ctx context.Context, req *echoRequest) (*echoResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Name is required")
	}

	user, _ := ctx.Value(userKey{}).(string)
	return &echoResponse{Name: req.Name, Root: ctx.Value(rootKey{}).(string), User: user}, nil
}

func decode(t *testing.T, w *httptest.ResponseRecorder) (response, echoResponse) {
	var resp response
	var data echoResponse
	resp.Data = &data
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp, data
}

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := New(context.WithValue(context.Background(), rootKey{}, "root"))
	GET(r, "/echo", echo)

	authed := r.Branch()
	authed.Before(func(ctx context.Context, req *http.Request) (context.Context, error) {
		user := req.Header.Get("X-User")
		if user == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}
		return context.WithValue(ctx, userKey{}, user), nil
	})
	POST(authed, "/echo", echo)

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/echo?name=foo", nil))
	require.Equal(t, http.StatusOK, w.Code)
	resp, data := decode(t, w)
	require.Zero(t, resp.Code)
	require.Equal(t, echoResponse{Name: "foo", Root: "root"}, data)

	w = httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/echo", nil))
	resp, _ = decode(t, w)
	require.Equal(t, int64(errorx.BadRequest), resp.Code)
	require.Equal(t, "Name is required", resp.Error)

	w = httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"name":"bar"}`)))
	resp, _ = decode(t, w)
	require.Equal(t, int64(errorx.Unauthenticated), resp.Code)

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"name":"bar"}`))
	req.Header.Set("X-User", "user1")
	w = httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)
	resp, data = decode(t, w)
	require.Zero(t, resp.Code)
	require.Equal(t, echoResponse{Name: "bar", Root: "root", User: "user1"}, data)

	req = httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"name":`))
	req.Header.Set("X-User", "user1")
	w = httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)
	resp, _ = decode(t, w)
	require.Equal(t, int64(errorx.BadRequest), resp.Code)
}
