package web_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bipwallet/deeplink/foundation/web"
)

type payload struct {
	Name string `json:"name"`
}

func (p payload) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func TestHandle(t *testing.T) {
	var order []string
	mw := func(name string) web.Middleware {
		return func(next web.Handler) web.Handler {
			return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
				order = append(order, name)
				return next(ctx, w, r)
			}
		}
	}

	app := web.NewApp(make(chan os.Signal, 1), mw("app"))

	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		v, err := web.GetValues(ctx)
		if err != nil {
			return err
		}
		assert.NotEmpty(t, v.TraceID)

		return web.Respond(ctx, w, map[string]string{"id": web.Param(r, "id")}, http.StatusOK)
	}
	app.Handle(http.MethodGet, "v1", "/items/:id", h, mw("route"))

	r := httptest.NewRequest(http.MethodGet, "/v1/items/42", nil)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"42"}`, w.Body.String())
	assert.Equal(t, []string{"app", "route"}, order)
}

func TestShutdownSignal(t *testing.T) {
	shutdown := make(chan os.Signal, 1)
	app := web.NewApp(shutdown)

	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.NewShutdownError("integrity issue")
	}
	app.Handle(http.MethodGet, "", "/", h)

	app.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	select {
	case <-shutdown:
	default:
		t.Fatal("expected a shutdown signal")
	}
}

func TestDecode(t *testing.T) {
	tt := []struct {
		body string
		ok   bool
	}{
		{`{"name":"alice"}`, true},
		{`{"name":""}`, false},
		{`{"name":"alice","extra":1}`, false},
		{`not json`, false},
	}

	for i, tc := range tt {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))

		var p payload
		err := web.Decode(r, &p)
		if tc.ok && err != nil {
			t.Errorf("[case:%d] unexpected error: %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("[case:%d] expected an error", i)
		}
	}
}

func TestGetTraceIDWithoutValues(t *testing.T) {
	assert.Equal(t, "00000000-0000-0000-0000-000000000000", web.GetTraceID(context.Background()))

	_, err := web.GetValues(context.Background())
	assert.Error(t, err)
}
