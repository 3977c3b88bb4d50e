package mid_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/bipwallet/deeplink/business/web/v1"
	"github.com/bipwallet/deeplink/business/web/v1/mid"
	"github.com/bipwallet/deeplink/foundation/logger"
	"github.com/bipwallet/deeplink/foundation/validate"
	"github.com/bipwallet/deeplink/foundation/web"
)

func serve(h web.Handler) *httptest.ResponseRecorder {
	log := logger.NewNop()

	app := web.NewApp(make(chan os.Signal, 1),
		mid.Logger(log),
		mid.Metrics(),
		mid.Errors(log),
		mid.Cors("*"),
		mid.Panics(),
	)
	app.Handle(http.MethodGet, "", "/", h)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	return w
}

func TestErrors(t *testing.T) {
	tt := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"request", v1.NewRequestError(errors.New("link not handled"), http.StatusNotFound), http.StatusNotFound, `{"error":"link not handled"}`},
		{"fields", validate.FieldErrors{{Field: "url", Error: "url is a required field"}}, http.StatusBadRequest, `{"error":"data validation error","fields":{"url":"url is a required field"}}`},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, `{"error":"Internal Server Error"}`},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.err
			w := serve(func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
				return err
			})

			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestPanics(t *testing.T) {
	w := serve(func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		panic("kaboom")
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequestError(t *testing.T) {
	sentinel := errors.New("link not handled")
	err := v1.NewRequestError(sentinel, http.StatusNotFound)

	require.True(t, v1.IsRequestError(err))
	assert.Equal(t, http.StatusNotFound, v1.GetRequestError(err).Status)
	assert.ErrorIs(t, err, sentinel)

	assert.False(t, v1.IsRequestError(sentinel))
	assert.Nil(t, v1.GetRequestError(sentinel))
}
