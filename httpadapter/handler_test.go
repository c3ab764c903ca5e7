package httpadapter_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/restcodec"
	"github.com/reoring/restcodec/example/petstore"
	"github.com/reoring/restcodec/example/petstore/api"
	"github.com/reoring/restcodec/httpadapter"
	"github.com/reoring/restcodec/mapper"
)

type accepted struct{ pet petstore.Pet }

func (a accepted) ToResponse() httpadapter.Response {
	r := httpadapter.NewResponse(http.StatusAccepted, a.pet)
	r.Header.Set("X-Queued", "yes")
	return r
}

func newRouter(t *testing.T) *httpadapter.Router {
	t.Helper()
	opts := httpadapter.HandlerOptions{
		Timeout: 20 * time.Millisecond,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	r := httpadapter.NewRouter(httpadapter.NewMessageConverter(mapper.New()), opts)
	api.Routes(r, api.NewStore(petstore.Pet{ID: 1, Name: "Tom"}))

	r.HandleSingle("/slow", func(*http.Request) httpadapter.Single[any] {
		return func(ctx context.Context) (any, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}
	})
	r.HandleSingle("/nothing", func(*http.Request) httpadapter.Single[any] { return nil })
	r.HandleSingle("/nil", func(*http.Request) httpadapter.Single[any] { return httpadapter.Just[any](nil) })
	r.HandleSingle("/accepted", func(*http.Request) httpadapter.Single[any] {
		return httpadapter.Just[any](accepted{pet: petstore.Pet{ID: 9, Name: "Queued"}})
	})
	r.HandleSingle("/panic", func(*http.Request) httpadapter.Single[any] {
		return httpadapter.FromFunc(func() (any, error) { panic("handler bug") })
	})
	r.HandleSingle("/badtime", func(*http.Request) httpadapter.Single[any] {
		born := time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC)
		resp := httpadapter.NewResponse(http.StatusCreated, petstore.Pet{ID: 3, Name: "Future", BirthDate: &born})
		resp.Header.Set("Location", "/pets/3")
		return httpadapter.Just[any](resp)
	})
	r.HandleSingle("/unwritable", func(*http.Request) httpadapter.Single[any] {
		return httpadapter.Just[any](map[string]int{"a": 1})
	})
	return r
}

func serve(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_GetPet(t *testing.T) {
	rec := serve(t, newRouter(t), httptest.NewRequest(http.MethodGet, "/pets/1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, httpadapter.DefaultMediaType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `{"id":1,"name":"Tom","photoUrls":[]}`, rec.Body.String())
	_, err := uuid.Parse(rec.Header().Get(httpadapter.HeaderRequestID))
	assert.NoError(t, err)
}

func TestHandler_RequestIDIsKept(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/pets/1", nil)
	req.Header.Set(httpadapter.HeaderRequestID, "abc-123")
	rec := serve(t, newRouter(t), req)
	assert.Equal(t, "abc-123", rec.Header().Get(httpadapter.HeaderRequestID))
}

func TestHandler_Errors(t *testing.T) {
	cases := []struct {
		name   string
		method string
		path   string
		status int
		body   string
	}{
		{"missing pet", http.MethodGet, "/pets/2", http.StatusNotFound, `{"error":"id 2: pet not found"}`},
		{"invalid id", http.MethodGet, "/pets/0", http.StatusBadRequest,
			`{"error":"Invalid argument for parameter id: 0 is less than the minimum permitted value of 1"}`},
		{"no route", http.MethodGet, "/nope", http.StatusNotFound, `{"error":"no route for /nope"}`},
		{"wrong method", http.MethodPut, "/pets", http.StatusMethodNotAllowed, `{"error":"method PUT not allowed"}`},
		{"timeout", http.MethodGet, "/slow", http.StatusServiceUnavailable, `{"error":"asynchronous request timed out"}`},
		{"panic", http.MethodGet, "/panic", http.StatusInternalServerError, `{"error":"Internal Server Error"}`},
		{"unwritable", http.MethodGet, "/unwritable", http.StatusNotAcceptable, ""},
	}
	r := newRouter(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(t, r, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, tc.status, rec.Code)
			if tc.body != "" {
				assert.JSONEq(t, tc.body, rec.Body.String())
			}
		})
	}
}

func TestHandler_CreatePet(t *testing.T) {
	r := newRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/pets", strings.NewReader(`{"id":5,"name":"Rex","photoUrls":["r.png"]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(t, r, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/pets/5", rec.Header().Get("Location"))
	assert.Equal(t, `{"id":5,"name":"Rex","photoUrls":["r.png"]}`, rec.Body.String())

	rec = serve(t, r, httptest.NewRequest(http.MethodGet, "/pets", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `[{"id":1,"name":"Tom","photoUrls":[]},{"id":5,"name":"Rex","photoUrls":["r.png"]}]`, rec.Body.String())

	rec = serve(t, r, httptest.NewRequest(http.MethodDelete, "/pets/5", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestHandler_CreatePetFailures(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/pets", strings.NewReader(`{"id":5,"name":"Rex","id":6}`))
	rec := serve(t, newRouter(t), req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var payload struct {
		Failures []restcodec.Failure `json:"failures"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	var msgs []string
	for _, f := range payload.Failures {
		msgs = append(msgs, f.Message)
		assert.Equal(t, 1, f.Line)
	}
	assert.Equal(t, []string{"Repeated field name: id", "Expected field name: photoUrls"}, msgs)
}

func TestHandler_Negotiation(t *testing.T) {
	r := newRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/pets", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	assert.Equal(t, http.StatusUnsupportedMediaType, serve(t, r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/pets", nil)
	req.Header.Set("Accept", "text/html")
	assert.Equal(t, http.StatusNotAcceptable, serve(t, r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/pets", nil)
	req.Header.Set("Accept", "text/html, */*;q=0.1")
	assert.Equal(t, http.StatusOK, serve(t, r, req).Code)
}

func TestHandler_ReturnValues(t *testing.T) {
	r := newRouter(t)

	rec := serve(t, r, httptest.NewRequest(http.MethodGet, "/nothing", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = serve(t, r, httptest.NewRequest(http.MethodGet, "/nil", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = serve(t, r, httptest.NewRequest(http.MethodGet, "/accepted", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "yes", rec.Header().Get("X-Queued"))
	assert.Equal(t, `{"id":9,"name":"Queued","photoUrls":[]}`, rec.Body.String())
}

func TestHandler_FailedWriteDropsResponseHeaders(t *testing.T) {
	r := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/accepted", nil)
	req.Header.Set("Accept", "text/html")
	rec := serve(t, r, req)
	assert.Equal(t, http.StatusNotAcceptable, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Queued"))

	rec = serve(t, r, httptest.NewRequest(http.MethodGet, "/badtime", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())
}

func TestHandler_Envelope(t *testing.T) {
	env := httpadapter.NewResponse(http.StatusAccepted, nil)
	env.Header.Set("X-Envelope", "1")
	h := httpadapter.HandleSingle(nil, func(*http.Request) httpadapter.Single[any] {
		return httpadapter.Just[any](petstore.Pet{ID: 2, Name: "Env"})
	}, httpadapter.HandlerOptions{Envelope: &env, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})

	rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-Envelope"))
	assert.Equal(t, `{"id":2,"name":"Env","photoUrls":[]}`, rec.Body.String())
}

func TestHandler_TimeoutResult(t *testing.T) {
	h := httpadapter.HandleSingle(nil, func(*http.Request) httpadapter.Single[any] {
		return func(ctx context.Context) (any, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}
	}, httpadapter.HandlerOptions{
		Timeout:       10 * time.Millisecond,
		TimeoutResult: httpadapter.NewResponse(http.StatusAccepted, nil),
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestHandler_LoggerAndRequestIDInContext(t *testing.T) {
	var gotID httpadapter.RequestID
	var gotLogger *slog.Logger
	h := httpadapter.HandleSingle(nil, func(r *http.Request) httpadapter.Single[any] {
		gotID, _ = httpadapter.RequestIDFromContext(r.Context())
		gotLogger = httpadapter.LoggerFromContext(r.Context())
		return nil
	}, httpadapter.HandlerOptions{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(httpadapter.HeaderRequestID, "rid")
	serve(t, h, req)
	assert.Equal(t, httpadapter.RequestID("rid"), gotID)
	assert.NotNil(t, gotLogger)
	assert.NotSame(t, slog.Default(), gotLogger)
}
