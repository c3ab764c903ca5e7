package httpadapter

import (
	"log/slog"
	"net/http"
	"reflect"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/reoring/restcodec/middleware"
)

// SingleFunc handles a request by returning the Single producing its result.
// A nil Single yields an empty 200 response.
type SingleFunc func(r *http.Request) Single[any]

// HandlerOptions tune HandleSingle.
type HandlerOptions struct {
	// Timeout bounds the wait for a Single; zero waits until the request
	// context ends.
	Timeout time.Duration
	// TimeoutResult is written instead of a 503 when the timeout fires.
	TimeoutResult any
	// Envelope supplies the status and headers for plain values.
	Envelope *Response
	Logger   *slog.Logger
}

// Handler serves a SingleFunc.
type Handler struct {
	conv   *MessageConverter
	fn     SingleFunc
	opts   HandlerOptions
	logger *slog.Logger
}

// HandleSingle returns an http.Handler that runs fn, waits for its Single
// and writes the outcome through conv.
func HandleSingle(conv *MessageConverter, fn SingleFunc, opts HandlerOptions) *Handler {
	if conv == nil {
		conv = NewMessageConverter(nil)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{conv: conv, fn: fn, opts: opts, logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(HeaderRequestID)
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(HeaderRequestID, id)
	log := h.logger.With(
		slog.String("request_id", id),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)
	ctx := middleware.ContextWithValue(r.Context(), RequestID(id))
	ctx = middleware.ContextWithValue(ctx, log)
	r = r.WithContext(ctx)

	start := time.Now()
	single := h.fn(r)
	if single == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	d := NewDeferredResult(h.opts.Timeout, h.opts.TimeoutResult)
	SubscribeSingle(ctx, single, d)
	v, err := d.Wait(ctx)
	if err != nil {
		writeError(w, log, err)
		return
	}
	resp := toResponse(h.opts.Envelope, v)
	h.write(w, r, log, resp)
	log.Debug("request handled", slog.Int("status", resp.Status), slog.Duration("elapsed", time.Since(start)))
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, log *slog.Logger, resp Response) {
	if resp.Status == 0 {
		resp.Status = http.StatusOK
	}
	if resp.Body == nil {
		for k, vs := range resp.Header {
			w.Header()[k] = vs
		}
		w.WriteHeader(resp.Status)
		return
	}
	t := reflect.TypeOf(resp.Body)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if accept := r.Header.Get("Accept"); !h.conv.CanWrite(t, accept) {
		writeError(w, log, WithStatus(ErrNotAcceptable, http.StatusNotAcceptable))
		return
	}
	if err := h.conv.write(w, resp.Status, resp.Header, resp.Body, nil); err != nil {
		writeError(w, log, err)
	}
}

// WriteError writes err as a JSON error response with the status it maps to.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, LoggerFromContext(r.Context()), err)
}

func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	code := StatusCode(err)
	if code >= http.StatusInternalServerError {
		log.Error("request failed", slog.Int("status", code), slog.Any("error", err))
	} else {
		log.Info("request rejected", slog.Int("status", code), slog.Any("error", err))
	}
	body, merr := json.Marshal(errorPayload(code, err))
	if merr != nil {
		log.Error("cannot marshal error payload", slog.Any("error", merr))
		http.Error(w, http.StatusText(code), code)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, werr := w.Write(body); werr != nil {
		log.Warn("cannot write response", slog.Any("error", werr))
	}
}
