package httpadapter

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// Router routes requests to SingleFuncs with gorilla/mux.
type Router struct {
	*mux.Router
	conv *MessageConverter
	opts HandlerOptions
}

// NewRouter returns a router whose handlers share conv and opts. Unmatched
// paths and methods answer with JSON errors.
func NewRouter(conv *MessageConverter, opts HandlerOptions) *Router {
	if conv == nil {
		conv = NewMessageConverter(nil)
	}
	m := mux.NewRouter()
	m.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, NotFound(errors.Errorf("no route for %s", r.URL.Path)))
	})
	m.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, WithStatus(errors.Errorf("method %s not allowed", r.Method), http.StatusMethodNotAllowed))
	})
	return &Router{Router: m, conv: conv, opts: opts}
}

// Converter returns the converter shared by the router's handlers.
func (r *Router) Converter() *MessageConverter { return r.conv }

// HandleSingle registers fn for path.
func (r *Router) HandleSingle(path string, fn SingleFunc) *mux.Route {
	return r.Handle(path, HandleSingle(r.conv, fn, r.opts))
}

// Vars returns the route variables of r.
func Vars(r *http.Request) map[string]string { return mux.Vars(r) }
