// Package api exposes the petstore model over HTTP with httpadapter.
package api

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/pkg/errors"

	"github.com/reoring/restcodec/example/petstore"
	_ "github.com/reoring/restcodec/example/petstore/json/reader"
	_ "github.com/reoring/restcodec/example/petstore/json/writer"
	"github.com/reoring/restcodec/httpadapter"
)

// ErrPetNotFound is returned for an unknown pet id.
var ErrPetNotFound = errors.New("pet not found")

// Store keeps pets in memory.
type Store struct {
	mu   sync.RWMutex
	pets map[int64]petstore.Pet
}

// NewStore returns a store holding pets.
func NewStore(pets ...petstore.Pet) *Store {
	s := &Store{pets: make(map[int64]petstore.Pet, len(pets))}
	for _, p := range pets {
		s.pets[p.ID] = p
	}
	return s
}

// List returns the pets ordered by id.
func (s *Store) List(ctx context.Context) (petstore.Pets, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(petstore.Pets, 0, len(s.pets))
	for _, p := range s.pets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, ctx.Err()
}

// Get returns the pet with id.
func (s *Store) Get(_ context.Context, id int64) (petstore.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pets[id]
	if !ok {
		return petstore.Pet{}, httpadapter.NotFound(errors.Wrapf(ErrPetNotFound, "id %d", id))
	}
	return p, nil
}

// Put stores p and reports whether it replaced an existing pet.
func (s *Store) Put(_ context.Context, p petstore.Pet) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pets[p.ID]
	s.pets[p.ID] = p
	return ok
}

// Delete removes the pet with id.
func (s *Store) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pets[id]; !ok {
		return httpadapter.NotFound(errors.Wrapf(ErrPetNotFound, "id %d", id))
	}
	delete(s.pets, id)
	return nil
}

// Routes registers the pet endpoints on r.
func Routes(r *httpadapter.Router, s *Store) {
	conv := r.Converter()

	r.HandleSingle("/pets", func(*http.Request) httpadapter.Single[any] {
		return httpadapter.Any(httpadapter.Single[petstore.Pets](s.List))
	}).Methods(http.MethodGet)

	r.HandleSingle("/pets", func(req *http.Request) httpadapter.Single[any] {
		p, err := httpadapter.Bind[petstore.Pet](conv, req)
		if err != nil {
			return httpadapter.Fail[any](err)
		}
		return func(ctx context.Context) (any, error) {
			status := http.StatusCreated
			if s.Put(ctx, p) {
				status = http.StatusOK
			}
			resp := httpadapter.NewResponse(status, p)
			resp.Header.Set("Location", "/pets/"+strconv.FormatInt(p.ID, 10))
			return resp, nil
		}
	}).Methods(http.MethodPost)

	r.HandleSingle("/pets/{id:[0-9]+}", func(req *http.Request) httpadapter.Single[any] {
		id, err := petID(req)
		if err != nil {
			return httpadapter.Fail[any](err)
		}
		return httpadapter.Any[petstore.Pet](func(ctx context.Context) (petstore.Pet, error) { return s.Get(ctx, id) })
	}).Methods(http.MethodGet)

	r.HandleSingle("/pets/{id:[0-9]+}", func(req *http.Request) httpadapter.Single[any] {
		id, err := petID(req)
		if err != nil {
			return httpadapter.Fail[any](err)
		}
		return func(ctx context.Context) (any, error) {
			if err := s.Delete(ctx, id); err != nil {
				return nil, err
			}
			return httpadapter.NewResponse(http.StatusNoContent, nil), nil
		}
	}).Methods(http.MethodDelete)
}

func petID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(httpadapter.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, httpadapter.BadRequest(errors.Wrap(err, "pet id"))
	}
	if _, err := petstore.IDValidator.RequireValidValue("id", id); err != nil {
		return 0, err
	}
	return id, nil
}
