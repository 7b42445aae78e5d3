package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/neurospin/distmeta/pkg/descriptor"
	"github.com/neurospin/distmeta/pkg/errors"
	"github.com/neurospin/distmeta/pkg/render"
	"github.com/neurospin/distmeta/pkg/store"
)

// errorBody is the JSON error envelope returned by all handlers.
type errorBody struct {
	Error struct {
		Code    errors.Code `json:"code"`
		Message string      `json:"message"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errors.Code, msg string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = msg
	writeJSON(w, status, body)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("listing descriptors failed", "error", err)
		writeError(w, http.StatusInternalServerError, errors.ErrCodeStore, "listing descriptors failed")
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"packages": names})
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	var d descriptor.Descriptor
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "request body is not valid JSON")
		return
	}
	if err := d.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, errors.GetCode(err), errors.UserMessage(err))
		return
	}

	rec, err := s.store.Put(r.Context(), &d)
	if err != nil {
		s.logger.Error("storing descriptor failed", "name", d.Name, "error", err)
		writeError(w, http.StatusInternalServerError, errors.ErrCodeStore, "storing descriptor failed")
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	err := s.store.Delete(r.Context(), name)
	if stderrors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, errors.ErrCodeDescriptorNotFound, "no descriptor stored for "+name)
		return
	}
	if err != nil {
		s.logger.Error("deleting descriptor failed", "name", name, "error", err)
		writeError(w, http.StatusInternalServerError, errors.ErrCodeStore, "deleting descriptor failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePyPIJSON(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, render.PyPI(rec.Descriptor))
}

// lookup fetches the record named in the route, writing the error
// response itself when the record cannot be served.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*store.Record, bool) {
	name := chi.URLParam(r, "name")
	rec, err := s.store.Get(r.Context(), name)
	if stderrors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, errors.ErrCodeDescriptorNotFound, "no descriptor stored for "+name)
		return nil, false
	}
	if err != nil {
		s.logger.Error("loading descriptor failed", "name", name, "error", err)
		writeError(w, http.StatusInternalServerError, errors.ErrCodeStore, "loading descriptor failed")
		return nil, false
	}
	return rec, true
}
