package mediaapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/goliatone/go-mediaui/pkg/media"
)

const maxBodyBytes = 1 << 20

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type listResponse struct {
	Data []media.Item `json:"data"`
}

// Handler builds the API handler with default options plus any overrides.
func Handler(fns ...OptionFn) (http.Handler, error) {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds the API handler. Paths are relative to the API
// root (/media/{id}, /profile, ...); RegisterRoutes mounts it under a prefix.
// A nil Store is replaced by a fresh copy of the seed data.
func HandlerWithOptions(opts Options) (http.Handler, error) {
	opts = NewOptions(func(o *Options) { *o = opts })

	store := opts.Store
	if store == nil {
		loaded, err := DefaultStore()
		if err != nil {
			return nil, err
		}
		store = loaded
	}

	var validator *Validator
	if opts.Validate {
		v, err := DefaultValidator()
		if err != nil {
			return nil, err
		}
		validator = v
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	api := &api{store: store, validator: validator, logger: logger}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /media", api.listMedia)
	mux.HandleFunc("GET /media/{id}", api.getMedia)
	mux.HandleFunc("PATCH /media/{id}", api.patchMedia)
	mux.HandleFunc("GET /channels/{id}", api.getChannel)
	mux.HandleFunc("GET /playlists/{id}", api.getPlaylist)
	mux.HandleFunc("GET /profile", api.getProfile)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}
		mux.ServeHTTP(w, r)
	}), nil
}

type api struct {
	store     *Store
	validator *Validator
	logger    *log.Logger
}

func (a *api) listMedia(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, listResponse{Data: a.store.Items()})
}

func (a *api) getMedia(w http.ResponseWriter, r *http.Request) {
	item, ok := a.store.Item(r.PathValue("id"))
	if !ok {
		writeNotFound(w, r)
		return
	}
	writeJSON(w, r, http.StatusOK, item)
}

func (a *api) patchMedia(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := a.store.Item(id); !ok {
		writeNotFound(w, r)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeFieldErrors(w, r, http.StatusBadRequest, map[string][]string{formErrorKey: {"The request body could not be read."}})
		return
	}

	if a.validator != nil {
		if err := a.validator.ValidateRequest(r.Context(), r, body); err != nil {
			var validation *media.ValidationError
			if errors.As(err, &validation) {
				a.logger.Debug("update rejected", "id", id, "err", validation)
				writeFieldErrors(w, r, http.StatusBadRequest, errorPayload(validation))
				return
			}
			a.logger.Error("validate update", "id", id, "err", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	var next media.Item
	if err := json.Unmarshal(body, &next); err != nil {
		writeFieldErrors(w, r, http.StatusBadRequest, map[string][]string{formErrorKey: {"The request body is not valid JSON."}})
		return
	}

	updated, ok := a.store.UpdateItem(id, next)
	if !ok {
		writeNotFound(w, r)
		return
	}
	a.logger.Info("media updated", "id", id)
	writeJSON(w, r, http.StatusOK, updated)
}

func (a *api) getChannel(w http.ResponseWriter, r *http.Request) {
	channel, ok := a.store.Channel(r.PathValue("id"))
	if !ok {
		writeNotFound(w, r)
		return
	}
	writeJSON(w, r, http.StatusOK, channel)
}

func (a *api) getPlaylist(w http.ResponseWriter, r *http.Request) {
	playlist, ok := a.store.Playlist(r.PathValue("id"))
	if !ok {
		writeNotFound(w, r)
		return
	}
	writeJSON(w, r, http.StatusOK, playlist)
}

func (a *api) getProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, a.store.Profile())
}

func errorPayload(err *media.ValidationError) map[string][]string {
	out := make(map[string][]string, len(err.Fields)+1)
	for field, messages := range err.Fields {
		out[string(field)] = append([]string(nil), messages...)
	}
	if len(err.Form) > 0 {
		out[formErrorKey] = append([]string(nil), err.Form...)
	}
	return out
}

func writeNotFound(w http.ResponseWriter, r *http.Request) {
	writeFieldErrors(w, r, http.StatusNotFound, map[string][]string{"detail": {"Not found."}})
}

func writeFieldErrors(w http.ResponseWriter, r *http.Request, code int, payload map[string][]string) {
	writeJSON(w, r, code, payload)
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if r.Method == http.MethodHead {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
