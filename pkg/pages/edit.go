package pages

import (
	"context"
	"errors"
	"net/http"

	"github.com/goliatone/go-mediaui/pkg/edit"
	"github.com/goliatone/go-mediaui/pkg/form"
	"github.com/goliatone/go-mediaui/pkg/media"
	"github.com/goliatone/go-mediaui/pkg/render"
	"github.com/goliatone/go-mediaui/pkg/routes"
	"github.com/goliatone/go-mediaui/pkg/sanitize"
)

// backendLoader adapts Backend to edit.Loader.
type backendLoader struct {
	backend Backend
}

func (l backendLoader) Get(ctx context.Context, id string) (media.Item, error) {
	return l.backend.GetMedia(ctx, id)
}

func (l backendLoader) Patch(ctx context.Context, item media.Item) (media.Item, error) {
	return l.backend.PatchMedia(ctx, item)
}

// redirect records the path the controller navigates to. The handler turns
// it into a 303 once the controller returns.
type redirect struct {
	path string
}

func (r *redirect) Navigate(path string) { r.path = path }

func (s *Server) newController(w http.ResponseWriter, r *http.Request) (*edit.Controller, *redirect, error) {
	nav := &redirect{}
	ctrl, err := edit.New(edit.Dependencies{
		Loader:    backendLoader{backend: s.backend},
		Navigator: nav,
		Messages:  s.sessions.Queue(w, r),
		Ownership: s.ownership,
	}, edit.WithLogger(s.logger.With("component", "edit")))
	return ctrl, nav, err
}

func (s *Server) mediaEdit(w http.ResponseWriter, r *http.Request) {
	ctrl, nav, err := s.newController(w, r)
	if err != nil {
		s.logger.Error("edit controller", "err", err)
		s.renderError(w, r, http.StatusInternalServerError, "The editor could not be started.")
		return
	}

	if r.Method == http.MethodPost {
		s.submitEdit(w, r, ctrl, nav)
		return
	}

	if err := ctrl.Load(r.Context(), r.PathValue(routes.PathParam)); err != nil {
		s.fail(w, r, "media item", err)
		return
	}
	s.renderEdit(w, r, ctrl, http.StatusOK)
}

func (s *Server) submitEdit(w http.ResponseWriter, r *http.Request, ctrl *edit.Controller, nav *redirect) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "The form could not be read.")
		return
	}
	switch render.RequestMethod(r) {
	case http.MethodPost, http.MethodPatch:
	default:
		w.Header().Set("Allow", "GET, POST")
		s.renderError(w, r, http.StatusMethodNotAllowed, "This form cannot be submitted that way.")
		return
	}

	session, ok := s.sessions.Lookup(r)
	if !ok || !s.csrf.Valid(session, r.PostFormValue(CSRFField)) {
		s.renderError(w, r, http.StatusForbidden, "Your session has expired. Reload the page and try again.")
		return
	}

	pk := r.PathValue(routes.PathParam)
	if err := ctrl.Load(r.Context(), pk); err != nil {
		s.fail(w, r, "media item", err)
		return
	}

	if render.RequestIntent(r) == render.IntentCancel {
		if err := ctrl.Cancel(); err != nil {
			s.renderEdit(w, r, ctrl, http.StatusForbidden)
			return
		}
		http.Redirect(w, r, nav.path, http.StatusSeeOther)
		return
	}

	if !ctrl.CanEdit() {
		s.renderEdit(w, r, ctrl, http.StatusForbidden)
		return
	}

	for _, event := range form.EventsFromValues(form.Render(ctrl.Props()), r.PostForm) {
		form.Dispatch(ctrl.Props(), event)
	}

	err := ctrl.Save(r.Context())
	var invalid *media.ValidationError
	switch {
	case err == nil:
		http.Redirect(w, r, nav.path, http.StatusSeeOther)
	case errors.As(err, &invalid):
		s.renderEdit(w, r, ctrl, http.StatusUnprocessableEntity)
	case errors.Is(err, edit.ErrForbidden):
		s.renderEdit(w, r, ctrl, http.StatusForbidden)
	default:
		s.logger.Error("save media item", "id", pk, "err", err)
		s.renderEdit(w, r, ctrl, http.StatusBadGateway)
	}
}

// renderEdit draws the controller's current view. The form is replaced by
// the fixed message when the user may not edit the item.
func (s *Server) renderEdit(w http.ResponseWriter, r *http.Request, ctrl *edit.Controller, status int) {
	view := ctrl.View()
	data := map[string]any{
		"title":       "Edit",
		"item_title":  sanitize.PlainText(view.Item.Title),
		"cancel_href": view.CancelHref,
		"message":     view.Message,
	}

	if view.ShowForm() {
		token := s.csrf.Token(s.sessions.ID(w, r))
		markup, err := s.forms.Render(r.Context(), view.Form, render.RenderOptions{
			Action:     routes.MediaEditPath(view.Item.ID),
			Method:     http.MethodPatch,
			Hidden:     render.MergeHiddenFields(nil, render.CSRFToken(CSRFField, token)),
			FormErrors: view.FormErrors,
			Cancel:     true,
		})
		if err != nil {
			s.logger.Error("render edit form", "id", view.Item.ID, "err", err)
			s.renderError(w, r, http.StatusInternalServerError, "The form could not be displayed.")
			return
		}
		data["form"] = string(markup)
	}

	s.render(w, r, status, "media_edit", data)
}
