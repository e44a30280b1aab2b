package edit

import (
	"github.com/goliatone/go-mediaui/pkg/form"
	"github.com/goliatone/go-mediaui/pkg/media"
	"github.com/goliatone/go-mediaui/pkg/routes"
)

// EditView is everything a page needs to draw the edit screen.
type EditView struct {
	Item       media.Item
	Form       form.View
	FormErrors []string
	CanEdit    bool
	// Message replaces the form when CanEdit is false.
	Message    string
	CancelHref string
	State      State
}

// ShowForm reports whether editable controls should be drawn.
func (v EditView) ShowForm() bool {
	return v.CanEdit && len(v.Form.Controls) > 0
}

// View snapshots the controller for rendering. When the ownership gate fails
// the view has no controls and carries the fixed message, whatever the
// error state.
func (c *Controller) View() EditView {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := EditView{
		Item:  c.item,
		State: c.state,
	}
	if c.item.Loaded() {
		view.CancelHref = routes.MediaViewPath(c.item.ID)
	}
	if c.state == StateLoading {
		view.Form = form.View{Disabled: true}
		return view
	}
	if !c.canEdit {
		view.Form = form.View{Disabled: true}
		view.Message = CannotEditMessage
		return view
	}

	view.CanEdit = true
	view.Form = form.Render(c.propsLocked())
	view.FormErrors = append([]string(nil), c.formErrors...)
	return view
}
