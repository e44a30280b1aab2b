package media

import "strings"

// Field names an editable item field.
type Field string

const (
	FieldTitle        Field = "title"
	FieldDescription  Field = "description"
	FieldDownloadable Field = "downloadable"
	FieldCopyright    Field = "copyright"
)

var editableFields = []Field{FieldTitle, FieldDescription, FieldDownloadable, FieldCopyright}

// EditableFields lists the editable fields in display order.
func EditableFields() []Field {
	return append([]Field(nil), editableFields...)
}

// ParseField resolves a field name, reporting false for anything that is not
// an editable field.
func ParseField(name string) (Field, bool) {
	candidate := Field(strings.TrimSpace(name))
	for _, field := range editableFields {
		if field == candidate {
			return field, true
		}
	}
	return "", false
}

// Patch is a partial update of an item's editable fields. Nil members are
// left untouched when the patch is applied.
type Patch struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	Downloadable *bool   `json:"downloadable,omitempty"`
	Copyright    *string `json:"copyright,omitempty"`
}

// PatchTitle returns a patch setting only the title.
func PatchTitle(value string) Patch {
	return Patch{Title: &value}
}

// PatchDescription returns a patch setting only the description.
func PatchDescription(value string) Patch {
	return Patch{Description: &value}
}

// PatchDownloadable returns a patch setting only the downloadable flag.
func PatchDownloadable(value bool) Patch {
	return Patch{Downloadable: &value}
}

// PatchCopyright returns a patch setting only the copyright notice.
func PatchCopyright(value string) Patch {
	return Patch{Copyright: &value}
}

// Fields lists the members present in the patch, in display order.
func (p Patch) Fields() []Field {
	var out []Field
	if p.Title != nil {
		out = append(out, FieldTitle)
	}
	if p.Description != nil {
		out = append(out, FieldDescription)
	}
	if p.Downloadable != nil {
		out = append(out, FieldDownloadable)
	}
	if p.Copyright != nil {
		out = append(out, FieldCopyright)
	}
	return out
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Merge returns p with the members of next layered on top.
func (p Patch) Merge(next Patch) Patch {
	out := p
	if next.Title != nil {
		out.Title = next.Title
	}
	if next.Description != nil {
		out.Description = next.Description
	}
	if next.Downloadable != nil {
		out.Downloadable = next.Downloadable
	}
	if next.Copyright != nil {
		out.Copyright = next.Copyright
	}
	return out
}
