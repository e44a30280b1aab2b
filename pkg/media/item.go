package media

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Keys interpreted by Item. Everything else lands in Item.Extra.
const (
	keyID      = "id"
	keyChannel = "channel"
)

// Item is a media item as served by GET /media/{id}.
type Item struct {
	ID           string
	Title        string
	Description  string
	Downloadable bool
	Copyright    string
	Channel      *ChannelRef

	// Extra holds the remaining server fields untouched.
	Extra map[string]json.RawMessage
}

// ChannelRef identifies the channel owning an item. The raw payload is kept so
// the reference round-trips unchanged.
type ChannelRef struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`

	raw json.RawMessage
}

// Placeholder returns the item held before a load completes.
func Placeholder() Item {
	return Item{ID: ""}
}

// Loaded reports whether the item carries a server-assigned id.
func (i Item) Loaded() bool {
	return i.ID != ""
}

// Apply returns a copy of the item with the patch shallow-merged in. Members
// absent from the patch, and every non-editable field, are kept as is.
func (i Item) Apply(p Patch) Item {
	out := i
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Downloadable != nil {
		out.Downloadable = *p.Downloadable
	}
	if p.Copyright != nil {
		out.Copyright = *p.Copyright
	}
	return out
}

// ChannelID returns the owning channel id or "" when the item has none.
func (i Item) ChannelID() string {
	if i.Channel == nil {
		return ""
	}
	return i.Channel.ID
}

// UnmarshalJSON decodes known keys into fields and keeps the rest verbatim.
func (i *Item) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("media: decode item: %w", err)
	}

	out := Item{}
	for key, value := range raw {
		switch key {
		case keyID:
			if err := decodeNullable(value, &out.ID); err != nil {
				return fmt.Errorf("media: decode item id: %w", err)
			}
		case string(FieldTitle):
			if err := decodeNullable(value, &out.Title); err != nil {
				return fmt.Errorf("media: decode item title: %w", err)
			}
		case string(FieldDescription):
			if err := decodeNullable(value, &out.Description); err != nil {
				return fmt.Errorf("media: decode item description: %w", err)
			}
		case string(FieldDownloadable):
			if err := decodeNullable(value, &out.Downloadable); err != nil {
				return fmt.Errorf("media: decode item downloadable: %w", err)
			}
		case string(FieldCopyright):
			if err := decodeNullable(value, &out.Copyright); err != nil {
				return fmt.Errorf("media: decode item copyright: %w", err)
			}
		case keyChannel:
			if isNull(value) {
				out.setExtra(key, value)
				continue
			}
			ref := &ChannelRef{}
			if err := json.Unmarshal(value, ref); err != nil {
				return fmt.Errorf("media: decode item channel: %w", err)
			}
			out.Channel = ref
		default:
			out.setExtra(key, value)
		}
	}

	*i = out
	return nil
}

// MarshalJSON writes the full item: editable fields, id, channel and every
// preserved extra field.
func (i Item) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(i.Extra)+6)
	for key, value := range i.Extra {
		out[key] = value
	}
	out[keyID] = i.ID
	out[string(FieldTitle)] = i.Title
	out[string(FieldDescription)] = i.Description
	out[string(FieldDownloadable)] = i.Downloadable
	out[string(FieldCopyright)] = i.Copyright
	if i.Channel != nil {
		out[keyChannel] = i.Channel
	}
	return json.Marshal(out)
}

func (i *Item) setExtra(key string, value json.RawMessage) {
	if i.Extra == nil {
		i.Extra = make(map[string]json.RawMessage)
	}
	i.Extra[key] = append(json.RawMessage(nil), value...)
}

// UnmarshalJSON decodes the reference and keeps the original payload.
func (c *ChannelRef) UnmarshalJSON(data []byte) error {
	type plain ChannelRef
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*c = ChannelRef(decoded)
	c.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON returns the original payload when the reference was decoded
// from the API and has not been re-pointed since.
func (c ChannelRef) MarshalJSON() ([]byte, error) {
	if len(c.raw) > 0 {
		var check struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(c.raw, &check); err == nil && check.ID == c.ID {
			return c.raw, nil
		}
	}
	type plain ChannelRef
	return json.Marshal(plain(c))
}

func decodeNullable[T any](value json.RawMessage, dest *T) error {
	if isNull(value) {
		var zero T
		*dest = zero
		return nil
	}
	return json.Unmarshal(value, dest)
}

func isNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
