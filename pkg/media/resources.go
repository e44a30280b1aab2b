package media

// Channel is the read-only channel shape served by GET /channels/{id}.
type Channel struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	MediaIDs    []string `json:"media,omitempty"`
}

// Playlist is the read-only playlist shape served by GET /playlists/{id}.
type Playlist struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Channel  *ChannelRef `json:"channel,omitempty"`
	MediaIDs []string    `json:"media,omitempty"`
}

// Profile describes the current user. Channels lists the channels the user
// may edit.
type Profile struct {
	Username string       `json:"username"`
	Channels []ChannelRef `json:"channels"`
}

// OwnsChannel reports whether the profile lists the channel id.
func (p Profile) OwnsChannel(id string) bool {
	if id == "" {
		return false
	}
	for _, ref := range p.Channels {
		if ref.ID == id {
			return true
		}
	}
	return false
}
