package mediaapi

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"sync"

	"github.com/goliatone/go-mediaui/pkg/media"
)

//go:embed data/seed.json data/openapi.yaml
var dataFS embed.FS

const (
	defaultSeedPath = "data/seed.json"
	specPath        = "data/openapi.yaml"
)

type seed struct {
	Media     []media.Item     `json:"media"`
	Channels  []media.Channel  `json:"channels"`
	Playlists []media.Playlist `json:"playlists"`
	Profile   media.Profile    `json:"profile"`
}

// Store holds the API's data. It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	items     map[string]media.Item
	channels  map[string]media.Channel
	playlists map[string]media.Playlist
	profile   media.Profile
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		items:     make(map[string]media.Item),
		channels:  make(map[string]media.Channel),
		playlists: make(map[string]media.Playlist),
	}
}

// DefaultStore returns a fresh store loaded with the embedded seed data.
func DefaultStore() (*Store, error) {
	f, err := dataFS.Open(defaultSeedPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return LoadStore(f)
}

// LoadStore reads seed JSON into a new store.
func LoadStore(r io.Reader) (*Store, error) {
	if r == nil {
		return nil, fmt.Errorf("mediaapi: missing reader")
	}
	var data seed
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("mediaapi: decode seed: %w", err)
	}

	s := NewStore()
	for _, item := range data.Media {
		if !item.Loaded() {
			return nil, fmt.Errorf("mediaapi: seed item without id")
		}
		s.items[item.ID] = item
	}
	for _, channel := range data.Channels {
		s.channels[channel.ID] = channel
	}
	for _, playlist := range data.Playlists {
		s.playlists[playlist.ID] = playlist
	}
	s.profile = data.Profile
	return s, nil
}

// PutItem inserts or replaces an item.
func (s *Store) PutItem(item media.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
}

// PutChannel inserts or replaces a channel.
func (s *Store) PutChannel(channel media.Channel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channels[channel.ID] = channel
}

// SetProfile replaces the current user's profile.
func (s *Store) SetProfile(profile media.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = profile
}

// Item returns the item with the given id.
func (s *Store) Item(id string) (media.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	return item, ok
}

// Items returns every item ordered by id, numeric ids first.
func (s *Store) Items() []media.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]media.Item, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return lessID(out[i].ID, out[j].ID) })
	return out
}

// UpdateItem applies the editable fields of next to the stored item. The id,
// channel and any other server-owned fields are kept.
func (s *Store) UpdateItem(id string, next media.Item) (media.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.items[id]
	if !ok {
		return media.Item{}, false
	}
	updated := current.Apply(media.Patch{
		Title:        &next.Title,
		Description:  &next.Description,
		Downloadable: &next.Downloadable,
		Copyright:    &next.Copyright,
	})
	s.items[id] = updated
	return updated, true
}

// Channel returns the channel with the given id.
func (s *Store) Channel(id string) (media.Channel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	channel, ok := s.channels[id]
	return channel, ok
}

// Playlist returns the playlist with the given id.
func (s *Store) Playlist(id string) (media.Playlist, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playlist, ok := s.playlists[id]
	return playlist, ok
}

// Profile returns the current user's profile.
func (s *Store) Profile() media.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

func lessID(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}
