// Package mediaapi is an in-memory media API: items, channels, playlists and
// a fixed profile, served as JSON over net/http.
//
// Update requests are validated against the embedded OpenAPI document under
// data/openapi.yaml. Rejected updates answer 400 with an object mapping field
// names to lists of messages, the same shape the editor expects from the real
// backend. The seed data lives in data/seed.json.
package mediaapi
