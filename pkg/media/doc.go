// Package media defines the resources exchanged with the media platform API:
// media items and their editable metadata, partial updates (Patch), and the
// per-field error sets returned when the API rejects an update.
//
// Item keeps every server field it does not interpret as raw JSON so a
// load-edit-save round trip never drops or rewrites data owned by the API.
// Patch is a structural partial update: one optional member per editable
// field, so a patch cannot name an unknown field or the item id.
package media
