// Package pages serves the HTML front end: the route table of pkg/routes
// bound to page handlers that render pongo2 layouts, the media edit flow
// driven by pkg/edit, one-shot messages from pkg/flash and the embedded
// stylesheet.
//
// Server.Handler returns a plain http.Handler so the pages can be mounted
// next to other handlers (for example the in-memory media API).
package pages
