// Package template defines the template engine seam used by the HTML renderer
// and the page server. The gotemplate subpackage implements it with pongo2.
package template
