package gotemplate

import (
	"strings"

	"github.com/flosch/pongo2/v6"
)

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
	if !pongo2.FilterExists("joinspace") {
		_ = pongo2.RegisterFilter("joinspace", filterJoinSpace)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// joinspace joins a list of messages with single spaces, the way field error
// messages are displayed.
func filterJoinSpace(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if !in.CanSlice() || in.IsString() {
		return pongo2.AsValue(strings.TrimSpace(in.String())), nil
	}
	parts := make([]string, 0, in.Len())
	in.Iterate(func(_, _ int, key, _ *pongo2.Value) bool {
		if text := strings.TrimSpace(key.String()); text != "" {
			parts = append(parts, text)
		}
		return true
	}, func() {})
	return pongo2.AsValue(strings.Join(parts, " ")), nil
}
