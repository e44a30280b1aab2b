// Package sanitize cleans user-supplied media text before it is placed in
// pages or structured data.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictOnce sync.Once
	strict     *bluemonday.Policy

	richOnce sync.Once
	rich     *bluemonday.Policy
)

// PlainText removes every tag and returns unescaped text. Callers must escape
// it again for the context they write it into.
func PlainText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := strictPolicy().Sanitize(trimmed)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

// HTML keeps basic formatting markup and drops scripts, handlers and styles.
// Line breaks in plain descriptions become <br>.
func HTML(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	trimmed = strings.ReplaceAll(trimmed, "\r\n", "\n")
	if !strings.Contains(trimmed, "<") {
		trimmed = strings.ReplaceAll(html.EscapeString(trimmed), "\n", "<br>")
	}
	return strings.TrimSpace(richPolicy().Sanitize(trimmed))
}

func strictPolicy() *bluemonday.Policy {
	strictOnce.Do(func() {
		strict = bluemonday.StrictPolicy()
	})
	return strict
}

func richPolicy() *bluemonday.Policy {
	richOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.RequireNoFollowOnLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		rich = policy
	})
	return rich
}
