package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm    ChromeClass = "mediaui-form"
	ClassFields  ChromeClass = "mediaui-fields"
	ClassField   ChromeClass = "mediaui-field"
	ClassActions ChromeClass = "mediaui-actions"
	ClassErrors  ChromeClass = "mediaui-errors"
	ClassHelper  ChromeClass = "mediaui-helper"
)

// Modifiers appended to ClassField.
const (
	ModifierError    = "--error"
	ModifierCheckbox = "--checkbox"
)

func chromeClasses() map[string]string {
	return map[string]string{
		"form":    string(ClassForm),
		"fields":  string(ClassFields),
		"actions": string(ClassActions),
		"errors":  string(ClassErrors),
	}
}
