package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the form view.
type RenderOptions struct {
	// Action is the submission URL. Empty keeps the current URL.
	Action string
	// Method is the HTTP method the API expects. Renderers translate verbs
	// browsers cannot submit (PATCH/PUT/DELETE) into POST plus a hidden
	// _method input.
	Method string
	// Hidden carries extra hidden inputs such as CSRF tokens.
	Hidden map[string]string
	// FormErrors are messages not tied to a single control.
	FormErrors []string
	// Cancel renders a cancel button that submits IntentCancel.
	Cancel bool
	// SubmitLabel overrides the submit button text.
	SubmitLabel string
	// Fields restricts rendering to a subset of controls.
	Fields FieldSubset

	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
}
