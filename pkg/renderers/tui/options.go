package tui

// OutputFormat controls how the collected patch is serialized by Render.
type OutputFormat string

const (
	// OutputFormatJSON emits the patch as application/json.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional prefixes the renderer puts in front of printed
// messages. Keep minimal to avoid coupling renderer logic to ANSI specifics.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// DefaultTheme is applied when WithTheme is not used.
var DefaultTheme = Theme{
	InfoPrefix:  "i ",
	ErrorPrefix: "! ",
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
