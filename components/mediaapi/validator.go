package mediaapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"

	"github.com/goliatone/go-mediaui/pkg/media"
)

const formErrorKey = "non_field_errors"

// Validator checks requests against the embedded OpenAPI document.
type Validator struct {
	doc    *openapi3.T
	router routers.Router
}

var (
	defaultValidatorOnce sync.Once
	defaultValidator     *Validator
	defaultValidatorErr  error
)

// DefaultValidator returns the validator for the embedded document. It is
// built once per process.
func DefaultValidator() (*Validator, error) {
	defaultValidatorOnce.Do(func() {
		raw, err := dataFS.ReadFile(specPath)
		if err != nil {
			defaultValidatorErr = err
			return
		}
		defaultValidator, defaultValidatorErr = NewValidator(context.Background(), raw)
	})
	return defaultValidator, defaultValidatorErr
}

// NewValidator loads and validates an OpenAPI document.
func NewValidator(ctx context.Context, raw []byte) (*Validator, error) {
	if len(raw) == 0 {
		return nil, errors.New("mediaapi: openapi document is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("mediaapi: load openapi document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("mediaapi: validate openapi document: %w", err)
	}
	router, err := legacy.NewRouter(doc, openapi3.DisableExamplesValidation())
	if err != nil {
		return nil, fmt.Errorf("mediaapi: build router: %w", err)
	}
	return &Validator{doc: doc, router: router}, nil
}

// Document returns the loaded OpenAPI document.
func (v *Validator) Document() *openapi3.T {
	return v.doc
}

// ValidateRequest checks r and its body against the document. body is the
// already-read request payload. Schema violations come back as a
// *media.ValidationError keyed by field name.
func (v *Validator) ValidateRequest(ctx context.Context, r *http.Request, body []byte) error {
	route, params, err := v.router.FindRoute(r)
	if err != nil {
		return fmt.Errorf("mediaapi: find route: %w", err)
	}

	clone := r.Clone(ctx)
	clone.Body = io.NopCloser(bytes.NewReader(body))
	clone.ContentLength = int64(len(body))

	input := &openapi3filter.RequestValidationInput{
		Request:    clone,
		PathParams: params,
		Route:      route,
		Options: &openapi3filter.Options{
			MultiError:         true,
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	}
	if err := openapi3filter.ValidateRequest(ctx, input); err != nil {
		return toValidationError(err)
	}
	return nil
}

func toValidationError(err error) *media.ValidationError {
	payload := map[string][]string{}
	collectErrors(err, payload)
	if len(payload) == 0 {
		payload[formErrorKey] = []string{"The request could not be understood."}
	}
	return media.MapErrorPayload(payload)
}

func collectErrors(err error, payload map[string][]string) {
	var multi openapi3.MultiError
	if errors.As(err, &multi) && len(multi) > 0 {
		for _, inner := range multi {
			collectErrors(inner, payload)
		}
		return
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		key := strings.Join(schemaErr.JSONPointer(), "/")
		if key == "" {
			key = formErrorKey
		}
		payload[key] = append(payload[key], schemaMessage(schemaErr))
		return
	}

	var requestErr *openapi3filter.RequestError
	if errors.As(err, &requestErr) {
		reason := requestErr.Reason
		if reason == "" && requestErr.Err != nil {
			reason = requestErr.Err.Error()
		}
		payload[formErrorKey] = append(payload[formErrorKey], capitalize(reason))
		return
	}

	payload[formErrorKey] = append(payload[formErrorKey], capitalize(err.Error()))
}

func schemaMessage(err *openapi3.SchemaError) string {
	schema := err.Schema
	switch err.SchemaField {
	case "required":
		return "This field is required."
	case "minLength":
		if value, ok := err.Value.(string); ok && strings.TrimSpace(value) == "" {
			return "This field may not be blank."
		}
		if schema != nil {
			return fmt.Sprintf("Ensure this field has at least %d characters.", schema.MinLength)
		}
	case "maxLength":
		if schema != nil && schema.MaxLength != nil {
			return fmt.Sprintf("Ensure this field has no more than %d characters.", *schema.MaxLength)
		}
	case "type":
		if schema != nil && schema.Type != nil && len(*schema.Type) > 0 {
			return fmt.Sprintf("Must be a %s.", (*schema.Type)[0])
		}
	}
	return capitalize(err.Reason)
}

func capitalize(message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return ""
	}
	return strings.ToUpper(message[:1]) + message[1:]
}
