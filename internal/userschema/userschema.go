// Package userschema validates user directory responses against a strict
// JSON Schema derived from types.User.
package userschema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	invopop "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/usestring/mcp-starter/pkg/types"
)

const schemaURL = "user.json"

// ViolationError reports why a payload does not match the user schema.
type ViolationError struct {
	Violations []string
}

func (e *ViolationError) Error() string {
	return "invalid user payload: " + strings.Join(e.Violations, "; ")
}

// Validator checks raw user payloads. It is safe for concurrent use.
type Validator struct {
	schema *jsonschema.Schema
}

// New compiles the user schema.
func New() (*Validator, error) {
	doc, err := Document()
	if err != nil {
		return nil, err
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat()
	compiler.RegisterFormat(&jsonschema.Format{
		Name:     "website",
		Validate: validateWebsite,
	})

	if err := compiler.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	compiled, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}

	return &Validator{schema: compiled}, nil
}

// MustNew is like New but panics on error. The schema is static, so an error
// here is a programming mistake.
func MustNew() *Validator {
	v, err := New()
	if err != nil {
		panic(fmt.Sprintf("userschema: %v", err))
	}
	return v
}

// Document returns the user schema as a generic JSON value.
func Document() (any, error) {
	r := &invopop.Reflector{
		Anonymous:      true,
		DoNotReference: true,
		ExpandedStruct: true,
	}
	schemaJSON, err := json.Marshal(r.Reflect(&types.User{}))
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(schemaJSON, &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling schema: %w", err)
	}
	return doc, nil
}

// Decode validates data and decodes it into a User. Any mismatch, including
// malformed JSON, is reported as a *ViolationError.
func (v *Validator) Decode(data []byte) (*types.User, error) {
	value, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, &ViolationError{Violations: []string{"invalid JSON: " + err.Error()}}
	}

	if err := v.schema.Validate(value); err != nil {
		return nil, &ViolationError{Violations: extractViolations(err)}
	}

	var user types.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, &ViolationError{Violations: []string{"invalid JSON: " + err.Error()}}
	}
	return &user, nil
}

// printer renders validator messages in English.
var printer = message.NewPrinter(language.English)

func extractViolations(err error) []string {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return []string{err.Error()}
	}

	seen := make(map[string]bool)
	var out []string
	collect(validationErr, seen, &out)
	sort.Strings(out)
	return out
}

// collect gathers leaf errors, which carry the concrete failure.
func collect(err *jsonschema.ValidationError, seen map[string]bool, out *[]string) {
	if err.ErrorKind != nil && len(err.Causes) == 0 {
		msg := err.ErrorKind.LocalizedString(printer)
		if len(err.InstanceLocation) > 0 {
			msg = "/" + strings.Join(err.InstanceLocation, "/") + ": " + msg
		}
		if !seen[msg] {
			seen[msg] = true
			*out = append(*out, msg)
		}
	}
	for _, cause := range err.Causes {
		collect(cause, seen, out)
	}
}

// validateWebsite accepts absolute http(s) URLs and bare host names such as
// "example.org", which is how the upstream API publishes websites.
func validateWebsite(v any) error {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	if s == "" || strings.ContainsAny(s, " \t\r\n") {
		return errors.New("not a URL")
	}

	raw := s
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if !strings.Contains(u.Hostname(), ".") {
		return errors.New("missing host")
	}
	return nil
}
