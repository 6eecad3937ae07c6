package snapshot

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// ErrSchemaViolation is returned when a document does not conform to the
// snapshot schema.
var ErrSchemaViolation = errors.New("snapshot schema violation")

//go:embed schema.json
var schemaJSON []byte

//nolint:gochecknoglobals // compiled once on first use.
var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
})

// Schema returns the embedded JSON schema.
func Schema() []byte {
	return schemaJSON
}

// Options controls decoding and model building.
type Options struct {
	// ValidateSchema checks the document against the embedded schema.
	ValidateSchema bool
	// Languages lists accepted source languages as named by enry, compared
	// case-insensitively. Empty accepts every class.
	Languages []string
	// SkipVendor drops classes declared in vendored paths.
	SkipVendor bool
}

// ReadFile reads and decodes the snapshot at path.
func ReadFile(path string, opts Options) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	doc, err := Parse(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// Parse decodes a YAML or JSON document.
func Parse(data []byte, opts Options) (*Document, error) {
	if opts.ValidateSchema {
		if err := Validate(data); err != nil {
			return nil, err
		}
	}

	var doc Document

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	return &doc, nil
}

// Validate checks data against the embedded schema. All violations are
// reported in one error wrapping ErrSchemaViolation.
func Validate(data []byte) error {
	var raw any

	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile snapshot schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSchemaViolation, err)
	}

	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		problems = append(problems, verr.Field()+": "+verr.Description())
	}

	return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(problems, "; "))
}
