package patterns

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidPatternFile is returned when a custom pattern file fails
// schema validation.
var ErrInvalidPatternFile = errors.New("invalid pattern file")

//go:embed schema/pattern-schema.json
var schemaFS embed.FS

type patternFile struct {
	Patterns []Definition `json:"patterns"`
}

// LoadFile reads a custom pattern file, validates it against the embedded
// JSON schema, and returns the contained definitions.
func LoadFile(path string) ([]Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pattern file: %w", err)
	}

	if err := validate(raw); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var file patternFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode pattern file %s: %w", path, err)
	}

	return file.Patterns, nil
}

// LoadRegistry builds a registry from the built-in definitions plus any
// custom pattern files. Custom definitions come first so they can shadow a
// built-in ID.
func LoadRegistry(customPaths []string) (*Registry, error) {
	defs := make([]Definition, 0)

	for _, path := range customPaths {
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}

		defs = append(defs, loaded...)
	}

	defs = append(defs, DefaultRegistry().Definitions()...)

	return NewRegistry(defs), nil
}

func validate(raw []byte) error {
	schemaBytes, err := schemaFS.ReadFile("schema/pattern-schema.json")
	if err != nil {
		return fmt.Errorf("read embedded schema: %w", err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	inputLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, inputLoader)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}

	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		details = append(details, fmt.Sprintf("%s: %s", verr.Field(), verr.Description()))
	}

	return fmt.Errorf("%w: %s", ErrInvalidPatternFile, strings.Join(details, "; "))
}
