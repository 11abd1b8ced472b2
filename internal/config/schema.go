package config

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON []byte

// Schema returns the JSON schema the merged settings are validated against.
func Schema() []byte {
	return schemaJSON
}

func validateSchema(cfg *Config) []error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewGoLoader(cfg),
	)
	if err != nil {
		return []error{fmt.Errorf("schema validation: %w", err)}
	}

	if result.Valid() {
		return nil
	}

	errs := make([]error, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		errs = append(errs, fmt.Errorf("%s: %s", re.Field(), re.Description()))
	}

	return errs
}
