package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"

	"github.com/survivorsrl/netreport/internal/errors"
	"github.com/survivorsrl/netreport/util"
)

// WriteJSON writes the metrics to a writer in indented JSON format.
func (m *Metrics) WriteJSON(w io.Writer) error {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.WithStackTrace(err)
	}

	jsonBytes = append(jsonBytes, '\n')

	_, err = w.Write(jsonBytes)

	return errors.WithStackTrace(err)
}

// WriteToFile writes the metrics artifact to a file. The artifact is written to a temporary
// file in the destination directory and moved into place, so the caller either observes the
// full artifact or none of it.
func (m *Metrics) WriteToFile(path string) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "netreport-metrics-*")
	if err != nil {
		return errors.WithStackTrace(err)
	}

	if err := m.WriteJSON(tmpFile); err != nil {
		tmpFile.Close()
		os.Remove(tmpFile.Name())

		return errors.WithStackTraceAndPrefix(err, "failed to write metrics report")
	}

	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpFile.Name())

		return errors.WithStackTraceAndPrefix(err, "failed to close metrics report file")
	}

	return util.MoveFile(tmpFile.Name(), path)
}

// SchemaValidationError represents a schema validation error with details.
type SchemaValidationError struct {
	Errors []string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("schema validation failed with %d error(s): %v", len(e.Errors), e.Errors)
}

// ValidateJSON validates a serialized metrics artifact against the schema.
// Returns nil if valid, or a SchemaValidationError with details if invalid.
func ValidateJSON(data []byte) error {
	schemaBytes, err := json.Marshal(generateMetricsSchema())
	if err != nil {
		return errors.WithStackTraceAndPrefix(err, "failed to generate schema")
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return errors.WithStackTraceAndPrefix(err, "failed to validate metrics report")
	}

	if !result.Valid() {
		validationErrors := make([]string, len(result.Errors()))
		for i, validationErr := range result.Errors() {
			validationErrors[i] = validationErr.String()
		}

		return errors.WithStackTrace(&SchemaValidationError{Errors: validationErrors})
	}

	return nil
}

// ValidateFile reads and validates a metrics artifact against the schema.
func ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WithStackTraceAndPrefix(err, "failed to read metrics report %s", path)
	}

	return ValidateJSON(data)
}

// WriteSchema writes the JSON schema of the metrics artifact to a writer.
func WriteSchema(w io.Writer) error {
	jsonBytes, err := json.MarshalIndent(generateMetricsSchema(), "", "  ")
	if err != nil {
		return errors.WithStackTrace(err)
	}

	jsonBytes = append(jsonBytes, '\n')

	_, err = w.Write(jsonBytes)

	return errors.WithStackTrace(err)
}

// WriteSchemaToFile writes the JSON schema of the metrics artifact to a file.
func WriteSchemaToFile(path string) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "netreport-schema-*")
	if err != nil {
		return errors.WithStackTrace(err)
	}

	if err := WriteSchema(tmpFile); err != nil {
		tmpFile.Close()
		os.Remove(tmpFile.Name())

		return errors.WithStackTraceAndPrefix(err, "failed to write schema")
	}

	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpFile.Name())

		return errors.WithStackTraceAndPrefix(err, "failed to close schema file")
	}

	return util.MoveFile(tmpFile.Name(), path)
}

// generateMetricsSchema generates the JSON schema for artifact validation.
func generateMetricsSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}

	schema := reflector.Reflect(&Metrics{})
	schema.Title = "Network Metrics Report Schema"
	schema.Description = "Schema for the network metrics report aggregated from test results"

	return schema
}
