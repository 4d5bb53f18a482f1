package core

import (
	"bytes"
	"fmt"
	"io"
	"path"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/smarty/packcheck/contracts"
)

type SchemaValidator struct {
	name   string
	schema *jsonschema.Schema
}

// NewSchemaValidator compiles the JSON Schema read from document. The name is only
// used to identify the schema in violation messages.
func NewSchemaValidator(name string, document io.Reader) (*SchemaValidator, error) {
	parsed, err := jsonschema.UnmarshalJSON(document)
	if err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", name, err)
	}

	location := "mem:///" + path.Base(name)
	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft2020)
	err = compiler.AddResource(location, parsed)
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", name, err)
	}
	schema, err := compiler.Compile(location)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return &SchemaValidator{name: name, schema: schema}, nil
}

func (this *SchemaValidator) Validate(instance any) error {
	err := this.schema.Validate(instance)
	if err != nil {
		return fmt.Errorf("%w: %v", contracts.ErrSchemaViolation, err)
	}
	return nil
}

// ValidateDocument decodes raw JSON and validates it, returning the decoded instance.
func (this *SchemaValidator) ValidateDocument(raw []byte) (any, error) {
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", contracts.ErrSchemaViolation, err)
	}
	return instance, this.Validate(instance)
}

func (this *SchemaValidator) Name() string { return this.name }
