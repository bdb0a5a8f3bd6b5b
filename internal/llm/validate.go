package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// ValidateJSON validates raw JSON against the given Schema.
// Returns nil if no schema is provided or validation passes.
// Returns *ErrInvalidResponse on failure.
func ValidateJSON(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	// Parse JSON first.
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("invalid JSON: %w", err),
		}
	}

	// Get or compile the schema.
	compiled, err := getCompiledSchema(schema)
	if err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("compile schema %q: %w", schema.Name, err),
		}
	}

	// Validate against schema.
	if err := compiled.Validate(parsed); err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("schema validation failed: %w", err),
		}
	}

	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value (any), not raw bytes.
	// Marshal then unmarshal to get a clean any representation.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}

// structuredContent prepares a provider's raw output for a request made
// with schema: code fences are stripped, then the result is validated
// against schema, or for a Loose schema only checked to be JSON.
func structuredContent(schema *Schema, raw []byte) (json.RawMessage, error) {
	content := json.RawMessage(StripCodeFences(raw))
	if schema == nil {
		return content, nil
	}
	if schema.Loose {
		if !json.Valid(content) {
			return nil, &ErrInvalidResponse{Content: content, Err: errors.New("response is not valid JSON")}
		}
		return content, nil
	}
	if err := ValidateJSON(schema, content); err != nil {
		return nil, err
	}
	return content, nil
}

// finish applies the checks every provider runs on a completed request.
// A structured reply cut off at MaxTokens cannot be valid JSON and is
// reported as ErrMaxTokensExceeded; otherwise it goes through
// structuredContent.
func finish(req Request, resp *Response) (*Response, error) {
	if req.Schema == nil {
		return resp, nil
	}
	if resp.StopReason == "max_tokens" {
		return nil, &ErrMaxTokensExceeded{Content: resp.Content}
	}
	content, err := structuredContent(req.Schema, resp.Content)
	if err != nil {
		return nil, err
	}
	resp.Content = content
	return resp, nil
}

// StripCodeFences removes a surrounding Markdown code fence (```json ... ```)
// that some models wrap around JSON output. Content without a fence is
// returned trimmed.
func StripCodeFences(raw []byte) []byte {
	s := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(s, []byte("```")) {
		return s
	}
	s = s[3:]
	// Drop the info string ("json", "JSON", ...) up to the first newline.
	if i := bytes.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = bytes.TrimPrefix(bytes.TrimPrefix(s, []byte("json")), []byte("JSON"))
	}
	s = bytes.TrimSpace(s)
	s = bytes.TrimSuffix(s, []byte("```"))
	return bytes.TrimSpace(s)
}
