package schemas

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed *.json
var SchemasFS embed.FS

// Schema names.
const (
	RegionTree = "region-tree.json"
	Boundaries = "boundaries.json"
)

var compiled = make(map[string]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()

	err := fs.WalkDir(SchemasFS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		data, err := SchemasFS.ReadFile(path)
		if err != nil {
			return err
		}
		return compiler.AddResource(path, bytes.NewReader(data))
	})
	if err != nil {
		panic(fmt.Sprintf("schemas: add resources: %v", err))
	}

	for _, name := range []string{RegionTree, Boundaries} {
		schema, err := compiler.Compile(name)
		if err != nil {
			panic(fmt.Sprintf("schemas: compile %s: %v", name, err))
		}
		compiled[name] = schema
	}
}

// Validate checks body against the named schema.
func Validate(name string, body []byte) error {
	schema, ok := compiled[name]
	if !ok {
		return fmt.Errorf("schema %q not found", name)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("body is not valid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}
