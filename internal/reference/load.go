package reference

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml schema/*.json
var embedded embed.FS

const (
	locationsFileName    = "locations.yaml"
	climateZonesFileName = "climate_zones.yaml"
	advisoriesFileName   = "advisories.yaml"
	candidatesFileName   = "candidates.yaml"
)

// Load reads and validates the tables embedded in the binary.
func Load() (*Tables, error) {
	data, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("open embedded tables: %w", err)
	}
	return LoadFS(data)
}

// LoadDir reads and validates tables from a directory on disk. The directory
// must contain the same four YAML files as the embedded set.
func LoadDir(dir string) (*Tables, error) {
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads the four table files from the root of fsys, validates each
// against its schema, then checks the cross-table rules. All problems found
// are returned together.
func LoadFS(fsys fs.FS) (*Tables, error) {
	var (
		locations locationsFile
		zones     climateZonesFile
		advice    AdvisoryTable
		cands     candidatesFile
	)

	errs := []error{
		decodeFile(fsys, locationsFileName, &locations),
		decodeFile(fsys, climateZonesFileName, &zones),
		decodeFile(fsys, advisoriesFileName, &advice),
		decodeFile(fsys, candidatesFileName, &cands),
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	t := &Tables{
		States:       locations.States,
		CityZones:    zones.CityZones,
		ZoneSynonyms: zones.Synonyms,
		Advisories:   advice,
		Catalog:      cands.Catalog,
		Defaults:     cands.Defaults,
		Curated:      cands.Curated,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// decodeFile validates a YAML file against its schema and decodes it into out.
func decodeFile(fsys fs.FS, name string, out any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	if err := validateSchema(name, doc); err != nil {
		return err
	}

	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func validateSchema(name string, doc any) error {
	schemaName := "schema/" + trimExt(name) + ".schema.json"
	schema, err := embedded.ReadFile(schemaName)
	if err != nil {
		return fmt.Errorf("read schema for %s: %w", name, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("validate %s: %w", name, err)
	}
	if result.Valid() {
		return nil
	}

	se := &SchemaError{File: name}
	for _, re := range result.Errors() {
		se.Errors = append(se.Errors, FieldError{Field: re.Field(), Message: re.Description()})
	}
	return se
}

func trimExt(name string) string {
	return name[:len(name)-len(path.Ext(name))]
}
