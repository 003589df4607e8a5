package config

import (
	"fmt"

	"github.com/aretw0/compartments/pkg/domain"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Definition is a user model definition bound to the family whose catalogs it uses.
type Definition struct {
	Family string
	domain.ModelDefinition
}

type hclModel struct {
	Key         string   `hcl:"key,label"`
	Family      string   `hcl:"family"`
	Name        string   `hcl:"name,optional"`
	Description string   `hcl:"description,optional"`
	Blocks      []string `hcl:"blocks"`
}

type hclDefinitionsFile struct {
	Models []*hclModel `hcl:"model,block"`
}

// LoadDefinitions parses HCL definition files, in order:
//
//	model "sei" {
//	  family      = "one_strain"
//	  name        = "SEI"
//	  description = "SEI model without recovery"
//	  blocks      = ["birth", "infection_E", "erlang_E_2"]
//	}
func LoadDefinitions(paths ...string) ([]Definition, error) {
	parser := hclparse.NewParser()
	var out []Definition
	for _, path := range paths {
		file, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
		}
		defs, err := decodeDefinitions(file, path)
		if err != nil {
			return nil, err
		}
		out = append(out, defs...)
	}
	return out, nil
}

// ParseDefinitions is LoadDefinitions for in-memory sources.
func ParseDefinitions(src []byte, filename string) ([]Definition, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return decodeDefinitions(file, filename)
}

func decodeDefinitions(file *hcl.File, filename string) ([]Definition, error) {
	var parsed hclDefinitionsFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	defs := make([]Definition, 0, len(parsed.Models))
	for _, m := range parsed.Models {
		name := m.Name
		if name == "" {
			name = m.Key
		}
		defs = append(defs, Definition{
			Family: m.Family,
			ModelDefinition: domain.ModelDefinition{
				Key:         m.Key,
				Name:        name,
				Description: m.Description,
				Blocks:      m.Blocks,
			},
		})
	}
	return defs, nil
}
