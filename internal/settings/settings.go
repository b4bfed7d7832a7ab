package settings

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/topasparse/internal/ctxlog"
	"github.com/vk/topasparse/internal/topas"
)

// Settings is the resolved, format-agnostic configuration consumed by
// the app and exporter.
type Settings struct {
	Parser ParserSettings
	Export ExportSettings
}

// ParserSettings maps onto topas.Options.
type ParserSettings struct {
	DuplicatePhases topas.DuplicatePolicy
	RequiredParams  []string
}

// ExportSettings selects and renames the structure-table columns.
type ExportSettings struct {
	StructureParams []string
	Renames         map[string]string
}

// Default returns the settings used when no settings file is given.
func Default() *Settings {
	return &Settings{
		Parser: ParserSettings{
			DuplicatePhases: topas.PolicyOverwrite,
			RequiredParams:  topas.DefaultRequiredParams,
		},
		Export: ExportSettings{
			StructureParams: []string{"r_bragg", "a", "b", "c", "al", "be", "ga"},
			Renames:         map[string]string{},
		},
	}
}

// Options returns the parser options corresponding to these settings.
func (s *Settings) Options() *topas.Options {
	return &topas.Options{
		RequiredParams:  s.Parser.RequiredParams,
		DuplicatePhases: s.Parser.DuplicatePhases,
	}
}

// settingsFile is the HCL shape of a settings file.
type settingsFile struct {
	Parser *parserBlock `hcl:"parser,block"`
	Export *exportBlock `hcl:"export,block"`
	Remain hcl.Body     `hcl:",remain"`
}

type parserBlock struct {
	DuplicatePhases string   `hcl:"duplicate_phases,optional"`
	RequiredParams  []string `hcl:"required_params,optional"`
}

// exportBlock keeps its remaining body: every attribute that is not
// structure_params is treated as a column rename.
type exportBlock struct {
	StructureParams []string `hcl:"structure_params,optional"`
	Remain          hcl.Body `hcl:",remain"`
}

// Load parses an HCL settings file and merges it over the defaults.
func Load(ctx context.Context, path string) (*Settings, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, diags)
	}

	var parsed settingsFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode settings file %s: %w", path, diags)
	}

	s := Default()

	if parsed.Parser != nil {
		switch parsed.Parser.DuplicatePhases {
		case "", "overwrite":
			s.Parser.DuplicatePhases = topas.PolicyOverwrite
		case "reject":
			s.Parser.DuplicatePhases = topas.PolicyReject
		default:
			return nil, fmt.Errorf(
				"invalid duplicate_phases %q in %s: must be 'overwrite' or 'reject'",
				parsed.Parser.DuplicatePhases, path)
		}
		if parsed.Parser.RequiredParams != nil {
			s.Parser.RequiredParams = parsed.Parser.RequiredParams
		}
	}

	if parsed.Export != nil {
		if parsed.Export.StructureParams != nil {
			s.Export.StructureParams = parsed.Export.StructureParams
		}
		renames, err := decodeRenames(parsed.Export.Remain)
		if err != nil {
			return nil, fmt.Errorf("failed to decode export renames in %s: %w", path, err)
		}
		for column, header := range renames {
			s.Export.Renames[column] = header
		}
	}

	logger.Debug("Settings loaded.", "path", path,
		"required_params", s.Parser.RequiredParams,
		"structure_params", s.Export.StructureParams)
	return s, nil
}

// decodeRenames evaluates every leftover attribute of the export block
// into a column → header string mapping.
func decodeRenames(body hcl.Body) (map[string]string, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	renames := make(map[string]string, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		converted, err := convert.Convert(val, cty.String)
		if err != nil {
			return nil, fmt.Errorf("rename %q is not a string: %w", name, err)
		}
		var header string
		if err := gocty.FromCtyValue(converted, &header); err != nil {
			return nil, fmt.Errorf("rename %q: %w", name, err)
		}
		renames[name] = header
	}
	return renames, nil
}
