package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/rshade/binderlca/internal/logging"
)

// Format identifies a catalog document encoding.
type Format string

// Supported catalog formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// DefaultSource is the source name reported for the embedded catalog.
const DefaultSource = "embedded:cements.json"

// SupportedSchema is the semver constraint a document's schema_version must satisfy.
const SupportedSchema = ">= 1.0.0, < 2.0.0"

//go:embed data/cements.json
var defaultCatalog []byte

// document is the wrapped catalog shape. A bare list of records is also accepted.
type document struct {
	SchemaVersion string           `json:"schema_version" yaml:"schema_version" toml:"schema_version"`
	Materials     []materialRecord `json:"materials"      yaml:"materials"      toml:"materials"`
}

// FormatFromPath infers the document format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Parse decodes one catalog document. Records that cannot be used are dropped and
// reported as issues; only document-level problems return an error.
func Parse(data []byte, format Format, source string) ([]Material, []Issue, error) {
	doc, err := decode(data, format)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s catalog %s: %w", format, source, err)
	}
	if err = checkSchemaVersion(doc.SchemaVersion); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", source, err)
	}

	conv := &recordConverter{source: source}
	materials := make([]Material, 0, len(doc.Materials))
	for i, rec := range doc.Materials {
		if m, ok := conv.convert(i, rec); ok {
			materials = append(materials, m)
		}
	}
	return materials, conv.issues, nil
}

func decode(data []byte, format Format) (document, error) {
	var doc document
	switch format {
	case FormatJSON:
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			err := json.Unmarshal(trimmed, &doc.Materials)
			return doc, err
		}
		err := json.Unmarshal(trimmed, &doc)
		return doc, err
	case FormatYAML:
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return doc, err
		}
		if node.Kind != yaml.DocumentNode || len(node.Content) == 0 {
			return doc, nil
		}
		root := node.Content[0]
		if root.Kind == yaml.SequenceNode {
			err := root.Decode(&doc.Materials)
			return doc, err
		}
		err := root.Decode(&doc)
		return doc, err
	case FormatTOML:
		_, err := toml.Decode(string(data), &doc)
		return doc, err
	default:
		return doc, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// checkSchemaVersion accepts an empty version as 1.0.0.
func checkSchemaVersion(v string) error {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	ver, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrSchemaVersion, v, err)
	}
	constraint, err := semver.NewConstraint(SupportedSchema)
	if err != nil {
		return err
	}
	if !constraint.Check(ver) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrSchemaVersion, ver, SupportedSchema)
	}
	return nil
}

// parsedSource is the result of reading one file.
type parsedSource struct {
	materials []Material
	issues    []Issue
}

// Load reads the given catalog files concurrently and merges them in argument
// order. With no paths it returns the embedded default catalog. A material ID
// seen in an earlier source wins over later duplicates.
func Load(ctx context.Context, paths ...string) (*Catalog, Report, error) {
	if len(paths) == 0 {
		return LoadDefault(ctx)
	}

	results := make([]parsedSource, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			format, err := FormatFromPath(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading catalog %s: %w", path, err)
			}
			materials, issues, err := Parse(data, format, path)
			if err != nil {
				return err
			}
			results[i] = parsedSource{materials: materials, issues: issues}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Report{Sources: paths}, err
	}

	return merge(ctx, paths, results)
}

// LoadDefault returns the catalog embedded in the binary.
func LoadDefault(ctx context.Context) (*Catalog, Report, error) {
	materials, issues, err := Parse(defaultCatalog, FormatJSON, DefaultSource)
	if err != nil {
		return nil, Report{Sources: []string{DefaultSource}}, err
	}
	return merge(ctx, []string{DefaultSource}, []parsedSource{{materials: materials, issues: issues}})
}

func merge(ctx context.Context, sources []string, results []parsedSource) (*Catalog, Report, error) {
	log := logging.FromContext(ctx)
	report := Report{Sources: sources}

	seen := make(map[string]string)
	var all []Material
	for i, res := range results {
		report.Issues = append(report.Issues, res.issues...)
		for _, m := range res.materials {
			if first, dup := seen[m.ID]; dup {
				report.Issues = append(report.Issues, Issue{
					Source:   sources[i],
					ID:       m.ID,
					Field:    "id",
					Severity: SeverityError,
					Message:  fmt.Sprintf("duplicate id already defined in %s, record dropped", first),
				})
				continue
			}
			seen[m.ID] = sources[i]
			all = append(all, m)
		}
	}

	for _, issue := range report.Issues {
		if issue.Severity == SeverityError {
			report.Dropped++
		}
		log.Warn().Ctx(ctx).
			Str("component", "catalog").
			Str("source", issue.Source).
			Str("material_id", issue.ID).
			Str("field", issue.Field).
			Str("severity", string(issue.Severity)).
			Msg(issue.Message)
	}

	report.Loaded = len(all)
	if len(all) == 0 {
		return nil, report, fmt.Errorf("%w (sources: %s)", ErrEmptyCatalog, strings.Join(sources, ", "))
	}

	log.Debug().Ctx(ctx).
		Str("component", "catalog").
		Str("operation", "load").
		Int("sources", len(sources)).
		Int("loaded", report.Loaded).
		Int("dropped", report.Dropped).
		Msg("catalog loaded")

	return New(all, sources...), report, nil
}
