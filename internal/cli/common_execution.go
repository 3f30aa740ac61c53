package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/binderlca/internal/catalog"
	"github.com/rshade/binderlca/internal/config"
	"github.com/rshade/binderlca/internal/engine"
)

// catalogPaths returns the --catalog files, or the configured ones when the
// flag was not given. Empty means the embedded catalog.
func catalogPaths(cmd *cobra.Command) []string {
	paths, _ := cmd.Flags().GetStringArray("catalog")
	if len(paths) > 0 {
		return paths
	}
	return config.GetCatalogPaths()
}

// loadCatalog reads the catalog files named by catalogPaths and logs every
// record-level issue as a warning.
func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, catalog.Report, error) {
	ctx := cmd.Context()
	start := time.Now()
	paths := catalogPaths(cmd)

	cat, report, err := catalog.Load(ctx, paths...)
	if err != nil {
		logger.Error().Ctx(ctx).
			Str("operation", "load_catalog").
			Strs("sources", report.Sources).
			Err(err).
			Msg("catalog load failed")
		return nil, report, fmt.Errorf("loading catalog: %w", err)
	}

	for _, issue := range report.Issues {
		logger.Warn().Ctx(ctx).
			Str("operation", "load_catalog").
			Str("source", issue.Source).
			Str("material_id", issue.ID).
			Str("field", issue.Field).
			Str("severity", string(issue.Severity)).
			Msg(issue.Message)
	}
	logger.Debug().Ctx(ctx).
		Str("operation", "load_catalog").
		Strs("sources", report.Sources).
		Int("loaded", report.Loaded).
		Int("dropped", report.Dropped).
		Dur("duration_ms", time.Since(start)).
		Msg("catalog loaded")

	return cat, report, nil
}

// loadSession loads the catalog and selects its baseline.
func loadSession(cmd *cobra.Command) (*engine.Session, error) {
	cat, _, err := loadCatalog(cmd)
	if err != nil {
		return nil, err
	}
	session := engine.NewSession(cat)
	if _, ok := session.Baseline(); !ok {
		logger.Warn().Ctx(cmd.Context()).
			Str("operation", "select_baseline").
			Msg("catalog has no ordinary Portland cement; reductions are reported as 0")
	}
	return session, nil
}

// designFlags holds the design-input flags shared by the computing commands.
type designFlags struct {
	volume     float64
	distance   float64
	a4         bool
	exposure   string
	dosageMode string
	dosage     float64
	strength   string
	overrides  []string
}

func addDesignFlags(cmd *cobra.Command, f *designFlags) {
	def := engine.DefaultInputs()
	cmd.Flags().Float64Var(&f.volume, "volume", def.VolumeM3, "element volume in m3")
	cmd.Flags().Float64Var(&f.distance, "distance", def.DistanceKm, "haul distance in km")
	cmd.Flags().BoolVar(&f.a4, "a4", def.IncludeA4, "include A4 transport emissions")
	cmd.Flags().StringVar(&f.exposure, "exposure", def.ExposureClass, "exposure class of the element, e.g. XC2")
	cmd.Flags().StringVar(&f.dosageMode, "dosage-mode", string(def.Policy),
		"dosage policy: global or perCement")
	cmd.Flags().Float64Var(&f.dosage, "dosage", def.GlobalDosage, "global binder dosage in kg/m3")
	cmd.Flags().StringVar(&f.strength, "strength", def.ConcreteStrength,
		"concrete strength class used when no dosage applies ("+strings.Join(engine.StrengthClasses(), ", ")+")")
	cmd.Flags().StringArrayVar(&f.overrides, "override", nil,
		"per-cement dosage override 'id=kg' (repeatable, used with --dosage-mode perCement)")
}

// inputs overlays the flags the user set on the configured design defaults.
func (f *designFlags) inputs(cmd *cobra.Command) (engine.DesignInputs, error) {
	in := config.GetDesignDefaults().Inputs()
	flags := cmd.Flags()

	if flags.Changed("volume") {
		if f.volume < 0 {
			return in, fmt.Errorf("--volume must be >= 0, got %g", f.volume)
		}
		in.VolumeM3 = f.volume
	}
	if flags.Changed("distance") {
		if f.distance < 0 {
			return in, fmt.Errorf("--distance must be >= 0, got %g", f.distance)
		}
		in.DistanceKm = f.distance
	}
	if flags.Changed("a4") {
		in.IncludeA4 = f.a4
	}
	if flags.Changed("exposure") {
		in.ExposureClass = f.exposure
	}
	if flags.Changed("dosage-mode") {
		policy, err := engine.ParsePolicy(f.dosageMode)
		if err != nil {
			return in, err
		}
		in.Policy = policy
	}
	if flags.Changed("dosage") {
		if f.dosage < 0 {
			return in, fmt.Errorf("--dosage must be >= 0, got %g", f.dosage)
		}
		in.GlobalDosage = f.dosage
	}
	if flags.Changed("strength") {
		if _, ok := engine.StrengthDosage(f.strength); !ok {
			return in, fmt.Errorf("unknown concrete strength %q (want one of %s)",
				f.strength, strings.Join(engine.StrengthClasses(), ", "))
		}
		in.ConcreteStrength = f.strength
	}
	for _, o := range f.overrides {
		id, kg, err := engine.ParseOverride(o)
		if err != nil {
			return in, err
		}
		in = in.WithOverride(id, kg)
	}
	return in.Normalized(), nil
}

// queryFlags holds the row selection flags.
type queryFlags struct {
	scope  string
	search string
}

func addQueryFlags(cmd *cobra.Command, f *queryFlags) {
	cmd.Flags().StringVar(&f.scope, "scope", string(engine.ScopeAll),
		"rows to show: all, compatible or common")
	cmd.Flags().StringVar(&f.search, "search", "", "case-insensitive text filter over name, strength, notes and tags")
}

// query builds the engine query for the scope and search flags.
func (f *queryFlags) query() (engine.Query, error) {
	q := engine.DefaultQuery()
	scope, err := engine.ParseScope(f.scope)
	if err != nil {
		return q, err
	}
	q.Scope = scope
	q.Search = strings.TrimSpace(f.search)
	return q, nil
}

// outputFormat resolves --output against the configured default. An explicit
// value outside allowed is an error; an unsupported configured default falls
// back to the first allowed format.
func outputFormat(cmd *cobra.Command, flagValue string, allowed ...string) (string, error) {
	if cmd.Flags().Changed("output") {
		format := strings.ToLower(strings.TrimSpace(flagValue))
		if !slices.Contains(allowed, format) {
			return "", fmt.Errorf("unsupported output format %q (want %s)", flagValue, strings.Join(allowed, ", "))
		}
		return format, nil
	}
	if def := config.GetDefaultOutputFormat(); slices.Contains(allowed, def) {
		return def, nil
	}
	return allowed[0], nil
}

func addOutputFlag(cmd *cobra.Command, p *string, allowed ...string) {
	cmd.Flags().StringVarP(p, "output", "o", "",
		"output format: "+strings.Join(allowed, ", ")+" (default from output.default_format)")
}

// useColor reports whether table output may carry ANSI colours.
func useColor(cmd *cobra.Command) bool {
	switch config.GetGlobalConfig().Output.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && isTerminal(f)
}

// checkIDs returns an error naming every id the catalog does not hold.
func checkIDs(cat *catalog.Catalog, ids []string) error {
	var unknown []string
	for _, id := range ids {
		if _, ok := cat.Get(id); !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%w: %s", errUnknownMaterial, strings.Join(unknown, ", "))
	}
	return nil
}
