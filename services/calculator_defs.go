package services

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed calculators.yaml
var builtinCalculators embed.FS

// UnitPlacement controls where a field's unit label is drawn.
type UnitPlacement string

const (
	UnitSuffix UnitPlacement = "suffix"
	UnitPrefix UnitPlacement = "prefix"
)

// InputDef describes one numeric input of a calculator.
type InputDef struct {
	Key              string        `yaml:"key"`
	Label            string        `yaml:"label"`
	Unit             string        `yaml:"unit"`
	Placement        UnitPlacement `yaml:"placement"`
	ConversionFactor float64       `yaml:"factor"`
	Placeholder      string        `yaml:"placeholder"`
}

// DefaultDecimals applies to outputs that declare no format.
const DefaultDecimals = 3

// MaxDecimals bounds the precision any output is rendered with.
const MaxDecimals = 6

// FormatPolicy is the per-output display rule: fixed decimals by default, or
// a floored integer count.
type FormatPolicy struct {
	Decimals int  `yaml:"decimals" json:"decimals"`
	Floor    bool `yaml:"floor" json:"floor,omitempty"`
}

// UnmarshalYAML keeps an explicit "decimals: 0" and defaults a missing
// decimals key for non-floored outputs.
func (p *FormatPolicy) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Decimals *int `yaml:"decimals"`
		Floor    bool `yaml:"floor"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	*p = FormatPolicy{Floor: raw.Floor}
	switch {
	case raw.Decimals != nil:
		p.Decimals = *raw.Decimals
	case !raw.Floor:
		p.Decimals = DefaultDecimals
	}
	return nil
}

// clampDecimals limits n to [0, MaxDecimals].
func clampDecimals(n int) int {
	return min(max(n, 0), MaxDecimals)
}

// OutputDef describes one computed quantity.
type OutputDef struct {
	Key         string       `yaml:"key"`
	Label       string       `yaml:"label"`
	FormulaText string       `yaml:"formula"`
	Unit        string       `yaml:"unit"`
	Format      FormatPolicy `yaml:"format"`
	// Hidden outputs feed later formulas and charts but are not listed.
	Hidden bool `yaml:"hidden"`
}

// UnmarshalYAML gives outputs without a format block the default policy.
func (o *OutputDef) UnmarshalYAML(value *yaml.Node) error {
	type plain OutputDef
	raw := plain{Format: FormatPolicy{Decimals: DefaultDecimals}}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*o = OutputDef(raw)
	return nil
}

// ChartDef names the outputs whose relative share is drawn as a donut.
type ChartDef struct {
	Title    string   `yaml:"title"`
	Segments []string `yaml:"segments"`
}

// CalculatorDef is one configured calculator page. Formula names the
// registered formula it evaluates and defaults to ID, so several pages can
// share one formula.
type CalculatorDef struct {
	ID          string      `yaml:"id"`
	Formula     string      `yaml:"formula"`
	Title       string      `yaml:"title"`
	Category    string      `yaml:"category"`
	Description string      `yaml:"description"`
	Inputs      []InputDef  `yaml:"inputs"`
	Outputs     []OutputDef `yaml:"outputs"`
	Chart       *ChartDef   `yaml:"chart"`
}

// Input returns the input definition for key.
func (d *CalculatorDef) Input(key string) (InputDef, bool) {
	for _, in := range d.Inputs {
		if in.Key == key {
			return in, true
		}
	}
	return InputDef{}, false
}

// Output returns the output definition for key.
func (d *CalculatorDef) Output(key string) (OutputDef, bool) {
	for _, out := range d.Outputs {
		if out.Key == key {
			return out, true
		}
	}
	return OutputDef{}, false
}

// Catalog holds calculator definitions keyed by id.
type Catalog struct {
	defs  map[string]*CalculatorDef
	order []string
}

// Get returns the calculator registered under id.
func (c *Catalog) Get(id string) (*CalculatorDef, bool) {
	if c == nil {
		return nil, false
	}
	def, ok := c.defs[id]
	return def, ok
}

// All returns every calculator in load order.
func (c *Catalog) All() []*CalculatorDef {
	if c == nil {
		return nil
	}
	out := make([]*CalculatorDef, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.defs[id])
	}
	return out
}

// CalculatorGroup is a category with its calculators, for the index page.
type CalculatorGroup struct {
	Category    string
	Calculators []*CalculatorDef
}

// Grouped returns calculators grouped by category, categories sorted by name.
func (c *Catalog) Grouped() []CalculatorGroup {
	byCategory := make(map[string][]*CalculatorDef)
	for _, def := range c.All() {
		byCategory[def.Category] = append(byCategory[def.Category], def)
	}
	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	groups := make([]CalculatorGroup, 0, len(categories))
	for _, cat := range categories {
		groups = append(groups, CalculatorGroup{Category: cat, Calculators: byCategory[cat]})
	}
	return groups
}

type catalogFile struct {
	Calculators []*CalculatorDef `yaml:"calculators"`
}

// LoadCalculatorDefs walks fsys and parses every YAML file into a catalog.
// Every calculator must have a registered formula.
func LoadCalculatorDefs(fsys fs.FS) (*Catalog, error) {
	catalog := &Catalog{defs: make(map[string]*CalculatorDef)}
	if fsys == nil {
		return catalog, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isYAMLFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("calculators: read %s: %w", path, err)
		}
		return catalog.addFile(data, path)
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

// Merge adds the calculators of other to c. A duplicate id is an error.
func (c *Catalog) Merge(other *Catalog) error {
	for _, def := range other.All() {
		if _, exists := c.defs[def.ID]; exists {
			return fmt.Errorf("calculators: duplicate calculator %q", def.ID)
		}
		c.defs[def.ID] = def
		c.order = append(c.order, def.ID)
	}
	return nil
}

func (c *Catalog) addFile(data []byte, source string) error {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("calculators: parse %s: %w", source, err)
	}

	for _, def := range file.Calculators {
		if err := normaliseCalculator(def, source); err != nil {
			return err
		}
		if _, exists := c.defs[def.ID]; exists {
			return fmt.Errorf("calculators: duplicate calculator %q (file %s)", def.ID, source)
		}
		c.defs[def.ID] = def
		c.order = append(c.order, def.ID)
	}
	return nil
}

func normaliseCalculator(def *CalculatorDef, source string) error {
	def.ID = strings.TrimSpace(def.ID)
	if def.ID == "" {
		return fmt.Errorf("calculators: file %s defines a calculator without id", source)
	}
	def.Formula = strings.TrimSpace(def.Formula)
	if def.Formula == "" {
		def.Formula = def.ID
	}
	if _, ok := Formulas[def.Formula]; !ok {
		return fmt.Errorf("calculators: no formula registered for %q (file %s)", def.Formula, source)
	}
	if def.Title == "" {
		def.Title = def.ID
	}

	seen := make(map[string]bool)
	for i := range def.Inputs {
		in := &def.Inputs[i]
		if in.Key == "" {
			return fmt.Errorf("calculators: %s input %d has no key", def.ID, i)
		}
		if seen[in.Key] {
			return fmt.Errorf("calculators: %s declares input %q twice", def.ID, in.Key)
		}
		seen[in.Key] = true
		if in.ConversionFactor == 0 {
			in.ConversionFactor = 1
		}
		if in.Placement == "" {
			in.Placement = UnitSuffix
		}
	}

	outSeen := make(map[string]bool)
	for i := range def.Outputs {
		out := &def.Outputs[i]
		if out.Key == "" {
			return fmt.Errorf("calculators: %s output %d has no key", def.ID, i)
		}
		if outSeen[out.Key] {
			return fmt.Errorf("calculators: %s declares output %q twice", def.ID, out.Key)
		}
		outSeen[out.Key] = true
		if out.Format.Decimals < 0 || out.Format.Decimals > MaxDecimals {
			return fmt.Errorf("calculators: %s output %q decimals %d outside 0..%d",
				def.ID, out.Key, out.Format.Decimals, MaxDecimals)
		}
	}

	if def.Chart != nil {
		for _, seg := range def.Chart.Segments {
			if !outSeen[seg] {
				return fmt.Errorf("calculators: %s chart segment %q is not an output", def.ID, seg)
			}
		}
	}
	return nil
}

func isYAMLFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *Catalog
	defaultCatalogErr  error
)

// DefaultCatalog returns the calculators embedded in the binary.
func DefaultCatalog() (*Catalog, error) {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = LoadCalculatorDefs(builtinCalculators)
	})
	return defaultCatalog, defaultCatalogErr
}
