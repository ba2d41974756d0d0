// Package fixture loads airport seed data written in CUE and replays it
// through the engine as save events.
//
// A seed file has up to three top-level lists:
//
//	continents: [{continent_id: 1, continent_code: "AS", name: "Asia"}]
//	countries: [{country_code: "JP", name: "Japan", continent_id: 1}]
//	regions: []
//
// Records use the column names of the airport tables. Ids in a seed file
// are labels: Apply maps each label to the key the database actually
// assigns, and rewrites later references to it.
package fixture

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/airdb/internal/event"
	"github.com/roach88/airdb/internal/model"
)

//go:embed schema.cue
var schemaCUE string

// topLevel lists the fields a seed file may define.
var topLevel = []string{"continents", "countries", "regions"}

// Fixture is a decoded seed file.
type Fixture struct {
	Path       string
	Continents []model.Continent
	Countries  []model.Country
	Regions    []model.Region
}

// LoadError describes a seed file that could not be loaded.
type LoadError struct {
	Path    string
	Pos     token.Pos // CUE position if available
	Message string
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Load reads, validates and decodes the seed file at path.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: err.Error()}
	}
	return Parse(path, data)
}

// Parse validates and decodes seed data. path is used in error positions.
func Parse(path string, data []byte) (*Fixture, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile seed schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, cueLoadError(path, err)
	}

	if err := checkTopLevel(path, value); err != nil {
		return nil, err
	}

	value = schema.Unify(value)
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, cueLoadError(path, err)
	}

	f := &Fixture{Path: path}
	if err := decodeList(path, value, "continents", &f.Continents); err != nil {
		return nil, err
	}
	if err := decodeList(path, value, "countries", &f.Countries); err != nil {
		return nil, err
	}
	if err := decodeList(path, value, "regions", &f.Regions); err != nil {
		return nil, err
	}

	if err := f.checkLabels(); err != nil {
		return nil, err
	}
	return f, nil
}

// checkTopLevel rejects fields the schema does not know about.
func checkTopLevel(path string, v cue.Value) error {
	iter, err := v.Fields()
	if err != nil {
		return cueLoadError(path, err)
	}
	for iter.Next() {
		label := iter.Selector().String()
		if !slices.Contains(topLevel, label) {
			return &LoadError{
				Path:    path,
				Pos:     iter.Value().Pos(),
				Message: fmt.Sprintf("unknown field %q (want one of %v)", label, topLevel),
			}
		}
	}
	return nil
}

// decodeList decodes the list at field into out. A missing list is empty.
func decodeList[T any](path string, v cue.Value, field string, out *[]T) error {
	list := v.LookupPath(cue.ParsePath(field))
	if !list.Exists() {
		return nil
	}

	iter, err := list.List()
	if err != nil {
		return cueLoadError(path, err)
	}
	for iter.Next() {
		var rec T
		if err := iter.Value().Decode(&rec); err != nil {
			return &LoadError{Path: path, Pos: iter.Value().Pos(), Message: err.Error()}
		}
		*out = append(*out, rec)
	}
	return nil
}

// checkLabels rejects a seed file that reuses an id label within a list.
func (f *Fixture) checkLabels() error {
	if id, dup := firstDuplicate(f.Continents, func(c model.Continent) int64 { return c.ContinentID }); dup {
		return &LoadError{Path: f.Path, Message: fmt.Sprintf("continent_id %d used twice", id)}
	}
	if id, dup := firstDuplicate(f.Countries, func(c model.Country) int64 { return c.CountryID }); dup {
		return &LoadError{Path: f.Path, Message: fmt.Sprintf("country_id %d used twice", id)}
	}
	if id, dup := firstDuplicate(f.Regions, func(r model.Region) int64 { return r.RegionID }); dup {
		return &LoadError{Path: f.Path, Message: fmt.Sprintf("region_id %d used twice", id)}
	}
	return nil
}

func firstDuplicate[T any](records []T, key func(T) int64) (int64, bool) {
	seen := make(map[int64]bool, len(records))
	for _, r := range records {
		id := key(r)
		if id == 0 {
			continue
		}
		if seen[id] {
			return id, true
		}
		seen[id] = true
	}
	return 0, false
}

// cueLoadError converts a CUE error, preferring a position in the seed file
// over one in the embedded schema.
func cueLoadError(path string, err error) *LoadError {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Path: path, Message: err.Error()}
	}

	first := errs[0]
	pos := first.Position()
	for _, p := range first.InputPositions() {
		if p.Filename() == path {
			pos = p
			break
		}
	}

	format, args := first.Msg()
	msg := fmt.Sprintf(format, args...)
	if sel := first.Path(); len(sel) > 0 {
		msg = fmt.Sprintf("%s: %s", strings.Join(sel, "."), msg)
	}
	return &LoadError{Path: path, Pos: pos, Message: msg}
}

// Events returns the save events for every record, in dependency order.
// Records are sent as written, so the result is only meaningful against a
// database whose keys match the seed file's labels. Use Apply otherwise.
func (f *Fixture) Events() []event.Inbound {
	out := make([]event.Inbound, 0, len(f.Continents)+len(f.Countries)+len(f.Regions))
	for _, c := range f.Continents {
		out = append(out, event.SaveNewContinent{Continent: c})
	}
	for _, c := range f.Countries {
		out = append(out, event.SaveNewCountry{Country: c})
	}
	for _, r := range f.Regions {
		out = append(out, event.SaveNewRegion{Region: r})
	}
	return out
}

// Len returns the number of records in the fixture.
func (f *Fixture) Len() int {
	return len(f.Continents) + len(f.Countries) + len(f.Regions)
}
