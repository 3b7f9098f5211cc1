// Package location implements the interactive map/search picker shared by the
// property form and the tenant search flow. It owns the map center, the
// selected coordinate, pending search results, and the reconciliation of the
// three address sources: map clicks, search-result selection, and externally
// supplied addresses.
package location

import (
	"context"
	"strings"
	"sync"

	"jacs_portal_backend/internal/address"
	"jacs_portal_backend/internal/geocode"
)

// State is the picker's lifecycle state for the user-chosen pin.
type State int

const (
	// StateIdle means no coordinate has been selected.
	StateIdle State = iota
	// StateResolving means a geocode request is in flight.
	StateResolving
	// StateResolved means a coordinate is selected, with whatever address
	// could be resolved for it.
	StateResolved
)

// Field identifies one structured address field for manual edits.
type Field string

const (
	FieldStreet     Field = "street"
	FieldBarangay   Field = "barangay"
	FieldCity       Field = "city"
	FieldProvince   Field = "province"
	FieldPostalCode Field = "postalCode"
)

// Selection is the picker's externally visible state. IsResolving true means a
// request is in flight and Resolved reflects the last completed resolution,
// never a pending one.
type Selection struct {
	Coordinate   *geocode.Coordinate
	Resolved     *address.Structured
	DisplayLabel string
	IsResolving  bool
}

// OnChange receives the selection each time it settles (resolution completes,
// result selected, field edited, or cleared). It is never called for
// in-flight intermediate states.
type OnChange func(Selection)

// Geocoder is the provider surface the picker needs.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, coord geocode.Coordinate) *geocode.Result
	ForwardGeocode(ctx context.Context, query string, opts Options) []geocode.Result
}

// Options aliases the geocode search options so fakes need only this package.
type Options = geocode.Options

// Picker is the location picker state machine. All methods are safe for
// concurrent use; overlapping resolutions are serialized by a sequence token
// so only the latest issued request may apply its result.
type Picker struct {
	mu       sync.Mutex
	geocoder Geocoder
	defaults address.Defaults
	onChange OnChange

	state     State
	selection Selection
	center    geocode.Coordinate
	hasCenter bool

	query    string
	results  []geocode.Result
	notFound bool

	// seq is the token of the latest issued resolution; completions holding
	// an older token are discarded.
	seq uint64
	// resolutions counts completed resolutions, to distinguish manual edits
	// made before any geocode response (providers may overwrite those) from
	// corrections made after one (protected).
	editGen     map[Field]uint64
	resolutions uint64
}

// NewPicker creates an idle picker.
func NewPicker(g Geocoder, defaults address.Defaults, onChange OnChange) *Picker {
	return &Picker{
		geocoder: g,
		defaults: defaults,
		onChange: onChange,
		editGen:  make(map[Field]uint64),
	}
}

// OpenAt sets the initial map center without selecting a pin. The property
// form opens the picker on the configured city center because the map widget
// needs a non-null center to render; the selection itself stays empty.
func (p *Picker) OpenAt(center geocode.Coordinate) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.center = center
	p.hasCenter = true
}

// State returns the picker state.
func (p *Picker) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Selection returns a copy of the current selection.
func (p *Picker) Selection() Selection {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// Center returns the current map center and whether one is set. The center is
// the clicked or selected coordinate when a pin exists, else the OpenAt value.
func (p *Picker) Center() (geocode.Coordinate, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.center, p.hasCenter
}

// Results returns the pending forward-geocode result list, if any.
func (p *Picker) Results() []geocode.Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]geocode.Result, len(p.results))
	copy(out, p.results)
	return out
}

// ResultsShown reports whether an unactioned result list overlays the picker.
func (p *Picker) ResultsShown() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.results) > 0
}

// NotFound reports whether the last search completed with zero results.
func (p *Picker) NotFound() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.notFound
}

// Query returns the pending search query text.
func (p *Picker) Query() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.query
}

// ClickMap selects the clicked coordinate and reverse geocodes it. The click
// always wins immediately: the pin moves before the address resolves, and it
// is retained even when no address can be resolved. Address fields are merged
// per key; fields the provider did not return keep their previous values.
func (p *Picker) ClickMap(ctx context.Context, coord geocode.Coordinate) {
	p.mu.Lock()
	p.seq++
	token := p.seq
	c := coord
	p.selection.Coordinate = &c
	p.selection.IsResolving = true
	p.state = StateResolving
	p.center = coord
	p.hasCenter = true
	p.mu.Unlock()

	result := p.geocoder.ReverseGeocode(ctx, coord)

	p.mu.Lock()
	if token != p.seq {
		// A newer click, selection, or clear superseded this resolution.
		p.mu.Unlock()
		return
	}

	p.resolutions++
	if result != nil {
		merged := p.mergeLocked(result.Address)
		p.selection.Resolved = &merged
		p.selection.DisplayLabel = result.DisplayName
		if p.selection.DisplayLabel == "" {
			p.selection.DisplayLabel = address.FormatString(merged)
		}
	}
	p.selection.IsResolving = false
	p.state = StateResolved
	snapshot := p.snapshotLocked()
	p.mu.Unlock()

	p.notify(snapshot)
}

// Search forward geocodes the query and overlays the result list. A blank
// query is a no-op. The previously selected coordinate and address are left
// untouched while the search is in flight.
func (p *Picker) Search(ctx context.Context, query string) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return
	}

	p.mu.Lock()
	p.seq++
	token := p.seq
	p.query = trimmed
	p.selection.IsResolving = true
	p.mu.Unlock()

	results := p.geocoder.ForwardGeocode(ctx, trimmed, Options{})

	p.mu.Lock()
	if token != p.seq {
		p.mu.Unlock()
		return
	}
	p.results = results
	p.notFound = len(results) == 0
	p.selection.IsResolving = false
	p.mu.Unlock()
}

// SelectResult applies one item from the result list: coordinate and address
// are set atomically from that single item, the list and query are cleared,
// and no reverse geocode round-trip is issued. This is the only path that
// wholesale-replaces the address rather than merging per field.
func (p *Picker) SelectResult(index int) bool {
	p.mu.Lock()
	if index < 0 || index >= len(p.results) {
		p.mu.Unlock()
		return false
	}

	result := p.results[index]
	p.seq++

	coord := result.Coordinate
	resolved := address.Parse(result.Address, p.defaults)
	p.selection.Coordinate = &coord
	p.selection.Resolved = &resolved
	p.selection.DisplayLabel = result.DisplayName
	if p.selection.DisplayLabel == "" {
		p.selection.DisplayLabel = address.FormatString(resolved)
	}
	p.selection.IsResolving = false
	p.state = StateResolved
	p.center = coord
	p.hasCenter = true
	p.results = nil
	p.query = ""
	p.notFound = false
	p.resolutions++
	snapshot := p.snapshotLocked()
	p.mu.Unlock()

	p.notify(snapshot)
	return true
}

// SetField records a manual edit to one address field. Edits made after a
// completed resolution are never overwritten by later provider responses;
// edits made before the first resolution may be.
func (p *Picker) SetField(field Field, value string) {
	p.mu.Lock()
	if p.selection.Resolved == nil {
		s := address.Parse(nil, p.defaults)
		p.selection.Resolved = &s
	}

	switch field {
	case FieldStreet:
		p.selection.Resolved.Street = value
	case FieldBarangay:
		p.selection.Resolved.Barangay = value
	case FieldCity:
		p.selection.Resolved.City = value
	case FieldProvince:
		p.selection.Resolved.Province = value
	case FieldPostalCode:
		p.selection.Resolved.PostalCode = value
	default:
		p.mu.Unlock()
		return
	}

	p.editGen[field] = p.resolutions
	p.selection.DisplayLabel = address.FormatString(*p.selection.Resolved)
	snapshot := p.snapshotLocked()
	p.mu.Unlock()

	p.notify(snapshot)
}

// ApplyExternal seeds the picker with the structured address already parsed
// for the property being edited. Provider responses may still fill or replace
// these fields; manual edits take precedence as usual.
func (p *Picker) ApplyExternal(s address.Structured) {
	p.mu.Lock()
	resolved := address.Parse(s, p.defaults)
	p.selection.Resolved = &resolved
	p.selection.DisplayLabel = address.FormatString(resolved)
	p.mu.Unlock()
}

// Clear resets the picker to idle. In-flight requests are not cancelled, but
// their completions are discarded by the sequence token.
func (p *Picker) Clear() {
	p.mu.Lock()
	p.seq++
	p.selection = Selection{}
	p.state = StateIdle
	p.results = nil
	p.query = ""
	p.notFound = false
	p.editGen = make(map[Field]uint64)
	p.resolutions = 0
	snapshot := p.snapshotLocked()
	p.mu.Unlock()

	p.notify(snapshot)
}

// mergeLocked folds a provider breakdown into the current address. Only
// fields the provider returned are applied, and a field the user corrected
// after a previous resolution keeps the correction.
func (p *Picker) mergeLocked(breakdown address.ProviderBreakdown) address.Structured {
	merged := address.Parse(nil, p.defaults)
	if p.selection.Resolved != nil {
		merged = *p.selection.Resolved
	}

	apply := func(field Field, value string, dst *string) {
		if value == "" {
			return
		}
		if gen, edited := p.editGen[field]; edited && gen > 0 {
			return
		}
		*dst = value
	}

	apply(FieldStreet, breakdown.Street, &merged.Street)
	apply(FieldBarangay, breakdown.Barangay, &merged.Barangay)
	apply(FieldCity, breakdown.City, &merged.City)
	apply(FieldProvince, breakdown.Province, &merged.Province)
	apply(FieldPostalCode, breakdown.PostalCode, &merged.PostalCode)

	return merged
}

func (p *Picker) snapshotLocked() Selection {
	snapshot := p.selection
	if p.selection.Coordinate != nil {
		c := *p.selection.Coordinate
		snapshot.Coordinate = &c
	}
	if p.selection.Resolved != nil {
		r := *p.selection.Resolved
		snapshot.Resolved = &r
	}
	return snapshot
}

func (p *Picker) notify(snapshot Selection) {
	if p.onChange != nil {
		p.onChange(snapshot)
	}
}
