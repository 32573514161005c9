package version

import (
	"fmt"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"
)

// Options control how a Registry's table is generated
type Options struct {
	// Year up to which yearly editions exist. If zero, Clock's current year is used.
	Year int

	// Clock supplies the year when Year is unset. Defaults to the real clock.
	Clock clockwork.Clock

	// Horizon is how many years past Year to also generate yearly editions for
	Horizon uint
}

// Option modifies Options
type Option func(*Options)

// WithYear sets the generation year
func WithYear(year int) Option { return func(o *Options) { o.Year = year } }

// WithClock sets the clock the generation year is read from when no year is given
func WithClock(clock clockwork.Clock) Option { return func(o *Options) { o.Clock = clock } }

// WithHorizon sets the number of years past the generation year to generate editions for
func WithHorizon(horizon uint) Option { return func(o *Options) { o.Horizon = horizon } }

type registryImpl struct {
	ordered      []Version
	byIdentifier map[Identifier]int
	byEdition    map[Edition]int
}

// New generates the table and returns a Registry over it
func New(opts ...Option) (Registry, error) {
	o := Options{Horizon: DefaultHorizon}
	for _, fn := range opts {
		fn(&o)
	}
	if o.Year == 0 {
		if o.Clock == nil {
			o.Clock = clockwork.NewRealClock()
		}
		o.Year = o.Clock.Now().UTC().Year()
	}
	return FromVersions(generate(o.Year + int(o.Horizon)))
}

// MustNew panics if the Registry cannot be built
func MustNew(opts ...Option) Registry {
	r, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// FromVersions builds a Registry over the given Versions, which must already be sorted by
// ratification date and have unique Identifiers and Editions.
func FromVersions(versions []Version) (Registry, error) {
	r := registryImpl{
		ordered:      make([]Version, len(versions)),
		byIdentifier: make(map[Identifier]int, len(versions)),
		byEdition:    make(map[Edition]int, len(versions)),
	}
	copy(r.ordered, versions)
	for i, v := range r.ordered {
		if i > 0 && v.Ratified.Before(r.ordered[i-1].Ratified) {
			return nil, InvalidTable{Reason: fmt.Sprintf("[%v] ratified before its predecessor [%v]", v.ID, r.ordered[i-1].ID)}
		}
		if _, exists := r.byIdentifier[v.ID]; exists {
			return nil, InvalidTable{Reason: fmt.Sprintf("duplicate identifier [%v]", v.ID)}
		}
		if _, exists := r.byEdition[v.Edition]; exists {
			return nil, InvalidTable{Reason: fmt.Sprintf("duplicate edition [%v]", v.Edition)}
		}
		r.byIdentifier[v.ID] = i
		r.byEdition[v.Edition] = i
	}
	return &r, nil
}

func generate(untilYear int) []Version {
	versions := make([]Version, 0, len(seeds))
	versions = append(versions, seeds...)
	for year := YearlyEditionsFrom; year <= untilYear; year++ {
		versions = append(versions, yearly(year))
	}
	return versions
}

func (r *registryImpl) All() []Version {
	all := make([]Version, len(r.ordered))
	copy(all, r.ordered)
	return all
}

func (r *registryImpl) ByIdentifier(id Identifier) (*Version, error) {
	if idx, ok := r.byIdentifier[id]; ok {
		v := r.ordered[idx]
		return &v, nil
	}
	return nil, UnknownIdentifier{ID: id}
}

func (r *registryImpl) ByEdition(edition Edition) (*Version, error) {
	if idx, ok := r.byEdition[edition]; ok {
		v := r.ordered[idx]
		return &v, nil
	}
	return nil, UnknownEdition{Edition: edition}
}

func (r *registryImpl) IdentifierByEdition(edition Edition) (Identifier, error) {
	v, err := r.ByEdition(edition)
	if err != nil {
		return "", err
	}
	return v.ID, nil
}

func (r *registryImpl) RatifiedBy(at time.Time) ([]Version, error) {
	// ordered is sorted, so everything ratified by `at` is a prefix
	n := sort.Search(len(r.ordered), func(i int) bool {
		return r.ordered[i].Ratified.After(at)
	})
	if n == 0 {
		return nil, NoneRatified{At: at}
	}
	results := make([]Version, n)
	copy(results, r.ordered[:n])
	return results, nil
}

func (r *registryImpl) IdentifiersRatifiedBy(at time.Time) ([]Identifier, error) {
	versions, err := r.RatifiedBy(at)
	if err != nil {
		return nil, err
	}
	return Identifiers(versions), nil
}

func (r *registryImpl) LatestRatifiedBy(at time.Time) (*Version, error) {
	versions, err := r.RatifiedBy(at)
	if err != nil {
		return nil, err
	}
	latest := versions[len(versions)-1]
	return &latest, nil
}

func (r *registryImpl) LatestIdentifierRatifiedBy(at time.Time) (Identifier, error) {
	v, err := r.LatestRatifiedBy(at)
	if err != nil {
		return "", err
	}
	return v.ID, nil
}

func (r *registryImpl) CompareIdentifiers(a Identifier, b Identifier) (int, error) {
	va, err := r.ByIdentifier(a)
	if err != nil {
		return 0, err
	}
	vb, err := r.ByIdentifier(b)
	if err != nil {
		return 0, err
	}
	return compareRatified(*va, *vb), nil
}

func (r *registryImpl) SortIdentifiers(ids []Identifier) ([]Identifier, error) {
	versions := make([]Version, 0, len(ids))
	for _, id := range ids {
		v, err := r.ByIdentifier(id)
		if err != nil {
			return nil, err
		}
		versions = append(versions, *v)
	}
	return Identifiers(SortByRatified(versions)), nil
}

// SortByRatified returns a copy of the given Versions, stably sorted by ratification date,
// oldest first.
func SortByRatified(versions []Version) []Version {
	sorted := make([]Version, len(versions))
	copy(sorted, versions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compareRatified(sorted[i], sorted[j]) < 0
	})
	return sorted
}

func compareRatified(a Version, b Version) int {
	switch {
	case a.Ratified.Before(b.Ratified):
		return -1
	case a.Ratified.After(b.Ratified):
		return 1
	default:
		return 0
	}
}
