package version

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

var registry2021 = MustNew(WithYear(2021))

func TestNew_Table(t *testing.T) {
	all := registry2021.All()
	assert.EqualValues(t,
		[]Identifier{"ES1", "ES2", "ES3", "ES5", "ES2015", "ES2016", "ES2017", "ES2018", "ES2019", "ES2020", "ES2021"},
		Identifiers(all),
	)
	es2015, err := registry2021.ByIdentifier("ES2015")
	assert.NoError(t, err)
	assert.EqualValues(t, 6, es2015.Edition)
	assert.Equal(t, date(2015, time.June, 1), es2015.Ratified)

	es3, err := registry2021.ByIdentifier("ES3")
	assert.NoError(t, err)
	assert.Equal(t, date(1999, time.December, 1), es3.Ratified)

	_, err = registry2021.ByEdition(4)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestNew_Horizon(t *testing.T) {
	r, err := New(WithYear(2021), WithHorizon(2))
	assert.NoError(t, err)
	latest := r.All()[len(r.All())-1]
	assert.EqualValues(t, "ES2023", latest.ID)
	assert.EqualValues(t, 14, latest.Edition)

	// future editions are known, but not ratified yet
	id, err := r.LatestIdentifierRatifiedBy(date(2021, time.December, 31))
	assert.NoError(t, err)
	assert.EqualValues(t, "ES2021", id)
}

func TestNew_DefaultsToCurrentYear(t *testing.T) {
	r, err := New()
	assert.NoError(t, err)
	all := r.All()
	assert.EqualValues(t, time.Now().UTC().Year(), all[len(all)-1].Ratified.Year())
}

func TestNew_YearFromClock(t *testing.T) {
	tests := []struct {
		name   string
		opts   []Option
		newest Identifier
	}{
		{
			"year read from the clock",
			[]Option{WithClock(clockwork.NewFakeClockAt(date(2018, time.March, 3)))},
			"ES2018",
		},
		{
			"clock and horizon",
			[]Option{WithClock(clockwork.NewFakeClockAt(date(2018, time.March, 3))), WithHorizon(1)},
			"ES2019",
		},
		{
			"explicit year wins over the clock",
			[]Option{WithClock(clockwork.NewFakeClockAt(date(2018, time.March, 3))), WithYear(2021)},
			"ES2021",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.opts...)
			assert.NoError(t, err)
			all := r.All()
			assert.Equal(t, tt.newest, all[len(all)-1].ID)
		})
	}
}

func TestNew_BeforeYearlyEditions(t *testing.T) {
	r, err := New(WithYear(2010))
	assert.NoError(t, err)
	assert.EqualValues(t, []Identifier{"ES1", "ES2", "ES3", "ES5"}, Identifiers(r.All()))
}

func TestFromVersions_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		versions []Version
	}{
		{
			"out of order",
			[]Version{
				{ID: "ES2", Ratified: date(1998, time.June, 1), Edition: 2},
				{ID: "ES1", Ratified: date(1997, time.June, 1), Edition: 1},
			},
		},
		{
			"duplicate identifier",
			[]Version{
				{ID: "ES1", Ratified: date(1997, time.June, 1), Edition: 1},
				{ID: "ES1", Ratified: date(1998, time.June, 1), Edition: 2},
			},
		},
		{
			"duplicate edition",
			[]Version{
				{ID: "ES1", Ratified: date(1997, time.June, 1), Edition: 1},
				{ID: "ES2", Ratified: date(1998, time.June, 1), Edition: 1},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromVersions(tt.versions)
			assert.IsType(t, InvalidTable{}, err)
		})
	}
}

func TestRegistry_ByEdition(t *testing.T) {
	for _, v := range registry2021.All() {
		got, err := registry2021.ByEdition(v.Edition)
		assert.NoError(t, err)
		assert.Equal(t, v.Edition, got.Edition)
	}
	es5, err := registry2021.ByEdition(5)
	assert.NoError(t, err)
	assert.EqualValues(t, "ES5", es5.ID)

	id, err := registry2021.IdentifierByEdition(11)
	assert.NoError(t, err)
	assert.EqualValues(t, "ES2020", id)

	_, err = registry2021.ByEdition(99)
	assert.Equal(t, UnknownEdition{Edition: 99}, err)
}

func TestRegistry_ByIdentifier(t *testing.T) {
	for _, v := range registry2021.All() {
		got, err := registry2021.ByIdentifier(v.ID)
		assert.NoError(t, err)
		assert.Equal(t, v.ID, got.ID)
	}
	es5, err := registry2021.ByIdentifier("ES5")
	assert.NoError(t, err)
	assert.EqualValues(t, 5, es5.Edition)

	_, err = registry2021.ByIdentifier("ES4")
	assert.Equal(t, UnknownIdentifier{ID: "ES4"}, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRegistry_RatifiedBy(t *testing.T) {
	tests := []struct {
		name    string
		at      time.Time
		want    []Identifier
		wantErr bool
	}{
		{
			"before ES1",
			date(1997, time.May, 31),
			nil,
			true,
		},
		{
			"on the day of ES1",
			date(1997, time.June, 1),
			[]Identifier{"ES1"},
			false,
		},
		{
			"between ES3 and ES5",
			date(2005, time.January, 1),
			[]Identifier{"ES1", "ES2", "ES3"},
			false,
		},
		{
			"long after the last edition",
			date(2100, time.January, 1),
			Identifiers(registry2021.All()),
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := registry2021.IdentifiersRatifiedBy(tt.at)
			if (err != nil) != tt.wantErr {
				t.Errorf("IdentifiersRatifiedBy() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				assert.Equal(t, NoneRatified{At: tt.at}, err)
				assert.True(t, errors.Is(err, ErrNotFound))
			}
			assert.EqualValues(t, tt.want, got)
		})
	}
}

func TestRegistry_RatifiedBy_Ordering(t *testing.T) {
	for year := 1997; year <= 2022; year++ {
		at := date(year, time.July, 15)
		versions, err := registry2021.RatifiedBy(at)
		assert.NoError(t, err)
		for i, v := range versions {
			assert.False(t, v.Ratified.After(at))
			if i > 0 {
				assert.False(t, v.Ratified.Before(versions[i-1].Ratified))
			}
		}
		latest, err := registry2021.LatestRatifiedBy(at)
		assert.NoError(t, err)
		assert.Equal(t, versions[len(versions)-1], *latest)
	}
}

func TestRegistry_LatestRatifiedBy_TooEarly(t *testing.T) {
	_, err := registry2021.LatestRatifiedBy(date(1990, time.January, 1))
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = registry2021.LatestIdentifierRatifiedBy(date(1990, time.January, 1))
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRegistry_ClockScenarios(t *testing.T) {
	tests := []struct {
		name            string
		now             time.Time
		wantLatest      Identifier
		wantYearEarlier Identifier
		wantAll         []Identifier
	}{
		{
			"2020 November",
			date(2020, time.November, 3),
			"ES2020",
			"ES2019",
			[]Identifier{"ES1", "ES2", "ES3", "ES5", "ES2015", "ES2016", "ES2017", "ES2018", "ES2019", "ES2020"},
		},
		{
			"2020 March",
			date(2020, time.March, 3),
			"ES2019",
			"ES2018",
			[]Identifier{"ES1", "ES2", "ES3", "ES5", "ES2015", "ES2016", "ES2017", "ES2018", "ES2019"},
		},
	}
	clock := NewClock(clockwork.NewFakeClockAt(date(2021, time.January, 1)))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock.Set(tt.now)

			latest, err := registry2021.LatestIdentifierRatifiedBy(clock.Now())
			assert.NoError(t, err)
			assert.Equal(t, tt.wantLatest, latest)

			yearEarlier, err := registry2021.LatestIdentifierRatifiedBy(DateWithYearOffset(-1, clock.Now()))
			assert.NoError(t, err)
			assert.Equal(t, tt.wantYearEarlier, yearEarlier)

			all, err := registry2021.IdentifiersRatifiedBy(clock.Now())
			assert.NoError(t, err)
			assert.Equal(t, tt.wantAll, all)
		})
	}
}

func TestRegistry_SortIdentifiers(t *testing.T) {
	sorted, err := registry2021.SortIdentifiers([]Identifier{"ES2021", "ES5"})
	assert.NoError(t, err)
	assert.Equal(t, []Identifier{"ES5", "ES2021"}, sorted)

	_, err = registry2021.SortIdentifiers([]Identifier{"ES2021", "ES4"})
	assert.Equal(t, UnknownIdentifier{ID: "ES4"}, err)
}

func TestRegistry_CompareIdentifiers(t *testing.T) {
	tests := []struct {
		name    string
		a       Identifier
		b       Identifier
		want    int
		wantErr bool
	}{
		{"older first", "ES3", "ES2016", -1, false},
		{"newer first", "ES2016", "ES3", 1, false},
		{"same", "ES5", "ES5", 0, false},
		{"unknown left", "ES4", "ES5", 0, true},
		{"unknown right", "ES5", "ESNext", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := registry2021.CompareIdentifiers(tt.a, tt.b)
			if (err != nil) != tt.wantErr {
				t.Errorf("CompareIdentifiers() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortByRatified_Shuffled(t *testing.T) {
	canonical := registry2021.All()
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		subset := make([]Version, 0, len(canonical))
		for _, v := range canonical {
			if rng.Intn(2) == 0 {
				subset = append(subset, v)
			}
		}
		shuffled := make([]Version, len(subset))
		copy(shuffled, subset)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		assert.Equal(t, subset, SortByRatified(shuffled))
	}
}

func TestSortByRatified_Stable(t *testing.T) {
	sameDay := date(2000, time.January, 1)
	versions := []Version{
		{ID: "b", Ratified: sameDay, Edition: 2},
		{ID: "c", Ratified: date(1999, time.January, 1), Edition: 3},
		{ID: "a", Ratified: sameDay, Edition: 1},
	}
	sorted := SortByRatified(versions)
	assert.Equal(t, []Identifier{"c", "b", "a"}, Identifiers(sorted))
	// input untouched
	assert.EqualValues(t, "b", versions[0].ID)
}
