package version

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtends(t *testing.T) {
	tampered := registry2021.All()
	tampered[4].Edition = 4
	tamperedRegistry, err := FromVersions(tampered)
	assert.NoError(t, err)

	tests := []struct {
		name     string
		previous Registry
		next     Registry
		wantErr  bool
	}{
		{
			"same table",
			registry2021,
			MustNew(WithYear(2021)),
			false,
		},
		{
			"appended years",
			registry2021,
			MustNew(WithYear(2023)),
			false,
		},
		{
			"horizon covering the next year",
			MustNew(WithYear(2021), WithHorizon(1)),
			MustNew(WithYear(2022)),
			false,
		},
		{
			"shrunk table",
			registry2021,
			MustNew(WithYear(2020)),
			true,
		},
		{
			"renumbered edition",
			registry2021,
			tamperedRegistry,
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Extends(tt.previous, tt.next)
			if (err != nil) != tt.wantErr {
				t.Errorf("Extends() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSwappable_Swap(t *testing.T) {
	swappable := NewSwappable(registry2021)

	_, err := swappable.ByIdentifier("ES2022")
	assert.Equal(t, UnknownIdentifier{ID: "ES2022"}, err)

	grew, err := swappable.Swap(MustNew(WithYear(2022)))
	assert.NoError(t, err)
	assert.True(t, grew)
	es2022, err := swappable.ByIdentifier("ES2022")
	assert.NoError(t, err)
	assert.EqualValues(t, 13, es2022.Edition)

	grew, err = swappable.Swap(MustNew(WithYear(2022)))
	assert.NoError(t, err)
	assert.False(t, grew)

	_, err = swappable.Swap(MustNew(WithYear(2021)))
	assert.IsType(t, InvalidTable{}, err)
	assert.Len(t, swappable.All(), len(registry2021.All())+1)
}

func TestSwappable_Delegates(t *testing.T) {
	swappable := NewSwappable(registry2021)
	at := date(2020, time.November, 3)

	latest, err := swappable.LatestIdentifierRatifiedBy(at)
	assert.NoError(t, err)
	assert.EqualValues(t, "ES2020", latest)

	ids, err := swappable.IdentifiersRatifiedBy(at)
	assert.NoError(t, err)
	assert.Len(t, ids, 10)

	id, err := swappable.IdentifierByEdition(5)
	assert.NoError(t, err)
	assert.EqualValues(t, "ES5", id)

	sorted, err := swappable.SortIdentifiers([]Identifier{"ES2021", "ES5"})
	assert.NoError(t, err)
	assert.Equal(t, []Identifier{"ES5", "ES2021"}, sorted)
}
