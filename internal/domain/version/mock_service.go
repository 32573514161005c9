package version

import (
	"time"
)

var MockDomainVersion = Version{
	ID:       "ES2015",
	Ratified: time.Date(2015, time.June, 1, 0, 0, 0, 0, time.UTC),
	Edition:  6,
}

type MockRegistry struct {
	AllCalled                  uint
	ByIdentifierCalled         uint
	ByIdentifierOverride       func() (*Version, error)
	ByEditionCalled            uint
	ByEditionOverride          func() (*Version, error)
	RatifiedByCalled           uint
	RatifiedByOverride         func() ([]Version, error)
	RatifiedByLastAt           time.Time
	LatestRatifiedByCalled     uint
	LatestRatifiedByOverride   func() (*Version, error)
	LatestRatifiedByLastAt     time.Time
	SortIdentifiersCalled      uint
	SortIdentifiersOverride    func() ([]Identifier, error)
	CompareIdentifiersCalled   uint
	CompareIdentifiersOverride func() (int, error)
}

func (m *MockRegistry) All() []Version {
	m.AllCalled++
	return []Version{MockDomainVersion}
}

func (m *MockRegistry) ByIdentifier(id Identifier) (*Version, error) {
	m.ByIdentifierCalled++
	if m.ByIdentifierOverride != nil {
		return m.ByIdentifierOverride()
	} else {
		v := MockDomainVersion
		v.ID = id
		return &v, nil
	}
}

func (m *MockRegistry) ByEdition(edition Edition) (*Version, error) {
	m.ByEditionCalled++
	if m.ByEditionOverride != nil {
		return m.ByEditionOverride()
	} else {
		v := MockDomainVersion
		v.Edition = edition
		return &v, nil
	}
}

func (m *MockRegistry) IdentifierByEdition(edition Edition) (Identifier, error) {
	v, err := m.ByEdition(edition)
	if err != nil {
		return "", err
	}
	return v.ID, nil
}

func (m *MockRegistry) RatifiedBy(at time.Time) ([]Version, error) {
	m.RatifiedByCalled++
	m.RatifiedByLastAt = at
	if m.RatifiedByOverride != nil {
		return m.RatifiedByOverride()
	} else {
		return []Version{MockDomainVersion}, nil
	}
}

func (m *MockRegistry) IdentifiersRatifiedBy(at time.Time) ([]Identifier, error) {
	versions, err := m.RatifiedBy(at)
	if err != nil {
		return nil, err
	}
	return Identifiers(versions), nil
}

func (m *MockRegistry) LatestRatifiedBy(at time.Time) (*Version, error) {
	m.LatestRatifiedByCalled++
	m.LatestRatifiedByLastAt = at
	if m.LatestRatifiedByOverride != nil {
		return m.LatestRatifiedByOverride()
	} else {
		return &MockDomainVersion, nil
	}
}

func (m *MockRegistry) LatestIdentifierRatifiedBy(at time.Time) (Identifier, error) {
	v, err := m.LatestRatifiedBy(at)
	if err != nil {
		return "", err
	}
	return v.ID, nil
}

func (m *MockRegistry) CompareIdentifiers(a Identifier, b Identifier) (int, error) {
	m.CompareIdentifiersCalled++
	if m.CompareIdentifiersOverride != nil {
		return m.CompareIdentifiersOverride()
	} else {
		return 0, nil
	}
}

func (m *MockRegistry) SortIdentifiers(ids []Identifier) ([]Identifier, error) {
	m.SortIdentifiersCalled++
	if m.SortIdentifiersOverride != nil {
		return m.SortIdentifiersOverride()
	} else {
		return ids, nil
	}
}
