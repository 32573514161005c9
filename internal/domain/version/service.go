package version

import (
	"errors"
	"fmt"
	"time"
)

// Registry is a read-only table of ratified ECMAScript Versions, sorted from oldest
// ratification first to most recent last.
type Registry interface {
	// All returns every Version in the table, oldest first
	All() []Version

	// ByIdentifier returns the Version with the given Identifier, or UnknownIdentifier
	ByIdentifier(id Identifier) (*Version, error)

	// ByEdition returns the Version with the given Edition number, or UnknownEdition
	ByEdition(edition Edition) (*Version, error)

	// IdentifierByEdition is ByEdition, projected onto the Identifier
	IdentifierByEdition(edition Edition) (Identifier, error)

	// RatifiedBy returns all the Versions ratified on or before the given time, oldest first.
	//
	// Errors out with NoneRatified if ECMAScript did not exist yet at that time.
	RatifiedBy(at time.Time) ([]Version, error)

	// IdentifiersRatifiedBy is RatifiedBy, projected onto Identifiers
	IdentifiersRatifiedBy(at time.Time) ([]Identifier, error)

	// LatestRatifiedBy returns the most recent Version ratified on or before the given time
	LatestRatifiedBy(at time.Time) (*Version, error)

	// LatestIdentifierRatifiedBy is LatestRatifiedBy, projected onto the Identifier
	LatestIdentifierRatifiedBy(at time.Time) (Identifier, error)

	// CompareIdentifiers orders two Identifiers by the ratification date of their Versions,
	// returning a negative number, 0 or a positive number like strings.Compare.
	CompareIdentifiers(a Identifier, b Identifier) (int, error)

	// SortIdentifiers returns a copy of the given Identifiers sorted by ratification date
	SortIdentifiers(ids []Identifier) ([]Identifier, error)
}

// <-- Domain Errors

// ErrNotFound is matched by every error returned when a query matches no Version
var ErrNotFound = errors.New("ECMAScript version not found")

// NotFoundErr is implemented by all the not-found errors; Is reports true for ErrNotFound
type NotFoundErr interface {
	error
	Is(target error) bool
}

var (
	_ NotFoundErr = UnknownIdentifier{}
	_ NotFoundErr = UnknownEdition{}
	_ NotFoundErr = NoneRatified{}
)

// UnknownIdentifier is returned when no Version has the given Identifier
type UnknownIdentifier struct {
	ID Identifier
}

func (e UnknownIdentifier) Error() string {
	return fmt.Sprintf("ECMAScript does not have the version [%v]", e.ID)
}

func (e UnknownIdentifier) Is(target error) bool {
	return target == ErrNotFound
}

// UnknownEdition is returned when no Version has the given Edition
type UnknownEdition struct {
	Edition Edition
}

func (e UnknownEdition) Error() string {
	return fmt.Sprintf("ECMAScript does not have the edition [%v]", e.Edition)
}

func (e UnknownEdition) Is(target error) bool {
	return target == ErrNotFound
}

// NoneRatified is returned when a date query predates the first edition
type NoneRatified struct {
	At time.Time
}

func (e NoneRatified) Error() string {
	return fmt.Sprintf("ECMAScript did not exist by [%v]", e.At.Format(time.RFC3339))
}

func (e NoneRatified) Is(target error) bool {
	return target == ErrNotFound
}

// InvalidTable is returned when a table would break ordering or uniqueness, or when a
// regenerated table does not extend the one it replaces
type InvalidTable struct {
	Reason string
}

func (e InvalidTable) Error() string {
	return fmt.Sprintf("Invalid ECMAScript version table: %s", e.Reason)
}

//     Errors -->
