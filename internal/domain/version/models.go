// version holds the ECMAScript edition table and the models describing each ratified edition.
package version

import (
	"fmt"
	"time"
)

// Identifier of an ECMAScript version, e.g. "ES5" or "ES2015". Any string is a valid Identifier;
// a Registry decides whether it names a Version.
type Identifier string

// Edition number of a ratified ECMAScript specification. Edition 4 was abandoned.
type Edition uint

// Version is a ratified ECMAScript edition
type Version struct {
	ID       Identifier
	Ratified time.Time
	Edition  Edition
}

// YearlyEditionsFrom is the year from which editions are named after the year they were ratified in
const YearlyEditionsFrom = 2015

// DefaultHorizon is the number of years past the generation year for which yearly editions
// are generated up front. 0 means the table stops at the generation year.
const DefaultHorizon uint = 0

func ratifiedOn(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

var seeds = []Version{
	{ID: "ES1", Ratified: ratifiedOn(1997, time.June, 1), Edition: 1},
	{ID: "ES2", Ratified: ratifiedOn(1998, time.June, 1), Edition: 2},
	{ID: "ES3", Ratified: ratifiedOn(1999, time.December, 1), Edition: 3},
	{ID: "ES5", Ratified: ratifiedOn(2009, time.December, 1), Edition: 5},
}

// yearly returns the Version ratified in June of the given year
func yearly(year int) Version {
	return Version{
		ID:       Identifier(fmt.Sprintf("ES%d", year)),
		Ratified: ratifiedOn(year, time.June, 1),
		Edition:  Edition(year - YearlyEditionsFrom + 6),
	}
}

// Identifiers projects the given Versions onto their Identifiers, keeping order
func Identifiers(versions []Version) []Identifier {
	ids := make([]Identifier, 0, len(versions))
	for _, v := range versions {
		ids = append(ids, v.ID)
	}
	return ids
}

// DateWithYearOffset returns the date (midnight, in base's location) with the same month and day as
// base, with the year shifted by offset.
//
// February 29th shifted onto a non-leap year normalises to March 1st.
func DateWithYearOffset(offset int, base time.Time) time.Time {
	return time.Date(base.Year()+offset, base.Month(), base.Day(), 0, 0, 0, 0, base.Location())
}
