// version holds the API models for ECMAScript Versions and the reference clock. Identifiers
// and Editions are the domain types; only dates get the friendlier common.Date rendering.
package version

import (
	"github.com/lloydmeta/esversions/internal/api/models/common"
	"github.com/lloydmeta/esversions/internal/domain/version"
)

type Version struct {
	ID       version.Identifier `json:"version" example:"ES2015"`
	Ratified common.Date        `json:"ratified" swaggertype:"string" format:"date" example:"2015-06-01"`
	Edition  version.Edition    `json:"edition" example:"6"`
}

// Versions that have been ratified by a given date
type Ratified struct {
	At       common.Date          `json:"at" swaggertype:"string" format:"date"`
	Versions []Version            `json:"versions"`
	Ids      []version.Identifier `json:"ids" swaggertype:"array,string" example:"ES1,ES2,ES3,ES5,ES2015"`
}

// The most recent Version that has been ratified by a given date
type Latest struct {
	At      common.Date `json:"at" swaggertype:"string" format:"date"`
	Version Version     `json:"version"`
}

type SortRequest struct {
	Versions []version.Identifier `json:"versions" binding:"required" swaggertype:"array,string" example:"ES2021,ES5"`
}

type SortResponse struct {
	Versions []version.Identifier `json:"versions" swaggertype:"array,string" example:"ES5,ES2021"`
}

type ClockUpdate struct {
	At common.Date `json:"at" binding:"required" swaggertype:"string" format:"date" example:"2020-11-03"`
}

type Clock struct {
	Now    common.Date `json:"now" swaggertype:"string" format:"date"`
	Pinned bool        `json:"pinned"`
}

// Creates an API model from the domain model
func FromDomainVersion(v *version.Version) Version {
	return Version{
		ID:       v.ID,
		Ratified: common.Date(v.Ratified),
		Edition:  v.Edition,
	}
}

// Creates API models from the domain models, keeping order
func FromDomainVersions(vs []version.Version) []Version {
	apiVersions := make([]Version, 0, len(vs))
	for i := range vs {
		apiVersions = append(apiVersions, FromDomainVersion(&vs[i]))
	}
	return apiVersions
}
