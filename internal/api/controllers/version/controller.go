package version

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/lloydmeta/esversions/internal/api/models/common"
	"github.com/lloydmeta/esversions/internal/api/models/version"
	domainVersion "github.com/lloydmeta/esversions/internal/domain/version"
)

// Controller is an interface that defines the methods that are available to the routing
// layer. It is framework-agnostic
type Controller interface {

	// List returns the Versions ratified by the given time, or by the Clock's time if nil,
	// shifted by yearOffset years
	List(ctx context.Context, at *time.Time, yearOffset int) (*version.Ratified, *common.ApiError)

	// Latest returns the most recent Version ratified by the given time, or by the Clock's time
	// if nil, shifted by yearOffset years
	Latest(ctx context.Context, at *time.Time, yearOffset int) (*version.Latest, *common.ApiError)

	// ByEdition returns the Version with the given Edition number
	ByEdition(ctx context.Context, edition domainVersion.Edition) (*version.Version, *common.ApiError)

	// ByIdentifier returns the Version with the given Identifier
	ByIdentifier(ctx context.Context, id domainVersion.Identifier) (*version.Version, *common.ApiError)

	// Sort returns the given Identifiers sorted by ratification date
	Sort(ctx context.Context, ids []domainVersion.Identifier) (*version.SortResponse, *common.ApiError)

	// GetClock returns the reference Clock's current time
	GetClock(ctx context.Context) version.Clock

	// SetClock pins the reference Clock to the given time
	SetClock(ctx context.Context, at time.Time) version.Clock

	// ResetClock unpins the reference Clock
	ResetClock(ctx context.Context) version.Clock
}

func New(registry domainVersion.Registry, clock *domainVersion.Clock) Controller {
	return &impl{
		registry: registry,
		clock:    clock,
	}
}

type impl struct {
	registry domainVersion.Registry
	clock    *domainVersion.Clock
}

func (c *impl) List(ctx context.Context, at *time.Time, yearOffset int) (*version.Ratified, *common.ApiError) {
	when := c.resolve(at, yearOffset)
	result, err := c.registry.RatifiedBy(when)
	if err != nil {
		return nil, handleErr(err)
	} else {
		return &version.Ratified{
			At:       common.Date(when),
			Versions: version.FromDomainVersions(result),
			Ids:      domainVersion.Identifiers(result),
		}, nil
	}
}

func (c *impl) Latest(ctx context.Context, at *time.Time, yearOffset int) (*version.Latest, *common.ApiError) {
	when := c.resolve(at, yearOffset)
	result, err := c.registry.LatestRatifiedBy(when)
	if err != nil {
		return nil, handleErr(err)
	} else {
		return &version.Latest{
			At:      common.Date(when),
			Version: version.FromDomainVersion(result),
		}, nil
	}
}

func (c *impl) ByEdition(ctx context.Context, edition domainVersion.Edition) (*version.Version, *common.ApiError) {
	result, err := c.registry.ByEdition(edition)
	if err != nil {
		return nil, handleErr(err)
	} else {
		v := version.FromDomainVersion(result)
		return &v, nil
	}
}

func (c *impl) ByIdentifier(ctx context.Context, id domainVersion.Identifier) (*version.Version, *common.ApiError) {
	result, err := c.registry.ByIdentifier(id)
	if err != nil {
		return nil, handleErr(err)
	} else {
		v := version.FromDomainVersion(result)
		return &v, nil
	}
}

func (c *impl) Sort(ctx context.Context, ids []domainVersion.Identifier) (*version.SortResponse, *common.ApiError) {
	result, err := c.registry.SortIdentifiers(ids)
	if err != nil {
		return nil, handleErr(err)
	} else {
		return &version.SortResponse{Versions: result}, nil
	}
}

func (c *impl) GetClock(ctx context.Context) version.Clock {
	return version.Clock{
		Now:    common.Date(c.clock.Now()),
		Pinned: c.clock.Pinned(),
	}
}

func (c *impl) SetClock(ctx context.Context, at time.Time) version.Clock {
	c.clock.Set(at)
	return c.GetClock(ctx)
}

func (c *impl) ResetClock(ctx context.Context) version.Clock {
	c.clock.Reset()
	return c.GetClock(ctx)
}

func (c *impl) resolve(at *time.Time, yearOffset int) time.Time {
	var when time.Time
	if at != nil {
		when = *at
	} else {
		when = c.clock.Now()
	}
	if yearOffset != 0 {
		when = domainVersion.DateWithYearOffset(yearOffset, when)
	}
	return when
}

func handleErr(err error) *common.ApiError {
	var notFoundErr domainVersion.NotFoundErr
	if errors.As(err, &notFoundErr) && notFoundErr.Is(domainVersion.ErrNotFound) {
		return notFound(err)
	}
	return unhandledErr(err)
}

func notFound(err error) *common.ApiError {
	return &common.ApiError{
		StatusCode: http.StatusNotFound,
		Body: common.Body{
			Message: err.Error(),
		},
	}
}

func unhandledErr(e error) *common.ApiError {
	return &common.ApiError{
		StatusCode: http.StatusInternalServerError,
		Body: common.Body{
			Message: e.Error(),
		},
	}
}
