package versions

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	versionController "github.com/lloydmeta/esversions/internal/api/controllers/version"
	"github.com/lloydmeta/esversions/internal/api/models/common"
	"github.com/lloydmeta/esversions/internal/api/models/version"
	domainVersion "github.com/lloydmeta/esversions/internal/domain/version"
	"github.com/lloydmeta/esversions/internal/infra/server/routing"
)

var subPath = "es_versions"
var clockPath = "clock"

var editionPathKey = "edition"
var identifierPathKey = "identifier"

var atQueryKey = "at"
var yearOffsetQueryKey = "year_offset"

type RoutesHandler struct {
	Controller versionController.Controller
}

func (h *RoutesHandler) RegisterRoutes(routerGroup *gin.RouterGroup) {
	subGroup := routerGroup.Group(subPath)
	subGroup.GET("", h.list)
	subGroup.GET("/latest", h.latest)
	subGroup.GET("/editions/:"+editionPathKey, h.byEdition)
	subGroup.GET("/identifiers/:"+identifierPathKey, h.byIdentifier)
	subGroup.POST("/sort", h.sort)

	clockGroup := routerGroup.Group(clockPath)
	clockGroup.GET("", h.getClock)
	clockGroup.PUT("", h.setClock)
	clockGroup.DELETE("", h.resetClock)
}

// @Summary List ratified ECMAScript Versions
// @ID list-ratified-versions
// @Tags es-versions
// @Description Lists all the ECMAScript Versions ratified by a date, oldest first
// @Produce  json
// @Param   at query string false "Date (YYYY-MM-DD or RFC3339), defaults to the reference clock"
// @Param   year_offset query int false "Years to shift the date by"
// @Success 200 {object} version.Ratified
// @Failure 400 {object} common.Body "Invalid date or offset"
// @Failure 404 {object} common.Body "ECMAScript did not exist by the date"
// @Router /es_versions [get]
func (h *RoutesHandler) list(c *gin.Context) {
	if at, yearOffset, err := dateQuery(c); err != nil {
		routing.HandleBadRequest(c, err)
	} else {
		if ratified, err := h.Controller.List(c.Request.Context(), at, yearOffset); err == nil {
			c.JSON(http.StatusOK, ratified)
		} else {
			routing.HandleApiErr(c, err)
		}
	}
}

// @Summary Get the latest ratified ECMAScript Version
// @ID get-latest-version
// @Tags es-versions
// @Description Gets the most recent ECMAScript Version ratified by a date
// @Produce  json
// @Param   at query string false "Date (YYYY-MM-DD or RFC3339), defaults to the reference clock"
// @Param   year_offset query int false "Years to shift the date by"
// @Success 200 {object} version.Latest
// @Failure 400 {object} common.Body "Invalid date or offset"
// @Failure 404 {object} common.Body "ECMAScript did not exist by the date"
// @Router /es_versions/latest [get]
func (h *RoutesHandler) latest(c *gin.Context) {
	if at, yearOffset, err := dateQuery(c); err != nil {
		routing.HandleBadRequest(c, err)
	} else {
		if latest, err := h.Controller.Latest(c.Request.Context(), at, yearOffset); err == nil {
			c.JSON(http.StatusOK, latest)
		} else {
			routing.HandleApiErr(c, err)
		}
	}
}

// @Summary Get an ECMAScript Version by edition
// @ID get-version-by-edition
// @Tags es-versions
// @Produce  json
// @Param   edition path int true "The edition number"
// @Success 200 {object} version.Version
// @Failure 400 {object} common.Body "Not an edition number"
// @Failure 404 {object} common.Body "No such edition"
// @Router /es_versions/editions/{edition} [get]
func (h *RoutesHandler) byEdition(c *gin.Context) {
	edition, err := strconv.ParseUint(c.Param(editionPathKey), 10, 32)
	if err != nil {
		routing.HandleBadRequest(c, fmt.Errorf("invalid edition [%v]", c.Param(editionPathKey)))
	} else {
		if v, err := h.Controller.ByEdition(c.Request.Context(), domainVersion.Edition(edition)); err == nil {
			c.JSON(http.StatusOK, v)
		} else {
			routing.HandleApiErr(c, err)
		}
	}
}

// @Summary Get an ECMAScript Version by identifier
// @ID get-version-by-identifier
// @Tags es-versions
// @Produce  json
// @Param   identifier path string true "The version identifier, e.g. ES2015"
// @Success 200 {object} version.Version
// @Failure 404 {object} common.Body "No such version"
// @Router /es_versions/identifiers/{identifier} [get]
func (h *RoutesHandler) byIdentifier(c *gin.Context) {
	id := domainVersion.Identifier(c.Param(identifierPathKey))
	if v, err := h.Controller.ByIdentifier(c.Request.Context(), id); err == nil {
		c.JSON(http.StatusOK, v)
	} else {
		routing.HandleApiErr(c, err)
	}
}

// @Summary Sort ECMAScript Version identifiers
// @ID sort-versions
// @Tags es-versions
// @Description Sorts identifiers by the ratification date of their Versions, oldest first
// @Accept  json
// @Produce  json
// @Param   sortRequest body version.SortRequest true "The request body"
// @Success 200 {object} version.SortResponse
// @Failure 400 {object} common.Body "Invalid JSON"
// @Failure 404 {object} common.Body "An identifier does not exist"
// @Router /es_versions/sort [post]
func (h *RoutesHandler) sort(c *gin.Context) {
	var sortRequest version.SortRequest
	if err := c.ShouldBindJSON(&sortRequest); err != nil {
		routing.HandleJsonSerdesErr(c, err)
	} else {
		if sorted, err := h.Controller.Sort(c.Request.Context(), sortRequest.Versions); err == nil {
			c.JSON(http.StatusOK, sorted)
		} else {
			routing.HandleApiErr(c, err)
		}
	}
}

// @Summary Get the reference clock
// @ID get-clock
// @Tags clock
// @Produce  json
// @Success 200 {object} version.Clock
// @Router /clock [get]
func (h *RoutesHandler) getClock(c *gin.Context) {
	c.JSON(http.StatusOK, h.Controller.GetClock(c.Request.Context()))
}

// @Summary Pin the reference clock
// @ID set-clock
// @Tags clock
// @Description Pins the date that queries without an explicit date resolve against
// @Accept  json
// @Produce  json
// @Param   clockUpdate body version.ClockUpdate true "The request body"
// @Success 200 {object} version.Clock
// @Failure 400 {object} common.Body "Invalid JSON"
// @Router /clock [put]
func (h *RoutesHandler) setClock(c *gin.Context) {
	var clockUpdate version.ClockUpdate
	if err := c.ShouldBindJSON(&clockUpdate); err != nil {
		routing.HandleJsonSerdesErr(c, err)
	} else {
		c.JSON(http.StatusOK, h.Controller.SetClock(c.Request.Context(), time.Time(clockUpdate.At)))
	}
}

// @Summary Unpin the reference clock
// @ID reset-clock
// @Tags clock
// @Description Makes the reference clock follow the wall clock again
// @Produce  json
// @Success 200 {object} version.Clock
// @Router /clock [delete]
func (h *RoutesHandler) resetClock(c *gin.Context) {
	c.JSON(http.StatusOK, h.Controller.ResetClock(c.Request.Context()))
}

func dateQuery(c *gin.Context) (*time.Time, int, error) {
	var at *time.Time
	if raw, ok := c.GetQuery(atQueryKey); ok {
		parsed, err := common.ParseDate(raw)
		if err != nil {
			return nil, 0, err
		}
		at = &parsed
	}
	yearOffset := 0
	if raw, ok := c.GetQuery(yearOffsetQueryKey); ok {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid %v [%v]", yearOffsetQueryKey, raw)
		}
		yearOffset = parsed
	}
	return at, yearOffset, nil
}
