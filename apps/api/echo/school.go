package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kalashala/kalashala/core/school"
)

type schoolApi struct {
	svc *school.Service
}

func registerSchoolAPI(g *echo.Group, svc *school.Service) {
	api := schoolApi{svc: svc}

	g.GET("/locations", api.queryLocations)
	g.GET("/classes", api.queryClasses)
	g.GET("/dashboard", api.dashboard)
}

func (api *schoolApi) queryLocations(ctx echo.Context) error {
	locations, err := api.svc.ListLocations(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing locations")
	}
	if locations == nil {
		locations = []school.Location{}
	}
	return ctx.JSON(http.StatusOK, locations)
}

func (api *schoolApi) queryClasses(ctx echo.Context) error {
	classes, err := api.svc.ListClasses(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing classes")
	}
	if classes == nil {
		classes = []school.Class{}
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *schoolApi) dashboard(ctx echo.Context) error {
	stats, err := api.svc.Stats(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "computing stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}
