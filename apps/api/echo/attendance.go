package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kalashala/kalashala/core"
	"github.com/kalashala/kalashala/core/attendance"
)

type (
	attendanceApi struct {
		svc      *attendance.Service
		validate *validator.Validate
	}

	// RosterResponse echoes the effective filters along with the roster.
	RosterResponse struct {
		attendance.RosterParams
		Entries []attendance.RosterEntry `json:"entries"`
	}
)

func registerAttendanceAPI(g *echo.Group, svc *attendance.Service, validate *validator.Validate) {
	api := attendanceApi{svc: svc, validate: validate}

	ag := g.Group("/attendance")
	ag.GET("", api.roster)
	ag.PUT("", api.mark)
}

func (api *attendanceApi) roster(ctx echo.Context) error {
	var query attendance.RosterQuery
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to RosterQuery")
	}
	reqCtx := ctx.Request().Context()

	params, err := api.svc.ResolveParams(reqCtx, query)
	if err != nil {
		return err
	}
	resp := RosterResponse{RosterParams: params, Entries: []attendance.RosterEntry{}}
	if params.ClassID == "" || params.LocationID == "" { // no class or location set up yet
		return ctx.JSON(http.StatusOK, resp)
	}

	entries, err := api.svc.Roster(reqCtx, params)
	if err != nil {
		return errors.Wrap(err, "getting roster")
	}
	if entries != nil {
		resp.Entries = entries
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *attendanceApi) mark(ctx echo.Context) error {
	var data attendance.MarkAttendance
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MarkAttendance")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	var mark attendance.Attendance
	err := core.RetryOnConflict(func() (err error) {
		mark, err = api.svc.MarkFrom(ctx.Request().Context(), data)
		return err
	})
	if err != nil {
		return errors.Wrap(err, "marking attendance")
	}
	return ctx.JSON(http.StatusOK, mark)
}
