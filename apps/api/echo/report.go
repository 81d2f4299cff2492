package echoapi

import (
	"bytes"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kalashala/kalashala/core/report"
	"github.com/kalashala/kalashala/core/school"
)

const csvContentType = "text/csv; charset=utf-8"

type reportApi struct {
	svc     *report.Service
	schools *school.Service
}

func registerReportAPI(g *echo.Group, svc *report.Service, schools *school.Service) {
	api := reportApi{svc: svc, schools: schools}

	rg := g.Group("/reports")
	rg.GET("", api.build)
	rg.GET("/export", api.export)
}

func (api *reportApi) build(ctx echo.Context) error {
	_, rows, err := api.rows(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, rows)
}

func (api *reportApi) export(ctx echo.Context) error {
	query, rows, err := api.rows(ctx)
	if err != nil {
		return err
	}
	content, err := report.ExportText(rows)
	if err != nil {
		return errors.Wrap(err, "exporting report")
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+report.FileName(query.Period, time.Now())+`"`)
	return ctx.Stream(http.StatusOK, csvContentType, bytes.NewReader(content))
}

// rows binds the report query, checks the class filter and builds the report.
func (api *reportApi) rows(ctx echo.Context) (report.Query, []report.Row, error) {
	var query report.Query
	if err := ctx.Bind(&query); err != nil {
		return query, nil, errors.Wrap(err, "binding to report.Query")
	}
	query.Clean()
	reqCtx := ctx.Request().Context()

	if query.ClassID != report.AllClasses {
		if _, err := api.schools.GetClass(reqCtx, query.ClassID); err != nil {
			return query, nil, errors.Wrap(err, "finding class by ID")
		}
	}
	rows, err := api.svc.Build(reqCtx, query.Period, query.ClassID, query.Year)
	if err != nil {
		return query, nil, errors.Wrap(err, "building report")
	}
	return query, rows, nil
}
