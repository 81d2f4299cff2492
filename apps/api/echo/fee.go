package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kalashala/kalashala/core"
	"github.com/kalashala/kalashala/core/fee"
	"github.com/kalashala/kalashala/core/student"
)

type feeApi struct {
	svc      *fee.Service
	students *student.Service
	validate *validator.Validate
}

func registerFeeAPI(g *echo.Group, svc *fee.Service, students *student.Service, validate *validator.Validate) {
	api := feeApi{svc: svc, students: students, validate: validate}

	fg := g.Group("/fees")
	fg.GET("", api.query)
	fg.POST("", api.recordPayment)
}

func (api *feeApi) query(ctx echo.Context) error {
	period := fee.CurrentPeriod()
	if raw := ctx.QueryParam("period"); raw != "" {
		p, err := fee.ParsePeriod(raw)
		if err != nil {
			return err
		}
		period = p
	}
	status, err := fee.ParseStatusFilter(ctx.QueryParam("status"))
	if err != nil {
		return err
	}

	rows, err := api.svc.ListForPeriod(ctx.Request().Context(), period, status)
	if err != nil {
		return errors.Wrap(err, "listing fees")
	}
	if rows == nil {
		rows = []fee.Row{}
	}
	return ctx.JSON(http.StatusOK, rows)
}

func (api *feeApi) recordPayment(ctx echo.Context) error {
	var data fee.NewPayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPayment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()
	if _, err := api.students.Get(reqCtx, data.StudentID); err != nil {
		return errors.Wrap(err, "finding student by ID")
	}

	var payment fee.Fee
	err := core.RetryOnConflict(func() (err error) {
		payment, err = api.svc.RecordFrom(reqCtx, data)
		return err
	})
	if err != nil {
		return errors.Wrap(err, "recording payment")
	}
	return ctx.JSON(http.StatusCreated, payment)
}
