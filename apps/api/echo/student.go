package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kalashala/kalashala/core/attendance"
	"github.com/kalashala/kalashala/core/fee"
	"github.com/kalashala/kalashala/core/school"
	"github.com/kalashala/kalashala/core/student"
)

var errStudentNotFoundInCtx = errors.New("student object not found in echo.Context")

type (
	studentApi struct {
		svc      *student.Service
		schools  *school.Service
		attend   *attendance.Service
		fees     *fee.Service
		validate *validator.Validate
	}

	// StudentDetail is a student with its recent attendance and fee history.
	StudentDetail struct {
		student.Listing
		Attendance []attendance.HistoryEntry `json:"attendance"`
		Fees       []fee.Fee                 `json:"fees"`
	}

	StudentUpdateResponse struct {
		student.Listing
		Enrollment student.Diff `json:"enrollment"`
	}
)

func registerStudentAPI(g *echo.Group, deps ServerDeps) {
	api := studentApi{
		svc:      deps.StudentSvc,
		schools:  deps.SchoolSvc,
		attend:   deps.AttendSvc,
		fees:     deps.FeeSvc,
		validate: deps.Validate,
	}

	sg := g.Group("/students")
	sg.GET("", api.query)
	sg.POST("", api.create)

	// detail endpoints
	dg := sg.Group("/:id", studentMiddleware(api.svc))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.GET("/fee", api.feeStatus)
}

// Handlers

func (api *studentApi) query(ctx echo.Context) error {
	filter := new(student.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []student.Listing{})
	}
	ordering := new(Ordering)
	ordering.Bind(ctx, student.OrderingFields...)

	students, err := api.svc.Query(ctx.Request().Context(), filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []student.Listing{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	reqCtx := ctx.Request().Context()
	if err := data.Validate(reqCtx, api.validate, api.schools); err != nil {
		return err
	}

	s, err := api.svc.Create(reqCtx, data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	listing, err := api.svc.Detail(reqCtx, s.ID)
	if err != nil {
		return errors.Wrap(err, "getting created student")
	}
	return ctx.JSON(http.StatusCreated, listing)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	listing, ok := ctx.Get("object").(student.Listing)
	if !ok {
		return errors.Wrap(errStudentNotFoundInCtx, "retrieving object from context")
	}
	reqCtx := ctx.Request().Context()

	history, err := api.attend.History(reqCtx, listing.ID)
	if err != nil {
		return errors.Wrap(err, "getting attendance history")
	}
	fees, err := api.fees.History(reqCtx, listing.ID)
	if err != nil {
		return errors.Wrap(err, "getting fee history")
	}
	if history == nil {
		history = []attendance.HistoryEntry{}
	}
	if fees == nil {
		fees = []fee.Fee{}
	}
	return ctx.JSON(http.StatusOK, StudentDetail{Listing: listing, Attendance: history, Fees: fees})
}

func (api *studentApi) update(ctx echo.Context) error {
	listing, ok := ctx.Get("object").(student.Listing)
	if !ok {
		return errors.Wrap(errStudentNotFoundInCtx, "retrieving object from context")
	}

	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	reqCtx := ctx.Request().Context()
	if err := data.Validate(reqCtx, api.validate, api.schools); err != nil {
		return err
	}

	_, diff, err := api.svc.Update(reqCtx, listing.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	if listing, err = api.svc.Detail(reqCtx, listing.ID); err != nil {
		return errors.Wrap(err, "getting updated student")
	}
	return ctx.JSON(http.StatusOK, StudentUpdateResponse{Listing: listing, Enrollment: diff})
}

func (api *studentApi) destroy(ctx echo.Context) error {
	listing, ok := ctx.Get("object").(student.Listing)
	if !ok {
		return errors.Wrap(errStudentNotFoundInCtx, "retrieving object from context")
	}
	if err := api.svc.Delete(ctx.Request().Context(), listing.ID); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) feeStatus(ctx echo.Context) error {
	listing, ok := ctx.Get("object").(student.Listing)
	if !ok {
		return errors.Wrap(errStudentNotFoundInCtx, "retrieving object from context")
	}

	period := fee.CurrentPeriod()
	if raw := ctx.QueryParam("period"); raw != "" {
		p, err := fee.ParsePeriod(raw)
		if err != nil {
			return err
		}
		period = p
	}

	status, err := api.fees.GetStatus(ctx.Request().Context(), listing.ID, period)
	if err != nil {
		return errors.Wrap(err, "getting fee status")
	}
	return ctx.JSON(http.StatusOK, status)
}

// studentMiddleware loads the student `:id` into the context as "object".
func studentMiddleware(svc *student.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			listing, err := svc.Detail(ctx.Request().Context(), ctx.Param("id"))
			if err != nil {
				return errors.Wrap(err, "finding student by ID")
			}
			ctx.Set("object", listing)
			return next(ctx)
		}
	}
}
