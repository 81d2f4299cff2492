package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/kalashala/kalashala/core"
)

var orderingParam = "ordering"

type Ordering struct {
	Orderings []core.DBOrdering
}

// Bind reads the "ordering" query param (eg. "-created_at,name"), keeping only the allowed fields.
func (ord *Ordering) Bind(ctx echo.Context, allowed ...string) {
	val := ctx.QueryParam(orderingParam)
	if val == "" {
		return
	}
	ord.Orderings = core.ParseOrderings(val, allowed...)
}

type SuccessResponse struct {
	Success string `json:"success"`
}
