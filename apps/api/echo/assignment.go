package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/VarunPasupunuri/mind-sprouts/core"
	"github.com/VarunPasupunuri/mind-sprouts/core/assignment"
	"github.com/VarunPasupunuri/mind-sprouts/core/user"
)

type assignmentApi struct {
	svc  *assignment.Service
	usrs *user.Service
}

func registerAssignmentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *assignment.Service, usrs *user.Service) {
	api := assignmentApi{svc: svc, usrs: usrs}

	ag := g.Group("/assignments", jwt)
	ag.GET("", api.query)
	ag.POST("/:id/submit", api.submit)
	ag.POST("/:id/review", api.review, teacherMiddleware())
}

func (api *assignmentApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	asgs, err := api.svc.QueryAll(claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	if asgs == nil {
		asgs = []assignment.UserAssignment{}
	}
	return ctx.JSON(http.StatusOK, asgs)
}

func (api *assignmentApi) submit(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data assignment.SubmitAssignment
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SubmitAssignment")
	}
	if err = core.Validate.Struct(&data); err != nil {
		return err
	}

	sub, err := api.svc.Submit(claims.Subject, ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "submitting assignment")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *assignmentApi) review(ctx echo.Context) error {
	var data ReviewRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ReviewRequest")
	}
	if err := core.Validate.Struct(&data); err != nil {
		return err
	}

	// the reviewed user must exist; surfaces a 404 over a silent no-op
	if _, err := api.usrs.GetByID(data.UserID); err != nil {
		return errors.Wrap(err, "finding reviewed user")
	}

	sub, err := api.svc.Review(data.UserID, ctx.Param("id"), assignment.ReviewAssignment{Approve: data.Approve})
	if err != nil {
		return errors.Wrap(err, "reviewing assignment")
	}
	return ctx.JSON(http.StatusOK, sub)
}

type ReviewRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	Approve bool   `json:"approve"`
}
