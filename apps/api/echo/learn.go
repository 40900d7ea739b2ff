package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/VarunPasupunuri/mind-sprouts/core"
	"github.com/VarunPasupunuri/mind-sprouts/core/learn"
)

type learnApi struct {
	svc *learn.Service
}

func registerLearnAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *learn.Service) {
	api := learnApi{svc: svc}

	lg := g.Group("/learn", jwt)
	lg.GET("/completions", api.completions)
	lg.POST("/topics/:topicID/content/:contentID/complete", api.complete)
}

func (api *learnApi) completions(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	comps, err := api.svc.Completions(claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying completions")
	}
	if comps == nil {
		comps = []learn.Completion{}
	}
	return ctx.JSON(http.StatusOK, comps)
}

func (api *learnApi) complete(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data learn.CompleteContent
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CompleteContent")
	}
	if err = core.Validate.Struct(&data); err != nil {
		return err
	}

	recorded, err := api.svc.CompleteContent(claims.Subject, ctx.Param("topicID"), ctx.Param("contentID"), data.Points)
	if err != nil {
		return errors.Wrap(err, "completing content")
	}
	return ctx.JSON(http.StatusOK, RecordedResponse{Recorded: recorded})
}
