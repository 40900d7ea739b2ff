package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/VarunPasupunuri/mind-sprouts/core/analytics"
)

type analyticsApi struct {
	svc *analytics.Service
}

func registerAnalyticsAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *analytics.Service) {
	api := analyticsApi{svc: svc}

	g.POST("/visits", api.logVisit, jwt)

	// teacher dashboard
	ag := g.Group("/analytics", jwt, teacherMiddleware())
	ag.GET("/active", api.activeUsers)
	ag.GET("/snapshot", api.snapshot)
}

func (api *analyticsApi) logVisit(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	recorded, err := api.svc.LogVisit(claims.Subject)
	if err != nil {
		return errors.Wrap(err, "logging visit")
	}
	return ctx.JSON(http.StatusOK, RecordedResponse{Recorded: recorded})
}

func (api *analyticsApi) activeUsers(ctx echo.Context) error {
	count, err := api.svc.ActiveUsers()
	if err != nil {
		return errors.Wrap(err, "counting active users")
	}
	return ctx.JSON(http.StatusOK, ActiveUsersResponse{Active: count})
}

func (api *analyticsApi) snapshot(ctx echo.Context) error {
	snap, err := api.svc.Snapshot()
	if err != nil {
		return errors.Wrap(err, "building snapshot")
	}
	return ctx.JSON(http.StatusOK, snap)
}

type ActiveUsersResponse struct {
	Active int `json:"active"`
}
