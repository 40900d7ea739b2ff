package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/VarunPasupunuri/mind-sprouts/core/notification"
)

type notificationApi struct {
	svc *notification.Service
}

func registerNotificationAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *notification.Service) {
	api := notificationApi{svc: svc}

	ng := g.Group("/notifications", jwt)
	ng.GET("", api.feed)
	ng.POST("/:id/read", api.markRead)
	ng.POST("/read-all", api.markAllRead)
	ng.DELETE("/read", api.clearRead)
	ng.GET("/prefs", api.getPrefs)
	ng.PUT("/prefs", api.savePrefs)
}

func (api *notificationApi) feed(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	// Feed refreshes the challenge reminder itself
	feed, err := api.svc.Feed(claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying feed")
	}
	if feed == nil {
		feed = []notification.Notification{}
	}
	return ctx.JSON(http.StatusOK, feed)
}

func (api *notificationApi) markRead(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.MarkRead(claims.Subject, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "marking notification read")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *notificationApi) markAllRead(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.MarkAllRead(claims.Subject); err != nil {
		return errors.Wrap(err, "marking all notifications read")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *notificationApi) clearRead(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.ClearRead(claims.Subject); err != nil {
		return errors.Wrap(err, "clearing read notifications")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *notificationApi) getPrefs(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	prefs, err := api.svc.GetPrefs(claims.Subject)
	if err != nil {
		return errors.Wrap(err, "getting notification prefs")
	}
	return ctx.JSON(http.StatusOK, prefs)
}

func (api *notificationApi) savePrefs(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var prefs notification.Prefs
	if err = ctx.Bind(&prefs); err != nil {
		return errors.Wrap(err, "binding to Prefs")
	}
	if err = api.svc.SavePrefs(claims.Subject, prefs); err != nil {
		return errors.Wrap(err, "saving notification prefs")
	}
	return ctx.JSON(http.StatusOK, prefs)
}
