package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/VarunPasupunuri/mind-sprouts/core/challenge"
	"github.com/VarunPasupunuri/mind-sprouts/core/notification"
	"github.com/VarunPasupunuri/mind-sprouts/core/user"
)

type challengeApi struct {
	svc    *challenge.Service
	notifs *notification.Service
	usrs   *user.Service
}

func registerChallengeAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *challenge.Service,
	notifs *notification.Service,
	usrs *user.Service,
) {
	api := challengeApi{svc: svc, notifs: notifs, usrs: usrs}

	cg := g.Group("/challenges", jwt)
	cg.GET("", api.query)
	cg.POST("/:id/complete", api.complete)

	eg := g.Group("/eco-items", jwt)
	eg.GET("", api.ecoItems)
	eg.PUT("/:id/place", api.place)
}

func (api *challengeApi) query(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrs)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	chls, err := api.svc.QueryAll(usr.ID)
	if err != nil {
		return errors.Wrap(err, "querying challenges")
	}
	if chls == nil {
		chls = []challenge.UserChallenge{}
	}
	return ctx.JSON(http.StatusOK, chls)
}

func (api *challengeApi) complete(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrs)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	res, err := api.svc.Complete(usr.ID, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "completing challenge")
	}

	// the feed reminder follows the first incomplete challenge
	if res.Completed {
		if err = api.notifs.SyncChallengeReminder(usr.ID); err != nil {
			ctx.Logger().Errorf("%+v", errors.Wrap(err, "syncing challenge reminder"))
		}
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *challengeApi) ecoItems(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrs)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	items, err := api.svc.EcoItems(usr.ID)
	if err != nil {
		return errors.Wrap(err, "querying eco items")
	}
	if items == nil {
		items = []challenge.UserEcoItem{}
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *challengeApi) place(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrs)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data challenge.PlaceEcoItem
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PlaceEcoItem")
	}

	if err = api.svc.Place(usr.ID, ctx.Param("id"), data); err != nil {
		return errors.Wrap(err, "placing eco item")
	}
	return ctx.NoContent(http.StatusNoContent)
}
