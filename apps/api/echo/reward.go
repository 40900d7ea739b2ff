package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/VarunPasupunuri/mind-sprouts/core/reward"
)

type rewardApi struct {
	svc *reward.Service
}

func registerRewardAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *reward.Service) {
	api := rewardApi{svc: svc}

	rg := g.Group("/rewards", jwt)
	rg.GET("", api.query)
	rg.GET("/redemptions", api.redemptions)
	rg.POST("/:id/redeem", api.redeem)
}

func (api *rewardApi) query(ctx echo.Context) error {
	items, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying store items")
	}
	if items == nil {
		items = []reward.StoreItem{}
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *rewardApi) redemptions(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	rds, err := api.svc.Redemptions(claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying redemptions")
	}
	if rds == nil {
		rds = []reward.Redemption{}
	}
	return ctx.JSON(http.StatusOK, rds)
}

func (api *rewardApi) redeem(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	rd, err := api.svc.Redeem(claims.Subject, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "redeeming store item")
	}
	return ctx.JSON(http.StatusOK, rd)
}
