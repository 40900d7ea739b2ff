package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/VarunPasupunuri/mind-sprouts/core"
	"github.com/VarunPasupunuri/mind-sprouts/core/challenge"
	"github.com/VarunPasupunuri/mind-sprouts/core/user"
	chatsvc "github.com/VarunPasupunuri/mind-sprouts/services/chat"
)

// fallbackTip is served whenever the LLM provider is down or unconfigured.
const fallbackTip = "Small habits add up: carry a reusable bottle today and skip one single-use plastic."

type tipsApi struct {
	svc  *chatsvc.TipService
	chls *challenge.Service
	usrs *user.Service
}

func registerTipsAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *chatsvc.TipService,
	chls *challenge.Service,
	usrs *user.Service,
) {
	api := tipsApi{svc: svc, chls: chls, usrs: usrs}
	g.GET("/tips", api.tip, jwt)
}

func (api *tipsApi) tip(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrs)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	if api.svc == nil {
		return ctx.JSON(http.StatusOK, TipResponse{Tip: fallbackTip, Generated: false})
	}

	chls, err := api.chls.QueryAll(usr.ID)
	if err != nil {
		return errors.Wrap(err, "querying challenges")
	}
	var completed []string
	for _, c := range chls {
		if c.Completed {
			completed = append(completed, c.Title)
		}
	}
	goal := core.CleanString(ctx.QueryParam("goal"))

	tip, err := api.svc.GenerateTip(ctx.Request().Context(), usr.Name, completed, goal)
	if err != nil {
		if errors.Cause(err) == chatsvc.ErrUnavailable {
			return ctx.JSON(http.StatusOK, TipResponse{Tip: fallbackTip, Generated: false})
		}
		return errors.Wrap(err, "generating tip")
	}
	return ctx.JSON(http.StatusOK, TipResponse{Tip: tip, Generated: true})
}

type TipResponse struct {
	Tip       string `json:"tip"`
	Generated bool   `json:"generated"`
}
