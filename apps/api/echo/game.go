package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/VarunPasupunuri/mind-sprouts/core"
	"github.com/VarunPasupunuri/mind-sprouts/core/game"
)

type gameApi struct {
	svc *game.Service
}

func registerGameAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *game.Service) {
	api := gameApi{svc: svc}

	gg := g.Group("/games", jwt)
	gg.GET("/scores", api.scores)
	gg.POST("/:id/score", api.updateScore)
}

func (api *gameApi) scores(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	scores, err := api.svc.Scores(claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying high scores")
	}
	if scores == nil {
		scores = []game.HighScore{}
	}
	return ctx.JSON(http.StatusOK, scores)
}

func (api *gameApi) updateScore(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data game.ScoreUpdate
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ScoreUpdate")
	}
	if err = core.Validate.Struct(&data); err != nil {
		return err
	}

	hs, improved, err := api.svc.UpdateHighScore(claims.Subject, ctx.Param("id"), data.Difficulty, data.Score)
	if err != nil {
		return errors.Wrap(err, "updating high score")
	}
	return ctx.JSON(http.StatusOK, ScoreResponse{HighScore: hs, Improved: improved})
}

type ScoreResponse struct {
	game.HighScore
	Improved bool `json:"improved"`
}
