package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/VarunPasupunuri/mind-sprouts/core"
	"github.com/VarunPasupunuri/mind-sprouts/core/assignment"
	"github.com/VarunPasupunuri/mind-sprouts/core/challenge"
	"github.com/VarunPasupunuri/mind-sprouts/core/game"
	"github.com/VarunPasupunuri/mind-sprouts/core/learn"
	"github.com/VarunPasupunuri/mind-sprouts/core/notification"
	"github.com/VarunPasupunuri/mind-sprouts/core/reward"
	"github.com/VarunPasupunuri/mind-sprouts/core/user"
)

var (
	errUnauthorized         = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errAuthenticationFailed = echo.NewHTTPError(http.StatusBadRequest, "authentication failed")
	errAccountDeactivated   = echo.NewHTTPError(http.StatusForbidden, "account deactivated")
	errRefreshExpired       = echo.NewHTTPError(http.StatusForbidden, "refresh has expired")
	errHttpForbidden        = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errHttpNotFound         = echo.NewHTTPError(http.StatusNotFound, "not found")
)

// sentinelHTTPError maps known domain errors to client responses so handlers
// can return service errors as-is.
func sentinelHTTPError(err error) *echo.HTTPError {
	switch err {
	case user.ErrNotFound, challenge.ErrNotFound, challenge.ErrItemNotFound,
		assignment.ErrNotFound, reward.ErrNotFound, notification.ErrNotFound:
		return errHttpNotFound
	case user.ErrInsufficientPoints:
		return echo.NewHTTPError(http.StatusBadRequest, "not enough points")
	case challenge.ErrItemLocked:
		return echo.NewHTTPError(http.StatusBadRequest, "item not unlocked yet")
	case game.ErrUnknownDifficulty:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown difficulty")
	case learn.ErrPointsOutOfRange:
		return echo.NewHTTPError(http.StatusBadRequest, "content points out of range")
	case assignment.ErrAlreadySubmitted:
		return echo.NewHTTPError(http.StatusConflict, "assignment already submitted")
	case assignment.ErrAlreadyApproved:
		return echo.NewHTTPError(http.StatusConflict, "assignment already approved")
	case assignment.ErrNotSubmitted:
		return echo.NewHTTPError(http.StatusConflict, "assignment not submitted")
	case user.ErrAccountDeactivated:
		return errAccountDeactivated
	}
	return nil
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
				message = origErr.Message
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(core.Translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		default:
			if herr := sentinelHTTPError(errors.Cause(err)); herr != nil {
				code = herr.Code
				message = herr.Message
				break
			}

			// any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg

			var usr user.User
			if claims, cErr := getContextClaims(ctx); cErr == nil {
				usr.ID = claims.Subject
				usr.Username = claims.Username
				usr.Email = claims.Email
			}
			logger.Error(msg, errors.Wrap(err, msg), usr)

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		} else if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
