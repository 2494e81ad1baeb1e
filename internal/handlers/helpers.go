package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yukikurage/onestep-api/internal/dto"
	apierrors "github.com/yukikurage/onestep-api/internal/errors"
	"github.com/yukikurage/onestep-api/internal/middleware"
	"github.com/yukikurage/onestep-api/internal/ordering"
	"github.com/yukikurage/onestep-api/internal/rank"
	"github.com/yukikurage/onestep-api/internal/services"
)

// requireUserID returns the authenticated user or answers 401.
func requireUserID(c *gin.Context) (uint64, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return 0, false
	}
	return userID, true
}

// parseIDParam reads a numeric path parameter or answers 400.
func parseIDParam(c *gin.Context, name, label string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+label+" ID")
		return 0, false
	}
	return id, true
}

// optionalDate turns a nullable JSON date into the (value, clear) pair the services take.
func optionalDate(opt dto.Optional[string]) (*time.Time, bool, error) {
	if !opt.Set {
		return nil, false, nil
	}
	if opt.Value == nil {
		return nil, true, nil
	}
	date, err := dto.ParseDate(opt.Value)
	return date, false, err
}

func optionalString(opt dto.Optional[string]) (*string, bool) {
	if !opt.Set {
		return nil, false
	}
	return opt.Value, opt.Value == nil
}

func toMoveInput(req *dto.RankMoveRequest) *services.MoveInput {
	if req == nil {
		return nil
	}
	return &services.MoveInput{PrevID: req.PrevID, NextID: req.NextID}
}

// respondOrderingError answers the rank and move failures shared by every
// ordered entity. It reports whether err was one of them.
func respondOrderingError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, ordering.ErrAmbiguousMove),
		errors.Is(err, ordering.ErrSelfAnchor):
		apierrors.RespondWithError(c, http.StatusBadRequest, apierrors.NewAPIError(apierrors.ErrCodeInvalidMove, err.Error()))
	case errors.Is(err, rank.ErrInvalidRange):
		apierrors.RespondWithError(c, http.StatusBadRequest, apierrors.NewAPIError(apierrors.ErrCodeInvalidMove, "prev_id must be ranked before next_id"))
	case errors.Is(err, ordering.ErrRankCollision),
		errors.Is(err, rank.ErrNoRoomBetween):
		apierrors.RespondWithError(c, http.StatusConflict, apierrors.NewAPIError(apierrors.ErrCodeRankConflict, "Could not place the item, please retry"))
	case errors.Is(err, rank.ErrMalformedRank),
		errors.Is(err, ordering.ErrOrderViolation):
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("stored ranks are inconsistent")
		apierrors.RespondWithError(c, http.StatusInternalServerError, apierrors.NewAPIError(apierrors.ErrCodeRankCorrupted, "Stored order is inconsistent"))
	default:
		return false
	}
	return true
}

// respondValidationError answers the field validation failures shared by todos and subtodos.
func respondValidationError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, services.ErrContentRequired),
		errors.Is(err, services.ErrContentTooLong),
		errors.Is(err, services.ErrInvalidDueTime):
		apierrors.BadRequest(c, err.Error())
	default:
		return false
	}
	return true
}

func respondInternalError(c *gin.Context, err error) {
	zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("request failed")
	apierrors.InternalError(c, "Internal server error")
}
