package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-voiceid/internal/adapter/dto/duplicate"
	"github.com/johnquangdev/meeting-voiceid/internal/adapter/presenter"
)

// Duplicate handles duplicate profile review
type Duplicate struct {
	service DuplicateService
	logger  *zap.Logger
}

// NewDuplicateHandler creates a new duplicate handler
func NewDuplicateHandler(service DuplicateService, logger *zap.Logger) *Duplicate {
	return &Duplicate{service: service, logger: logger}
}

// Scan handles GET /duplicates
// @Summary      Scan for duplicate profiles
// @Description  Compares every unmerged profile pairwise and returns candidates, best first
// @Tags         Duplicates
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.SuccessResponse{data=duplicate.CandidateListResponse}
// @Failure      500  {object}  common.ErrorResponse
// @Router       /duplicates [get]
func (h *Duplicate) Scan(c echo.Context) error {
	candidates, err := h.service.Scan(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToCandidateListResponse(candidates))
}

// Compare handles POST /duplicates/compare
// @Summary      Compare profiles
// @Description  Scores a group of profiles against the first one and lists field conflicts
// @Tags         Duplicates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      duplicate.CompareRequest  true  "Voice ids, primary first"
// @Success      200      {object}  common.SuccessResponse{data=duplicate.CandidateResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse  "Profile not found"
// @Router       /duplicates/compare [post]
func (h *Duplicate) Compare(c echo.Context) error {
	var req duplicate.CompareRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	candidate, err := h.service.Compare(c.Request().Context(), req.VoiceIDs)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToCandidateResponse(candidate))
}

// Merge handles POST /duplicates/merge
// @Summary      Merge profiles
// @Description  Folds the secondaries into the first profile. Every conflict needs a resolution.
// @Tags         Duplicates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      duplicate.MergeRequest  true  "Voice ids and conflict resolutions"
// @Success      200      {object}  common.SuccessResponse{data=duplicate.MergeResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      409      {object}  common.ErrorResponse  "Unresolved conflicts or profile already merged"
// @Failure      502      {object}  common.ErrorResponse  "Merge could not be persisted"
// @Router       /duplicates/merge [post]
func (h *Duplicate) Merge(c echo.Context) error {
	var req duplicate.MergeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.service.Merge(c.Request().Context(), req.VoiceIDs, presenter.ToResolutions(req.Resolutions))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMergeResponse(result))
}
