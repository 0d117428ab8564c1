package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-voiceid/errors"
	"github.com/johnquangdev/meeting-voiceid/internal/adapter/dto/history"
	"github.com/johnquangdev/meeting-voiceid/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
)

const exportFileName = "identification-history.csv"

// History handles the decision ledger
type History struct {
	service HistoryService
	logger  *zap.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(service HistoryService, logger *zap.Logger) *History {
	return &History{service: service, logger: logger}
}

// List handles GET /history
// @Summary      List history entries
// @Description  Oldest first, capped to the newest limit entries. limit=0 returns everything.
// @Tags         History
// @Produce      json
// @Security     BearerAuth
// @Param        kind   query     string  false  "identification or merge"
// @Param        limit  query     int     false  "Maximum entries"
// @Success      200    {object}  common.SuccessResponse{data=history.EntryListResponse}
// @Failure      400    {object}  common.ErrorResponse
// @Router       /history [get]
func (h *History) List(c echo.Context) error {
	var req history.ListHistoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	var kind *entities.EntryKind
	if req.Kind != nil {
		k := entities.EntryKind(*req.Kind)
		kind = &k
	}
	return HandleSuccess(h.logger, c, presenter.ToEntryListResponse(h.service.Entries(kind, req.Limit)))
}

// Stats handles GET /history/stats
// @Summary      History statistics
// @Tags         History
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.SuccessResponse{data=history.StatsResponse}
// @Router       /history/stats [get]
func (h *History) Stats(c echo.Context) error {
	return HandleSuccess(h.logger, c, presenter.ToStatsResponse(h.service.Stats()))
}

// Export handles GET /history/export
// @Summary      Export history
// @Description  Flat rows: timestamp, speaker, meeting, action, method, user, confidence
// @Tags         History
// @Produce      text/csv
// @Produce      json
// @Security     BearerAuth
// @Param        format  query     string  false  "csv (default) or json"
// @Success      200     {string}  string  "CSV document"
// @Failure      400     {object}  common.ErrorResponse
// @Router       /history/export [get]
func (h *History) Export(c echo.Context) error {
	var req history.ExportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	rows := h.service.Export()
	if req.Format == "json" {
		return HandleSuccess(h.logger, c, rows)
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	res.Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+exportFileName+`"`)
	res.WriteHeader(http.StatusOK)
	if err := presenter.WriteCSV(res, rows); err != nil {
		// headers are already sent
		if h.logger != nil {
			h.logger.Error("Failed to write history export", zap.Error(err))
		}
		return err
	}
	return nil
}

// Undo handles POST /history/:id/undo
// @Summary      Undo a history entry
// @Tags         History
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Entry id"
// @Success      200  {object}  common.SuccessResponse{data=history.EntryResponse}
// @Failure      404  {object}  common.ErrorResponse  "Unknown entry"
// @Failure      409  {object}  common.ErrorResponse  "Entry not undoable"
// @Failure      502  {object}  common.ErrorResponse  "Undone but not persisted"
// @Router       /history/{id}/undo [post]
func (h *History) Undo(c echo.Context) error {
	var req history.EntryIDRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("entry id must be a valid UUID"))
	}

	entry, err := h.service.Undo(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToEntryResponse(entry))
}

// Redo handles POST /history/redo
// @Summary      Redo the last undone entry
// @Description  entry is empty when there is nothing to redo
// @Tags         History
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.SuccessResponse{data=history.RedoResponse}
// @Failure      502  {object}  common.ErrorResponse  "Redone but not persisted"
// @Router       /history/redo [post]
func (h *History) Redo(c echo.Context) error {
	entry, err := h.service.Redo(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	resp := history.RedoResponse{}
	if entry != nil {
		e := presenter.ToEntryResponse(entry)
		resp.Entry = &e
	}
	return HandleSuccess(h.logger, c, resp)
}
