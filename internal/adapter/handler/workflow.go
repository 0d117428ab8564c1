package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-voiceid/errors"
	"github.com/johnquangdev/meeting-voiceid/internal/adapter/dto/workflow"
	"github.com/johnquangdev/meeting-voiceid/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
	wfUsecase "github.com/johnquangdev/meeting-voiceid/internal/usecase/workflow"
)

// defaultSessionSize is used when a start request gives no limit
const defaultSessionSize = 20

// Workflow handles identification sessions
type Workflow struct {
	service WorkflowService
	logger  *zap.Logger
}

// NewWorkflowHandler creates a new workflow handler
func NewWorkflowHandler(service WorkflowService, logger *zap.Logger) *Workflow {
	return &Workflow{service: service, logger: logger}
}

// Start handles POST /workflow/sessions
// @Summary      Start an identification session
// @Description  Queues up to limit pending identification requests, oldest first
// @Tags         Workflow
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      workflow.StartSessionRequest  false  "Session size"
// @Success      201      {object}  common.SuccessResponse{data=workflow.SessionResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Router       /workflow/sessions [post]
func (h *Workflow) Start(c echo.Context) error {
	var req workflow.StartSessionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	limit := req.Limit
	if limit == 0 {
		limit = defaultSessionSize
	}

	session, err := h.service.Start(c.Request().Context(), limit)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToSessionResponse(session))
}

// Get handles GET /workflow/sessions/:id
// @Summary      Get session state
// @Tags         Workflow
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  common.SuccessResponse{data=workflow.SessionResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Router       /workflow/sessions/{id} [get]
func (h *Workflow) Get(c echo.Context) error {
	return h.navigate(c, h.service.Get)
}

// UpdateForm handles PATCH /workflow/sessions/:id/form
// @Summary      Update the identification form
// @Description  Only the fields present are changed. Selecting a suggestion or profile switches the method.
// @Tags         Workflow
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                      true  "Session id"
// @Param        request  body      workflow.UpdateFormRequest  true  "Form changes"
// @Success      200      {object}  common.SuccessResponse{data=workflow.SessionResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse
// @Failure      409      {object}  common.ErrorResponse  "Session finished"
// @Router       /workflow/sessions/{id}/form [patch]
func (h *Workflow) UpdateForm(c echo.Context) error {
	var req workflow.UpdateFormRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("session id must be a valid UUID"))
	}

	session, err := h.service.UpdateForm(c.Request().Context(), id, presenter.ToFormInput(&req))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(session))
}

// Next handles POST /workflow/sessions/:id/next
// @Summary      Go to the next step
// @Tags         Workflow
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  common.SuccessResponse{data=workflow.SessionResponse}
// @Failure      409  {object}  common.ErrorResponse  "No next step"
// @Router       /workflow/sessions/{id}/next [post]
func (h *Workflow) Next(c echo.Context) error {
	return h.navigate(c, h.service.Next)
}

// Back handles POST /workflow/sessions/:id/back
// @Summary      Go to the previous step
// @Tags         Workflow
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  common.SuccessResponse{data=workflow.SessionResponse}
// @Failure      409  {object}  common.ErrorResponse  "No previous step"
// @Router       /workflow/sessions/{id}/back [post]
func (h *Workflow) Back(c echo.Context) error {
	return h.navigate(c, h.service.Back)
}

// Submit handles POST /workflow/sessions/:id/submit
// @Summary      Submit the current decision
// @Description  Records identified, or skipped when the form names nobody, and moves to the next request
// @Tags         Workflow
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  common.SuccessResponse{data=workflow.TransitionResponse}
// @Failure      409  {object}  common.ErrorResponse  "Not allowed at this step"
// @Failure      502  {object}  common.ErrorResponse  "Decision recorded but not persisted"
// @Router       /workflow/sessions/{id}/submit [post]
func (h *Workflow) Submit(c echo.Context) error {
	return h.transition(c, h.service.Submit)
}

// Skip handles POST /workflow/sessions/:id/skip
// @Summary      Skip the current request
// @Tags         Workflow
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  common.SuccessResponse{data=workflow.TransitionResponse}
// @Failure      409  {object}  common.ErrorResponse  "Step cannot be skipped"
// @Router       /workflow/sessions/{id}/skip [post]
func (h *Workflow) Skip(c echo.Context) error {
	return h.transition(c, h.service.Skip)
}

// Defer handles POST /workflow/sessions/:id/defer
// @Summary      Decide later
// @Tags         Workflow
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  common.SuccessResponse{data=workflow.TransitionResponse}
// @Failure      409  {object}  common.ErrorResponse  "Session finished"
// @Router       /workflow/sessions/{id}/defer [post]
func (h *Workflow) Defer(c echo.Context) error {
	return h.transition(c, h.service.Defer)
}

func (h *Workflow) sessionID(c echo.Context) (uuid.UUID, error) {
	var req workflow.SessionIDRequest
	if err := bindAndValidate(c, &req); err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument("session id must be a valid UUID")
	}
	return id, nil
}

func (h *Workflow) navigate(c echo.Context, fn func(uuid.UUID) (*wfUsecase.Session, error)) error {
	id, err := h.sessionID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	session, err := fn(id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(session))
}

type transitionFunc func(context.Context, uuid.UUID) (*wfUsecase.Session, *entities.IdentificationResult, error)

func (h *Workflow) transition(c echo.Context, fn transitionFunc) error {
	id, err := h.sessionID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	session, result, err := fn(c.Request().Context(), id)
	if err != nil {
		// the session has advanced even when persisting failed
		if session != nil {
			err = errors.FromDomain(err).WithDetail("session_id", session.ID.String())
		}
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTransitionResponse(session, result))
}
