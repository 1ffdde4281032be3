// Package v1handler implements the v1 HTTP API of the simulator.
package v1handler

import (
	"context"
	"errors"
	"net/http"

	"armsim/internal/simulator"
	"armsim/pkg/kinematics"
	"armsim/pkg/logger"
	"armsim/pkg/serrors"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// Deps are the services the handlers delegate to.
type Deps struct {
	Simulator simulator.Simulator
}

// Handler serves the v1 routes.
type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Register mounts every v1 route on mux. Routes other than the stateless
// preview require a bearer token verified by sec.
func (h *Handler) Register(mux *http.ServeMux, sec *SecHandler) {
	auth := func(f http.HandlerFunc) http.Handler { return sec.Middleware(h, f) }

	mux.Handle("POST /v1/simulations/forward", auth(h.CreateForwardSimulation))
	mux.Handle("POST /v1/simulations/inverse", auth(h.CreateInverseSimulation))
	mux.Handle("GET /v1/simulations", auth(h.ListSimulations))
	mux.Handle("GET /v1/simulations/{id}", auth(h.GetSimulation))
	mux.Handle("GET /v1/simulations/{id}/render.svg", auth(h.GetSimulationRendering))
	mux.Handle("DELETE /v1/simulations/{id}", auth(h.DeleteSimulation))

	mux.HandleFunc("POST /v1/render/forward", h.RenderForward)
}

// Error is the body of every error response.
type Error struct {
	Code    string
	Message string
}

// ErrorStatusCode couples an error body with its HTTP status.
type ErrorStatusCode struct {
	StatusCode int
	Response   Error
}

var defaultMessages = map[serrors.Kind]string{ //nolint: gochecknoglobals
	serrors.ErrNotFound:             "resource not found",
	serrors.ErrUnauthorized:         "unauthorized",
	serrors.ErrBadRequest:           "bad request",
	serrors.ErrUnprocessable:        "unprocessable request",
	serrors.ErrUnavailable:          "service unavailable",
	kinematics.ErrUnreachableTarget: kinematics.UnreachableMessage,
}

var statusCodes = map[serrors.Kind]int{ //nolint: gochecknoglobals
	serrors.ErrNotFound:             http.StatusNotFound,
	serrors.ErrUnauthorized:         http.StatusUnauthorized,
	serrors.ErrBadRequest:           http.StatusBadRequest,
	serrors.ErrUnprocessable:        http.StatusUnprocessableEntity,
	serrors.ErrUnavailable:          http.StatusServiceUnavailable,
	kinematics.ErrUnreachableTarget: http.StatusUnprocessableEntity,
}

// NewError maps err to an HTTP error response. Errors without a known kind
// are reported as internal errors and their text is only logged.
func (h *Handler) NewError(ctx context.Context, err error) *ErrorStatusCode {
	kind := serrors.KindOf(err)
	status, known := statusCodes[kind]
	if !known {
		logger.Error(ctx, "internal error", zap.Error(err))

		return &ErrorStatusCode{
			StatusCode: http.StatusInternalServerError,
			Response: Error{
				Code:    serrors.ErrInternal.Error(),
				Message: "internal error",
			},
		}
	}

	logger.Debug(ctx, "request failed", zap.Error(err), zap.Int("status", status))

	msg := serrors.MessageOf(err)
	if msg == "" {
		msg = defaultMessages[kind]
	}

	return &ErrorStatusCode{
		StatusCode: status,
		Response: Error{
			Code:    kind.Error(),
			Message: msg,
		},
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		err = serrors.Wrap(serrors.ErrBadRequest, err, "request body too large")
	}

	res := h.NewError(r.Context(), err)

	var e jx.Encoder
	encodeError(&e, res.Response)
	writeBody(w, res.StatusCode, "application/json", e.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, encode func(e *jx.Encoder)) {
	var e jx.Encoder
	encode(&e)
	writeBody(w, status, "application/json", e.Bytes())
}

func writeBody(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
