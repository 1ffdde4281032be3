package v1handler

import (
	"net/http"
	"strconv"

	"armsim/pkg/domain"
	"armsim/pkg/serrors"

	"github.com/go-faster/jx"
	"github.com/google/uuid"
)

func pathSimulationID(r *http.Request) (domain.SimulationID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return domain.SimulationID{}, serrors.Wrap(serrors.ErrBadRequest, err, "invalid simulation id")
	}

	return domain.SimulationID(id), nil
}

func (h *Handler) writeSimulation(w http.ResponseWriter, status int, sim *domain.Simulation) {
	writeJSON(w, status, func(e *jx.Encoder) { EncodeSimulation(e, sim) })
}

// CreateForwardSimulation solves and stores a forward kinematics request.
func (h *Handler) CreateForwardSimulation(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}
	req, err := DecodeForwardRequest(body)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	sim, err := h.deps.Simulator.Forward(r.Context(), GetUserIDFromContext(r.Context()), req)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	h.writeSimulation(w, http.StatusCreated, sim)
}

// CreateInverseSimulation solves and stores an inverse kinematics request.
func (h *Handler) CreateInverseSimulation(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}
	req, err := DecodeInverseRequest(body)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	sim, err := h.deps.Simulator.Inverse(r.Context(), GetUserIDFromContext(r.Context()), req)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	h.writeSimulation(w, http.StatusCreated, sim)
}

// ListSimulations returns a page of the caller's simulations. Query
// parameters: mode, cursor, limit.
func (h *Handler) ListSimulations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var limit uint64
	if s := q.Get("limit"); s != "" {
		var err error
		if limit, err = strconv.ParseUint(s, 10, 32); err != nil {
			h.writeError(w, r, serrors.Wrap(serrors.ErrBadRequest, err, "invalid limit"))

			return
		}
	}

	sims, next, err := h.deps.Simulator.Simulations(r.Context(),
		GetUserIDFromContext(r.Context()),
		domain.Mode(q.Get("mode")),
		q.Get("cursor"),
		uint(limit))
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { EncodeSimulationList(e, sims, next) })
}

// GetSimulation returns one of the caller's simulations.
func (h *Handler) GetSimulation(w http.ResponseWriter, r *http.Request) {
	id, err := pathSimulationID(r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	sim, err := h.deps.Simulator.Result(r.Context(), GetUserIDFromContext(r.Context()), id)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	h.writeSimulation(w, http.StatusOK, sim)
}

// GetSimulationRendering returns the SVG drawing of one of the caller's simulations.
func (h *Handler) GetSimulationRendering(w http.ResponseWriter, r *http.Request) {
	id, err := pathSimulationID(r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	svg, err := h.deps.Simulator.Rendering(r.Context(), GetUserIDFromContext(r.Context()), id)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeBody(w, http.StatusOK, "image/svg+xml", svg)
}

// DeleteSimulation deletes one of the caller's simulations.
func (h *Handler) DeleteSimulation(w http.ResponseWriter, r *http.Request) {
	id, err := pathSimulationID(r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	if err := h.deps.Simulator.Delete(r.Context(), GetUserIDFromContext(r.Context()), id); err != nil {
		h.writeError(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RenderForward draws a forward kinematics request without storing it.
func (h *Handler) RenderForward(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}
	req, err := DecodeForwardRequest(body)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	svg, err := h.deps.Simulator.PreviewForward(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeBody(w, http.StatusOK, "image/svg+xml", svg)
}
