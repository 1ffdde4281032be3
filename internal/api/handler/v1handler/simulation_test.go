package v1handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"armsim/internal/api/handler/v1handler"
	"armsim/internal/simulator"
	mocksimulator "armsim/internal/simulator/mock"
	"armsim/pkg/domain"
	"armsim/pkg/kinematics"
	"armsim/pkg/serrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testAPI struct {
	sim    *mocksimulator.MockSimulator
	mux    *http.ServeMux
	token  string
	userID domain.UserID
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	ctrl := gomock.NewController(t)
	sim := mocksimulator.NewMockSimulator(ctrl)

	priv, pubPEM := genRSAKeys(t)
	uid := uuid.New()
	now := time.Now()

	mux := http.NewServeMux()
	v1handler.New(v1handler.Deps{Simulator: sim}).Register(mux, newSecHandlerForTest(t, pubPEM))

	return &testAPI{
		sim:    sim,
		mux:    mux,
		token:  signJWTRS256(t, priv, uid.String(), now, now.Add(time.Hour)),
		userID: domain.UserID(uid),
	}
}

func (a *testAPI) do(t *testing.T, method, path, body string, auth bool) *http.Response {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if auth {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	rec := httptest.NewRecorder()
	a.mux.ServeHTTP(rec, req)

	return rec.Result()
}

func decodeJSON(t *testing.T, res *http.Response) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))

	return out
}

func forwardSim(userID domain.UserID) *domain.Simulation {
	links := kinematics.LinkLengths{A1: 2, A2: 3}
	angles := kinematics.JointAngles{Theta1: kinematics.Radians(45), Theta2: kinematics.Radians(45)}

	return &domain.Simulation{
		ID:        domain.SimulationID(uuid.New()),
		UserID:    userID,
		Mode:      domain.ModeForward,
		Links:     links,
		Angles:    angles,
		Pose:      kinematics.Forward(angles, links),
		Status:    domain.RenderStatusPending,
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCreateForwardSimulation(t *testing.T) {
	api := newTestAPI(t)
	sim := forwardSim(api.userID)

	api.sim.EXPECT().Forward(gomock.Any(), api.userID, simulator.ForwardRequest{
		A1: 2, A2: 3, Theta1Deg: 45, Theta2Deg: 45,
	}).Return(sim, nil)

	res := api.do(t, http.MethodPost, "/v1/simulations/forward",
		`{"a1": 2, "a2": 3, "theta1": 45, "theta2": 45, "ignored": [1, 2]}`, true)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	require.Equal(t, "application/json", res.Header.Get("Content-Type"))

	body := decodeJSON(t, res)
	require.Equal(t, uuid.UUID(sim.ID).String(), body["id"])
	require.Equal(t, "FORWARD", body["mode"])
	require.Equal(t, "End Effector Position: x = 2.12, y = 4.12", body["report"])
	require.Equal(t, "PENDING", body["renderStatus"])
	require.Equal(t, "2025-03-01T12:00:00Z", body["createdAt"])
	require.NotContains(t, body, "target")
	require.NotContains(t, body, "updatedAt")

	angles := body["angles"].(map[string]any)
	require.InDelta(t, 45.0, angles["theta1"], 1e-9)
	end := body["pose"].(map[string]any)["endEffector"].(map[string]any)
	require.InDelta(t, 2.1213203435596424, end["x"], 1e-12)
}

func TestCreateForwardSimulation_BadBodies(t *testing.T) {
	api := newTestAPI(t)

	for name, body := range map[string]string{
		"empty":         "",
		"not json":      "{",
		"missing field": `{"a1": 2, "a2": 3, "theta1": 45}`,
		"string number": `{"a1": "2", "a2": 3, "theta1": 45, "theta2": 0}`,
	} {
		t.Run(name, func(t *testing.T) {
			res := api.do(t, http.MethodPost, "/v1/simulations/forward", body, true)
			require.Equal(t, http.StatusBadRequest, res.StatusCode)
			require.Equal(t, "BAD_REQUEST", decodeJSON(t, res)["code"])
		})
	}
}

func TestCreateInverseSimulation(t *testing.T) {
	api := newTestAPI(t)
	target := kinematics.Position2D{X: 2, Y: 2}
	links := kinematics.LinkLengths{A1: 2, A2: 3}
	angles, err := kinematics.InverseBranch(target, links, kinematics.ElbowDown)
	require.NoError(t, err)

	api.sim.EXPECT().Inverse(gomock.Any(), api.userID, simulator.InverseRequest{
		A1: 2, A2: 3, X: 2, Y: 2, Branch: kinematics.ElbowDown,
	}).Return(&domain.Simulation{
		ID:     domain.SimulationID(uuid.New()),
		Mode:   domain.ModeInverse,
		Links:  links,
		Angles: angles,
		Target: &target,
		Branch: kinematics.ElbowDown,
		Pose:   kinematics.Forward(angles, links),
		Status: domain.RenderStatusPending,
	}, nil)

	res := api.do(t, http.MethodPost, "/v1/simulations/inverse",
		`{"a1": 2, "a2": 3, "x": 2, "y": 2, "branch": "elbow_down"}`, true)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	body := decodeJSON(t, res)
	require.Equal(t, "INVERSE", body["mode"])
	require.Equal(t, "ELBOW_DOWN", body["branch"])
	require.Equal(t, false, body["innerBoundViolation"])
	require.Contains(t, body["report"], "Joint 1 Angle (Theta1):")
	require.Contains(t, body["report"], "\nJoint 2 Angle (Theta2): -")
}

func TestCreateInverseSimulation_Unreachable(t *testing.T) {
	api := newTestAPI(t)

	api.sim.EXPECT().Inverse(gomock.Any(), api.userID, gomock.Any()).
		Return(nil, serrors.With(kinematics.ErrUnreachableTarget, kinematics.UnreachableMessage))

	res := api.do(t, http.MethodPost, "/v1/simulations/inverse", `{"a1": 2, "a2": 3, "x": 10, "y": 10}`, true)
	require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	body := decodeJSON(t, res)
	require.Equal(t, "UNREACHABLE_TARGET", body["code"])
	require.Equal(t, "Target is out of reach", body["message"])
}

func TestCreateInverseSimulation_InvalidBranch(t *testing.T) {
	api := newTestAPI(t)

	res := api.do(t, http.MethodPost, "/v1/simulations/inverse",
		`{"a1": 2, "a2": 3, "x": 1, "y": 1, "branch": "sideways"}`, true)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestAuthRequired(t *testing.T) {
	api := newTestAPI(t)

	res := api.do(t, http.MethodGet, "/v1/simulations", "", false)
	require.Equal(t, http.StatusUnauthorized, res.StatusCode)
	require.Equal(t, "UNAUTHORIZED", decodeJSON(t, res)["code"])

	req := httptest.NewRequest(http.MethodGet, "/v1/simulations", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	api.mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListSimulations(t *testing.T) {
	api := newTestAPI(t)
	sim := forwardSim(api.userID)

	api.sim.EXPECT().Simulations(gomock.Any(), api.userID, domain.ModeForward, "2025-03-01T12:00:00Z_0f8fad5b-d9cb-469f-a165-70867728950e", uint(2)).
		Return([]domain.Simulation{*sim}, "2025-03-01T11:00:00Z_7c9e6679-7425-40de-944b-e07fc1f90ae7", nil)

	res := api.do(t, http.MethodGet, "/v1/simulations?mode=FORWARD&cursor=2025-03-01T12:00:00Z_0f8fad5b-d9cb-469f-a165-70867728950e&limit=2", "", true)
	require.Equal(t, http.StatusOK, res.StatusCode)
	body := decodeJSON(t, res)
	require.Len(t, body["items"], 1)
	require.Equal(t, "2025-03-01T11:00:00Z_7c9e6679-7425-40de-944b-e07fc1f90ae7", body["nextCursor"])

	api.sim.EXPECT().Simulations(gomock.Any(), api.userID, domain.Mode(""), "", uint(0)).Return(nil, "", nil)
	res = api.do(t, http.MethodGet, "/v1/simulations", "", true)
	require.Equal(t, http.StatusOK, res.StatusCode)
	body = decodeJSON(t, res)
	require.Empty(t, body["items"])
	require.Nil(t, body["nextCursor"])

	res = api.do(t, http.MethodGet, "/v1/simulations?limit=-1", "", true)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestGetSimulation(t *testing.T) {
	api := newTestAPI(t)
	sim := forwardSim(api.userID)

	api.sim.EXPECT().Result(gomock.Any(), api.userID, sim.ID).Return(sim, nil)
	res := api.do(t, http.MethodGet, "/v1/simulations/"+uuid.UUID(sim.ID).String(), "", true)
	require.Equal(t, http.StatusOK, res.StatusCode)

	missing := domain.SimulationID(uuid.New())
	api.sim.EXPECT().Result(gomock.Any(), api.userID, missing).
		Return(nil, serrors.With(serrors.ErrNotFound, "simulation not found"))
	res = api.do(t, http.MethodGet, "/v1/simulations/"+uuid.UUID(missing).String(), "", true)
	require.Equal(t, http.StatusNotFound, res.StatusCode)
	require.Equal(t, "simulation not found", decodeJSON(t, res)["message"])

	res = api.do(t, http.MethodGet, "/v1/simulations/not-a-uuid", "", true)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestGetSimulationRendering(t *testing.T) {
	api := newTestAPI(t)
	id := domain.SimulationID(uuid.New())
	path := "/v1/simulations/" + uuid.UUID(id).String() + "/render.svg"

	api.sim.EXPECT().Rendering(gomock.Any(), api.userID, id).Return([]byte("<svg/>"), nil)
	res := api.do(t, http.MethodGet, path, "", true)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "image/svg+xml", res.Header.Get("Content-Type"))
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.Equal(t, "<svg/>", string(b))

	api.sim.EXPECT().Rendering(gomock.Any(), api.userID, id).
		Return(nil, serrors.With(serrors.ErrUnavailable, "rendering is pending"))
	res = api.do(t, http.MethodGet, path, "", true)
	require.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
}

func TestDeleteSimulation(t *testing.T) {
	api := newTestAPI(t)
	id := domain.SimulationID(uuid.New())

	api.sim.EXPECT().Delete(gomock.Any(), api.userID, id).Return(nil)
	res := api.do(t, http.MethodDelete, "/v1/simulations/"+uuid.UUID(id).String(), "", true)
	require.Equal(t, http.StatusNoContent, res.StatusCode)
}

func TestRenderForward_NoAuth(t *testing.T) {
	api := newTestAPI(t)

	api.sim.EXPECT().PreviewForward(gomock.Any(), simulator.ForwardRequest{A1: 1, A2: 1, Theta1Deg: 90, Theta2Deg: 0}).
		Return([]byte("<svg/>"), nil)

	res := api.do(t, http.MethodPost, "/v1/render/forward", `{"a1":1,"a2":1,"theta1":90,"theta2":0}`, false)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "image/svg+xml", res.Header.Get("Content-Type"))
}

func TestRequestBodyTooLarge(t *testing.T) {
	api := newTestAPI(t)

	body := `{"a1": 1, "pad": "` + strings.Repeat("x", 1<<17) + `"}`
	res := api.do(t, http.MethodPost, "/v1/render/forward", body, false)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}
