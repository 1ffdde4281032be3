package v1handler

import (
	"io"
	"net/http"
	"time"

	"armsim/internal/simulator"
	"armsim/pkg/domain"
	"armsim/pkg/kinematics"
	"armsim/pkg/serrors"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/google/uuid"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 16

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.Wrap(err, "read body")
	}

	return body, nil
}

// decodeFields decodes a flat JSON object of numbers (and the optional
// string fields listed in strs). Every name in required must be present.
func decodeFields(body []byte, required []string, strs map[string]*string) (map[string]float64, error) {
	nums := make(map[string]float64, len(required))
	known := make(map[string]bool, len(required))
	for _, name := range required {
		known[name] = true
	}

	d := jx.DecodeBytes(body)
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		name := string(key)
		if dst, ok := strs[name]; ok {
			s, err := d.Str()
			if err != nil {
				return errors.Wrapf(err, "decode %q", name)
			}
			*dst = s

			return nil
		}
		if !known[name] {
			return d.Skip() //nolint: wrapcheck
		}

		v, err := d.Float64()
		if err != nil {
			return errors.Wrapf(err, "decode %q", name)
		}
		nums[name] = v

		return nil
	}); err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid JSON body")
	}

	for _, name := range required {
		if _, ok := nums[name]; !ok {
			return nil, serrors.With(serrors.ErrBadRequest, "missing field %q", name)
		}
	}

	return nums, nil
}

// DecodeForwardRequest decodes {"a1", "a2", "theta1", "theta2"}; angles are
// in degrees.
func DecodeForwardRequest(body []byte) (simulator.ForwardRequest, error) {
	f, err := decodeFields(body, []string{"a1", "a2", "theta1", "theta2"}, nil)
	if err != nil {
		return simulator.ForwardRequest{}, err
	}

	return simulator.ForwardRequest{
		A1:        f["a1"],
		A2:        f["a2"],
		Theta1Deg: f["theta1"],
		Theta2Deg: f["theta2"],
	}, nil
}

// DecodeInverseRequest decodes {"a1", "a2", "x", "y", "branch"?}.
func DecodeInverseRequest(body []byte) (simulator.InverseRequest, error) {
	var branchName string
	f, err := decodeFields(body, []string{"a1", "a2", "x", "y"}, map[string]*string{"branch": &branchName})
	if err != nil {
		return simulator.InverseRequest{}, err
	}

	branch, err := kinematics.ParseBranch(branchName)
	if err != nil {
		return simulator.InverseRequest{}, serrors.Wrap(serrors.ErrBadRequest, err, "invalid branch")
	}

	return simulator.InverseRequest{
		A1:     f["a1"],
		A2:     f["a2"],
		X:      f["x"],
		Y:      f["y"],
		Branch: branch,
	}, nil
}

func encodeError(e *jx.Encoder, res Error) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("code", func(e *jx.Encoder) { e.Str(res.Code) })
		e.Field("message", func(e *jx.Encoder) { e.Str(res.Message) })
	})
}

// EncodePosition writes p as {"x", "y"}.
func EncodePosition(e *jx.Encoder, p kinematics.Position2D) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("x", func(e *jx.Encoder) { e.Float64(p.X) })
		e.Field("y", func(e *jx.Encoder) { e.Float64(p.Y) })
	})
}

// EncodePose writes the joint positions of pose.
func EncodePose(e *jx.Encoder, pose kinematics.ArmPose) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("base", func(e *jx.Encoder) { EncodePosition(e, pose.Base) })
		e.Field("elbow", func(e *jx.Encoder) { EncodePosition(e, pose.Elbow) })
		e.Field("endEffector", func(e *jx.Encoder) { EncodePosition(e, pose.EndEffector) })
	})
}

// EncodeSimulation writes sim as JSON. Angles are reported in degrees.
func EncodeSimulation(e *jx.Encoder, sim *domain.Simulation) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(uuid.UUID(sim.ID).String()) })
		e.Field("mode", func(e *jx.Encoder) { e.Str(string(sim.Mode)) })
		e.Field("links", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("a1", func(e *jx.Encoder) { e.Float64(sim.Links.A1) })
				e.Field("a2", func(e *jx.Encoder) { e.Float64(sim.Links.A2) })
			})
		})
		e.Field("angles", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("theta1", func(e *jx.Encoder) { e.Float64(kinematics.Degrees(sim.Angles.Theta1)) })
				e.Field("theta2", func(e *jx.Encoder) { e.Float64(kinematics.Degrees(sim.Angles.Theta2)) })
			})
		})
		if sim.Target != nil {
			e.Field("target", func(e *jx.Encoder) { EncodePosition(e, *sim.Target) })
			e.Field("branch", func(e *jx.Encoder) { e.Str(sim.Branch.String()) })
			e.Field("innerBoundViolation", func(e *jx.Encoder) { e.Bool(sim.InnerBoundViolation) })
		}
		e.Field("pose", func(e *jx.Encoder) { EncodePose(e, sim.Pose) })
		e.Field("report", func(e *jx.Encoder) { e.Str(simulator.Report(sim)) })
		e.Field("renderStatus", func(e *jx.Encoder) { e.Str(string(sim.Status)) })
		e.Field("renderAttempts", func(e *jx.Encoder) { e.UInt(sim.Attempts) })
		e.Field("createdAt", func(e *jx.Encoder) { e.Str(sim.CreatedAt.UTC().Format(time.RFC3339Nano)) })
		if !sim.UpdatedAt.IsZero() {
			e.Field("updatedAt", func(e *jx.Encoder) { e.Str(sim.UpdatedAt.UTC().Format(time.RFC3339Nano)) })
		}
	})
}

// EncodeSimulationList writes a page of simulations and its next cursor.
func EncodeSimulationList(e *jx.Encoder, sims []domain.Simulation, nextCursor string) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for i := range sims {
					EncodeSimulation(e, &sims[i])
				}
			})
		})
		e.Field("nextCursor", func(e *jx.Encoder) {
			if nextCursor == "" {
				e.Null()

				return
			}
			e.Str(nextCursor)
		})
	})
}
