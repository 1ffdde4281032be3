// Package lambdafn serves stateless forward and inverse solves behind an API
// Gateway HTTP API. Nothing is stored; the optional drawing is returned inline.
package lambdafn

import (
	"context"
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"

	"armsim/internal/api/handler/v1handler"
	"armsim/internal/config"
	"armsim/internal/simulator"
	"armsim/pkg/domain"
	"armsim/pkg/kinematics"
	"armsim/pkg/logger"
	"armsim/pkg/render"
	"armsim/pkg/serrors"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

const (
	modeForward = "forward"
	modeInverse = "inverse"
)

// Options configures Handler.
type Options struct {
	MaxLinkLength      float64
	ViewportHalfExtent float64
}

// NewOptions reads Options from the application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		MaxLinkLength:      cfg.Simulator.MaxLinkLength,
		ViewportHalfExtent: cfg.Simulator.ViewportHalfExtent,
	}
}

// Handler answers API Gateway v2 HTTP events.
type Handler struct {
	options Options
	errs    *v1handler.Handler
}

// New creates a Handler.
func New(options Options) *Handler {
	if options.MaxLinkLength <= 0 {
		options.MaxLinkLength = simulator.DefaultMaxLinkLength
	}
	if options.ViewportHalfExtent <= 0 {
		options.ViewportHalfExtent = render.DefaultHalfExtent
	}

	return &Handler{
		options: options,
		errs:    v1handler.New(v1handler.Deps{}),
	}
}

// Handle decodes the request body, solves it and encodes the result.
// Failures are returned as JSON error responses, never as Go errors, so API
// Gateway always sees a well-formed reply.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	ctx = logger.WithFields(ctx,
		zap.String("request_id", req.RequestContext.RequestID),
		zap.String("route", req.RouteKey),
	)

	body, err := requestBody(req)
	if err != nil {
		return h.errorResponse(ctx, err), nil
	}

	sim, err := h.solve(body)
	if err != nil {
		return h.errorResponse(ctx, err), nil
	}

	var svg []byte
	if withSVG(req.QueryStringParameters) {
		opts := render.DefaultOptions()
		opts.HalfExtent = h.options.ViewportHalfExtent
		svg, err = render.SVG(simulator.Scene(&sim), opts)
		if err != nil {
			return h.errorResponse(ctx, errors.Wrap(err, "render")), nil
		}
	}

	logger.Info(ctx, "solved", zap.String("mode", string(sim.Mode)), zap.Bool("svg", svg != nil))

	var e jx.Encoder
	encodeSolution(&e, &sim, svg)

	return response(http.StatusOK, e.Bytes()), nil
}

func (h *Handler) solve(body []byte) (domain.Simulation, error) {
	mode, err := decodeMode(body)
	if err != nil {
		return domain.Simulation{}, err
	}

	switch mode {
	case modeForward:
		req, err := v1handler.DecodeForwardRequest(body)
		if err != nil {
			return domain.Simulation{}, err
		}

		return simulator.SolveForward(req, h.options.MaxLinkLength) //nolint: wrapcheck
	case modeInverse:
		req, err := v1handler.DecodeInverseRequest(body)
		if err != nil {
			return domain.Simulation{}, err
		}

		return simulator.SolveInverse(req, h.options.MaxLinkLength) //nolint: wrapcheck
	default:
		return domain.Simulation{}, serrors.With(serrors.ErrBadRequest, "mode must be %q or %q", modeForward, modeInverse)
	}
}

func (h *Handler) errorResponse(ctx context.Context, err error) events.APIGatewayV2HTTPResponse {
	res := h.errs.NewError(ctx, err)

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("code", func(e *jx.Encoder) { e.Str(res.Response.Code) })
		e.Field("message", func(e *jx.Encoder) { e.Str(res.Response.Message) })
	})

	return response(res.StatusCode, e.Bytes())
}

func response(status int, body []byte) events.APIGatewayV2HTTPResponse {
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}

func requestBody(req events.APIGatewayV2HTTPRequest) ([]byte, error) {
	if strings.TrimSpace(req.Body) == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "request body is required")
	}
	if !req.IsBase64Encoded {
		return []byte(req.Body), nil
	}

	body, err := base64.StdEncoding.DecodeString(req.Body)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid base64 body")
	}

	return body, nil
}

func withSVG(query map[string]string) bool {
	v, ok := query["svg"]
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)

	return err == nil && b
}

// decodeMode reads the "mode" field, ignoring everything else.
func decodeMode(body []byte) (string, error) {
	var mode string
	d := jx.DecodeBytes(body)
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		if string(key) != "mode" {
			return d.Skip() //nolint: wrapcheck
		}
		s, err := d.Str()
		if err != nil {
			return errors.Wrap(err, "decode \"mode\"")
		}
		mode = strings.ToLower(strings.TrimSpace(s))

		return nil
	}); err != nil {
		return "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid JSON body")
	}
	if mode == "" {
		return "", serrors.With(serrors.ErrBadRequest, "missing field %q", "mode")
	}

	return mode, nil
}

func encodeSolution(e *jx.Encoder, sim *domain.Simulation, svg []byte) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("mode", func(e *jx.Encoder) { e.Str(strings.ToLower(string(sim.Mode))) })
		e.Field("angles", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("theta1", func(e *jx.Encoder) { e.Float64(kinematics.Degrees(sim.Angles.Theta1)) })
				e.Field("theta2", func(e *jx.Encoder) { e.Float64(kinematics.Degrees(sim.Angles.Theta2)) })
			})
		})
		if sim.Target != nil {
			e.Field("target", func(e *jx.Encoder) { v1handler.EncodePosition(e, *sim.Target) })
			e.Field("branch", func(e *jx.Encoder) { e.Str(sim.Branch.String()) })
			e.Field("innerBoundViolation", func(e *jx.Encoder) { e.Bool(sim.InnerBoundViolation) })
		}
		e.Field("pose", func(e *jx.Encoder) { v1handler.EncodePose(e, sim.Pose) })
		e.Field("report", func(e *jx.Encoder) { e.Str(simulator.Report(sim)) })
		if svg != nil {
			e.Field("svg", func(e *jx.Encoder) { e.Str(string(svg)) })
		}
	})
}
