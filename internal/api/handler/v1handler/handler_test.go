package v1handler_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"armsim/internal/api/handler/v1handler"
	"armsim/pkg/kinematics"
	"armsim/pkg/logger"
	"armsim/pkg/serrors"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	_ = logger.Setup(logger.DevelopmentEnvironment, "")
	m.Run()
}

func TestNewError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"plain error", errors.New("boom"), 500, "INTERNAL", "internal error"},
		{"internal kind", serrors.KindOnly(serrors.ErrInternal), 500, "INTERNAL", "internal error"},
		{"not found sentinel", serrors.ErrNotFound, 404, "NOT_FOUND", "resource not found"},
		{"bad request", serrors.With(serrors.ErrBadRequest, "missing field %q", "a1"), 400, "BAD_REQUEST", `missing field "a1"`},
		{
			"unauthorized wrap",
			serrors.Wrap(serrors.ErrUnauthorized, errors.New("bad token"), "unauthorized"),
			401, "UNAUTHORIZED", "unauthorized",
		},
		{"unavailable", serrors.With(serrors.ErrUnavailable, "rendering is pending"), 503, "UNAVAILABLE", "rendering is pending"},
		{"unprocessable", serrors.KindOnly(serrors.ErrUnprocessable), 422, "UNPROCESSABLE", "unprocessable request"},
		{
			"unreachable target wrapped",
			fmt.Errorf("solve: %w", serrors.With(kinematics.ErrUnreachableTarget, kinematics.UnreachableMessage)),
			422, "UNREACHABLE_TARGET", "Target is out of reach",
		},
	}

	h := v1handler.New(v1handler.Deps{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := h.NewError(context.Background(), tt.err)
			require.Equal(t, tt.status, res.StatusCode)
			require.Equal(t, tt.code, res.Response.Code)
			require.Equal(t, tt.message, res.Response.Message)
		})
	}
}
