package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"armsim/internal/config"
	"armsim/internal/simulator"
	"armsim/pkg/kinematics"
	"armsim/pkg/render"

	"github.com/spf13/cobra"
)

// Flag defaults describe the demo arm.
const (
	defaultA1     = 3.0
	defaultA2     = 2.0
	defaultTheta1 = 45.0
	defaultTheta2 = 45.0
	defaultX      = 2.0
	defaultY      = 2.0
)

// writeDrawing draws scene into path, as PNG when path ends in ".png" and as
// SVG otherwise. An empty path draws nothing.
func writeDrawing(cfg *config.Config, path string, scene render.Scene) error {
	if path == "" {
		return nil
	}

	opts := render.DefaultOptions()
	if cfg.Simulator.ViewportHalfExtent > 0 {
		opts.HalfExtent = cfg.Simulator.ViewportHalfExtent
	}
	draw := render.SVG
	if strings.EqualFold(filepath.Ext(path), ".png") {
		draw = render.PNG
	}
	drawing, err := draw(scene, opts)
	if err != nil {
		return fmt.Errorf("could not draw arm: %w", err)
	}
	if err := os.WriteFile(path, drawing, 0o600); err != nil {
		return fmt.Errorf("could not write %s: %w", path, err)
	}

	return nil
}

// runForward prints the end-effector position of req.
func runForward(w io.Writer, cfg *config.Config, req simulator.ForwardRequest, drawingPath string) error {
	sim, err := simulator.SolveForward(req, cfg.Simulator.MaxLinkLength)
	if err != nil {
		return err //nolint: wrapcheck
	}
	if _, err := fmt.Fprintln(w, simulator.Report(&sim)); err != nil {
		return err //nolint: wrapcheck
	}

	return writeDrawing(cfg, drawingPath, simulator.Scene(&sim))
}

// runInverse prints the joint angles reaching req's target. Unreachable
// targets are reported as an error carrying "Target is out of reach".
func runInverse(w io.Writer, cfg *config.Config, req simulator.InverseRequest, drawingPath string) error {
	sim, err := simulator.SolveInverse(req, cfg.Simulator.MaxLinkLength)
	if err != nil {
		return err //nolint: wrapcheck
	}
	if sim.InnerBoundViolation {
		if _, err := fmt.Fprintln(w, "Warning: target is inside the inner workspace bound, showing the closest pose"); err != nil {
			return err //nolint: wrapcheck
		}
	}
	if _, err := fmt.Fprintln(w, simulator.Report(&sim)); err != nil {
		return err //nolint: wrapcheck
	}

	return writeDrawing(cfg, drawingPath, simulator.Scene(&sim))
}

func forwardCommand(cfg *config.Config) *cobra.Command {
	var (
		req     simulator.ForwardRequest
		drawingPath string
	)

	cmd := &cobra.Command{
		Use:   "forward",
		Short: "Computes the end-effector position for given joint angles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForward(cmd.OutOrStdout(), cfg, req, drawingPath)
		},
	}

	cmd.Flags().Float64Var(&req.A1, "a1", defaultA1, "Length of link 1")
	cmd.Flags().Float64Var(&req.A2, "a2", defaultA2, "Length of link 2")
	cmd.Flags().Float64Var(&req.Theta1Deg, "theta1", defaultTheta1, "Joint 1 angle in degrees")
	cmd.Flags().Float64Var(&req.Theta2Deg, "theta2", defaultTheta2, "Joint 2 angle in degrees")
	cmd.Flags().StringVar(&drawingPath, "draw", "", "Write a drawing of the arm to this file (.svg or .png)")

	return cmd
}

func inverseCommand(cfg *config.Config) *cobra.Command {
	var (
		req       simulator.InverseRequest
		elbowDown bool
		drawingPath   string
	)

	cmd := &cobra.Command{
		Use:   "inverse",
		Short: "Computes joint angles that place the end effector at a target",
		RunE: func(cmd *cobra.Command, args []string) error {
			if elbowDown {
				req.Branch = kinematics.ElbowDown
			}

			return runInverse(cmd.OutOrStdout(), cfg, req, drawingPath)
		},
	}

	cmd.Flags().Float64Var(&req.A1, "a1", defaultA1, "Length of link 1")
	cmd.Flags().Float64Var(&req.A2, "a2", defaultA2, "Length of link 2")
	cmd.Flags().Float64Var(&req.X, "x", defaultX, "Target x coordinate")
	cmd.Flags().Float64Var(&req.Y, "y", defaultY, "Target y coordinate")
	cmd.Flags().BoolVar(&elbowDown, "elbow-down", false, "Use the elbow-down solution")
	cmd.Flags().StringVar(&drawingPath, "draw", "", "Write a drawing of the arm and target to this file (.svg or .png)")

	return cmd
}
