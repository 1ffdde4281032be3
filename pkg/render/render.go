// Package render draws an arm pose as a plot and formats the plain text
// reports shown next to it. It performs no kinematics: callers pass the
// joint positions computed by package kinematics.
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"armsim/pkg/kinematics"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Colors of the drawing elements.
var (
	Link1Color       = rgb(0x1f77b4) //nolint: gochecknoglobals
	Link2Color       = rgb(0x2ca02c) //nolint: gochecknoglobals
	EndEffectorColor = rgb(0x9467bd) //nolint: gochecknoglobals
	TargetColor      = rgb(0xd62728) //nolint: gochecknoglobals
	gridColor        = rgb(0xcccccc) //nolint: gochecknoglobals
)

// Legend labels.
const (
	Link1Label       = "Link 1"
	Link2Label       = "Link 2"
	EndEffectorLabel = "End Effector Position"
	TargetLabel      = "Target Position"
)

// DefaultHalfExtent bounds the viewport to [-6, 6] on both axes.
const DefaultHalfExtent = 6.0

// Scene is what gets drawn: the arm pose and, optionally, the target the
// inverse solver was asked to reach.
type Scene struct {
	Pose   kinematics.ArmPose
	Target *kinematics.Position2D
}

// Options tune the drawing.
type Options struct {
	// HalfExtent is half the side of the square viewport in world units.
	HalfExtent float64
	// Size is the side of the square image in points.
	Size int
	// Title is drawn above the plot.
	Title string
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		HalfExtent: DefaultHalfExtent,
		Size:       480,
		Title:      "2D Planar 2-DOF Robot Arm",
	}
}

func rgb(hex uint32) color.RGBA {
	return color.RGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 0xff} //nolint: gosec
}

func (o Options) normalize() (Options, error) {
	if o.HalfExtent <= 0 || math.IsInf(o.HalfExtent, 0) || math.IsNaN(o.HalfExtent) {
		return o, fmt.Errorf("invalid viewport half extent %v", o.HalfExtent)
	}
	if o.Size <= 0 {
		o.Size = DefaultOptions().Size
	}

	return o, nil
}

func inView(p kinematics.Position2D, half float64) bool {
	return math.Abs(p.X) <= half && math.Abs(p.Y) <= half
}

func segment(from, to kinematics.Position2D, c color.Color) (*plotter.Line, error) {
	l, err := plotter.NewLine(plotter.XYs{{X: from.X, Y: from.Y}, {X: to.X, Y: to.Y}})
	if err != nil {
		return nil, fmt.Errorf("could not create link: %w", err)
	}
	l.LineStyle.Color = c
	l.LineStyle.Width = vg.Points(3)

	return l, nil
}

// addMarker adds a dot at at. Dots outside the viewport stay in the legend
// but are not drawn.
func addMarker(p *plot.Plot, at kinematics.Position2D, c color.Color, label string, half float64) error {
	s, err := plotter.NewScatter(plotter.XYs{{X: at.X, Y: at.Y}})
	if err != nil {
		return fmt.Errorf("could not create %s marker: %w", label, err)
	}
	s.GlyphStyle = draw.GlyphStyle{Color: c, Radius: vg.Points(5), Shape: draw.CircleGlyph{}}

	if inView(at, half) {
		p.Add(s)
	}
	p.Legend.Add(label, s)

	return nil
}

// newPlot lays scene out on fixed [-h, h] axes with a dashed grid and a
// legend. Links are clipped to the axes by the line plotter.
func newPlot(scene Scene, opts Options) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "X Position"
	p.Y.Label.Text = "Y Position"
	p.Legend.Top = true

	grid := plotter.NewGrid()
	for _, ls := range []*draw.LineStyle{&grid.Vertical, &grid.Horizontal} {
		ls.Color = gridColor
		ls.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	}
	p.Add(grid)

	pose := scene.Pose
	link1, err := segment(pose.Base, pose.Elbow, Link1Color)
	if err != nil {
		return nil, err
	}
	link2, err := segment(pose.Elbow, pose.EndEffector, Link2Color)
	if err != nil {
		return nil, err
	}
	p.Add(link1, link2)
	p.Legend.Add(Link1Label, link1)
	p.Legend.Add(Link2Label, link2)

	if err := addMarker(p, pose.EndEffector, EndEffectorColor, EndEffectorLabel, opts.HalfExtent); err != nil {
		return nil, err
	}
	if scene.Target != nil {
		if err := addMarker(p, *scene.Target, TargetColor, TargetLabel, opts.HalfExtent); err != nil {
			return nil, err
		}
	}

	// after Add, which widens the axes to the data
	p.X.Min, p.X.Max = -opts.HalfExtent, opts.HalfExtent
	p.Y.Min, p.Y.Max = -opts.HalfExtent, opts.HalfExtent

	return p, nil
}

// drawSquare draws p onto dc, trimming dc so that the data area is square
// and both axes share one scale. It returns the data area.
func drawSquare(p *plot.Plot, dc draw.Canvas) draw.Canvas {
	data := p.DataCanvas(dc)
	w, h := data.Max.X-data.Min.X, data.Max.Y-data.Min.Y
	switch {
	case w > h:
		d := (w - h) / 2
		dc = draw.Crop(dc, d, -d, 0, 0)
	case h > w:
		d := (h - w) / 2
		dc = draw.Crop(dc, 0, 0, d, -d)
	}
	p.Draw(dc)

	return p.DataCanvas(dc)
}

// SVG renders scene as a standalone SVG document with an equal aspect ratio.
func SVG(scene Scene, opts Options) ([]byte, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	p, err := newPlot(scene, opts)
	if err != nil {
		return nil, err
	}

	size := vg.Length(opts.Size)
	c := vgsvg.New(size, size)
	drawSquare(p, draw.New(c))

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("could not encode svg: %w", err)
	}

	return buf.Bytes(), nil
}

// PNG renders scene as a PNG image at 96 DPI.
func PNG(scene Scene, opts Options) ([]byte, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	p, err := newPlot(scene, opts)
	if err != nil {
		return nil, err
	}

	size := vg.Length(opts.Size)
	c := vgimg.New(size, size)
	drawSquare(p, draw.New(c))

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("could not encode png: %w", err)
	}

	return buf.Bytes(), nil
}
