package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/splat"
	"github.com/gogpu/splat/sh"
)

// sceneFile is the YAML layout read by splatdemo.
type sceneFile struct {
	Width      int            `yaml:"width"`
	Height     int            `yaml:"height"`
	FovXDeg    float64        `yaml:"fov_x_deg"`
	FovYDeg    float64        `yaml:"fov_y_deg"`
	Camera     cameraFile     `yaml:"camera"`
	Background string         `yaml:"background"`
	Degree     int            `yaml:"degree"`
	Primitives []primitiveDef `yaml:"primitives"`
}

type cameraFile struct {
	Eye    [3]float64 `yaml:"eye"`
	Target [3]float64 `yaml:"target"`
	Up     [3]float64 `yaml:"up"`
}

type primitiveDef struct {
	Position [3]float64   `yaml:"position"`
	Scale    [3]float64   `yaml:"scale"`
	Rotation []float64    `yaml:"rotation"` // w, x, y, z
	Opacity  float64      `yaml:"opacity"`
	Color    []float64    `yaml:"color"`
	SH       [][3]float64 `yaml:"sh"`
}

// loadScene reads a YAML scene from path.
func loadScene(path string) (*sceneFile, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return decodeScene(f)
}

// decodeScene parses a YAML scene and fills defaults.
func decodeScene(r io.Reader) (*sceneFile, error) {
	sf := &sceneFile{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(sf); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	sf.applyDefaults()
	return sf, nil
}

func (sf *sceneFile) applyDefaults() {
	if sf.Width == 0 {
		sf.Width = 320
	}
	if sf.Height == 0 {
		sf.Height = 240
	}
	if sf.FovXDeg == 0 {
		sf.FovXDeg = 60
	}
	if sf.Camera.Up == ([3]float64{}) {
		sf.Camera.Up = [3]float64{0, 1, 0}
	}
	if sf.Camera.Eye == sf.Camera.Target {
		sf.Camera.Eye = [3]float64{0, 0, -5}
		sf.Camera.Target = [3]float64{0, 0, 0}
	}
}

// camera builds the render camera. A missing vertical field of view is
// derived from the horizontal one and the aspect ratio.
func (sf *sceneFile) camera() (splat.Camera, error) {
	fovX := sf.FovXDeg * math.Pi / 180
	fovY := sf.FovYDeg * math.Pi / 180
	if fovY == 0 {
		focal := splat.FocalFromFov(fovX, sf.Width)
		fovY = splat.FovFromFocal(focal, sf.Height)
	}
	return splat.NewCamera(splat.CameraParams{
		View:   splat.LookAt(sf.Camera.Eye, sf.Camera.Target, sf.Camera.Up),
		FovX:   fovX,
		FovY:   fovY,
		Width:  sf.Width,
		Height: sf.Height,
	})
}

// background maps the background name to a color.
func (sf *sceneFile) background() (splat.RGB, error) {
	switch sf.Background {
	case "", "black":
		return splat.Black, nil
	case "white":
		return splat.White, nil
	default:
		return splat.RGB{}, fmt.Errorf("unknown background %q (want black or white)", sf.Background)
	}
}

var errBadRotation = errors.New("rotation must have 4 components (w, x, y, z)")

// scene converts the primitive definitions. Primitives given a plain color
// get a degree-0 basis that evaluates to that color; the scene degree then
// only applies to primitives with explicit coefficients.
func (sf *sceneFile) scene() (splat.Scene, error) {
	s := splat.Scene{Degree: sf.Degree, Primitives: make([]splat.Primitive, len(sf.Primitives))}
	need := sh.CoefficientCount(max(sf.Degree, 0))

	for i, d := range sf.Primitives {
		rot := mgl64.QuatIdent()
		switch len(d.Rotation) {
		case 0:
		case 4:
			rot = mgl64.Quat{W: d.Rotation[0], V: mgl64.Vec3{d.Rotation[1], d.Rotation[2], d.Rotation[3]}}
		default:
			return splat.Scene{}, fmt.Errorf("primitive %d: %w", i, errBadRotation)
		}

		coeffs := make([]mgl64.Vec3, 0, need)
		for _, c := range d.SH {
			coeffs = append(coeffs, c)
		}
		if len(coeffs) == 0 {
			rgb := mgl64.Vec3{1, 1, 1}
			if len(d.Color) == 3 {
				rgb = mgl64.Vec3{d.Color[0], d.Color[1], d.Color[2]}
			}
			coeffs = append(coeffs, sh.FromRGB(rgb))
		}
		for len(coeffs) < need {
			coeffs = append(coeffs, mgl64.Vec3{})
		}

		s.Primitives[i] = splat.Primitive{
			Position: d.Position,
			Opacity:  d.Opacity,
			Scale:    d.Scale,
			Rotation: rot,
			SH:       coeffs,
		}
	}
	return s, nil
}

// randomScene returns n random primitives in a cube in front of the default
// camera, for benchmarking and smoke tests.
func randomScene(n int, seed uint64) *sceneFile {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	sf := &sceneFile{Primitives: make([]primitiveDef, n)}
	for i := range sf.Primitives {
		sf.Primitives[i] = primitiveDef{
			Position: [3]float64{rng.Float64()*4 - 2, rng.Float64()*4 - 2, rng.Float64()*4 - 2},
			Scale:    [3]float64{0.02 + rng.Float64()*0.2, 0.02 + rng.Float64()*0.2, 0.02 + rng.Float64()*0.2},
			Rotation: []float64{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()},
			Opacity:  0.2 + rng.Float64()*0.8,
			Color:    []float64{rng.Float64(), rng.Float64(), rng.Float64()},
		}
	}
	sf.applyDefaults()
	return sf
}
