// Command splatdemo renders a Gaussian splat scene to a PNG file.
//
// The scene is read from a YAML file (see testdata/scene.yaml) or generated
// randomly with -random.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/splat"
)

func main() {
	var (
		scenePath = flag.String("scene", "", "YAML scene file")
		random    = flag.Int("random", 0, "render N random primitives instead of a scene file")
		seed      = flag.Uint64("seed", 1, "seed for -random")
		output    = flag.String("output", "splat.png", "output file")
		scale     = flag.Int("scale", 1, "integer upscale factor of the written image")
		nearest   = flag.Bool("nearest", false, "upscale with nearest-neighbour instead of Catmull-Rom")
		workers   = flag.Int("workers", 0, "worker goroutines (0 = GOMAXPROCS)")
		serial    = flag.Bool("serial", false, "render tiles on a single goroutine")
		white     = flag.Bool("white", false, "force a white background")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		splat.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	var sf *sceneFile
	switch {
	case *random > 0:
		sf = randomScene(*random, *seed)
	case *scenePath != "":
		var err error
		if sf, err = loadScene(*scenePath); err != nil {
			log.Fatalf("Failed to load scene: %v", err)
		}
	default:
		log.Fatal("one of -scene or -random is required")
	}
	if *white {
		sf.Background = "white"
	}

	cam, err := sf.camera()
	if err != nil {
		log.Fatalf("Invalid camera: %v", err)
	}
	scene, err := sf.scene()
	if err != nil {
		log.Fatalf("Invalid scene: %v", err)
	}
	bg, err := sf.background()
	if err != nil {
		log.Fatalf("Invalid scene: %v", err)
	}

	backend := splat.BackendParallel
	if *serial {
		backend = splat.BackendSerial
	}
	r := splat.NewRenderer(splat.WithBackend(backend), splat.WithWorkers(*workers))
	defer r.Close()

	start := time.Now()
	res, err := r.Render(cam, scene, splat.RenderOptions{Background: bg})
	if err != nil {
		log.Fatalf("Render failed: %v", err) //nolint:gocritic // r.Close is irrelevant on exit
	}
	elapsed := time.Since(start)

	if err := writePNG(*output, res.Image, *scale, *nearest); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	p := message.NewPrinter(language.English)
	p.Printf("Rendered %d primitives (%d visible, %d tile pairs) in %v\n",
		res.Stats.Primitives, res.Stats.Visible, res.Stats.Pairs, elapsed.Round(time.Microsecond))
	p.Printf("Saved %s (%dx%d)\n", *output, cam.Width*max(*scale, 1), cam.Height*max(*scale, 1))
}
