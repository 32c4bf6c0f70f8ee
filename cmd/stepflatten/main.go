// Command stepflatten exports every screenshot step of a recording session
// as a flattened image, with crops applied and annotations burned in.
//
// Usage:
//
//	stepflatten -session DIR [-out DIR] [-config FILE] [-preview N]
//	            [-workers N] [-format png|jpeg|bmp] [-v]
//
// Images are written as step_NN.<ext>, numbered by step position.
// Text-only steps are skipped. The exit status is 1 if any step failed.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"

	"github.com/gogpu/stepmark"
	"github.com/gogpu/stepmark/session"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("stepflatten", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		dir        = fs.String("session", "", "session folder containing steps.json (required)")
		out        = fs.String("out", "", "output folder (default <session>/flattened)")
		configPath = fs.String("config", "", "TOML config file")
		preview    = fs.Int("preview", 0, "scale images down to at most this width (0 = native)")
		workers    = fs.Int("workers", 0, "parallel workers (0 = GOMAXPROCS)")
		format     = fs.String("format", "png", "output format: png, jpeg or bmp")
		verbose    = fs.Bool("v", false, "verbose logging")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *dir == "" {
		fmt.Fprintln(stderr, "stepflatten: -session is required")
		fs.Usage()
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	stepmark.SetLogger(log)
	defer stepmark.SetLogger(nil)

	cfg := defaultConfig()
	if *configPath != "" {
		unknown, err := loadConfig(*configPath, &cfg)
		if err != nil {
			log.Error("load config", "err", err)
			return 2
		}
		for _, k := range unknown {
			log.Warn("unknown config key", "key", k, "file", *configPath)
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "preview":
			cfg.PreviewWidth = *preview
		case "workers":
			cfg.Workers = *workers
		case "format":
			cfg.Format = *format
		}
	})
	if err := cfg.validate(); err != nil {
		log.Error("config", "err", err)
		return 2
	}

	if *out == "" {
		*out = filepath.Join(*dir, "flattened")
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Error("create output folder", "err", err)
		return 1
	}

	s, err := session.Open(*dir)
	if err != nil {
		log.Error("open session", "err", err)
		return 1
	}
	doc := s.Document()

	var ids []stepmark.StepID
	pos := make(map[stepmark.StepID]int)
	for i, id := range doc.Steps() {
		if e, _ := s.Entry(id); e.TextOnly() {
			log.Info("skipping text-only step", "step", i+1)
			continue
		}
		ids = append(ids, id)
		pos[id] = i + 1
	}

	failed := 0
	for _, r := range stepmark.FlattenBatch(doc, s, ids, cfg.Workers) {
		n := pos[r.Step]
		if r.Err != nil {
			log.Error("flatten failed", "step", n, "err", r.Err)
			failed++
			continue
		}
		var img image.Image = r.Image
		if cfg.PreviewWidth > 0 {
			img = stepmark.Preview(img, cfg.PreviewWidth)
		}
		path := filepath.Join(*out, fmt.Sprintf("step_%02d.%s", n, cfg.ext()))
		if err := writeImage(path, img, cfg); err != nil {
			log.Error("write image", "step", n, "err", err)
			failed++
			continue
		}
		log.Debug("wrote image", "step", n, "path", path, "size", img.Bounds().Size())
	}
	s.Release()

	log.Info("export finished", "project", s.ProjectName(), "written", len(ids)-failed, "failed", failed, "out", *out)
	if failed > 0 {
		return 1
	}
	return 0
}

func writeImage(path string, img image.Image, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	switch cfg.Format {
	case "jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: cfg.JPEGQuality})
	case "bmp":
		err = bmp.Encode(f, img)
	default:
		err = png.Encode(f, img)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
