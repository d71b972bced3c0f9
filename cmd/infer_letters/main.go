package main

import "encoding/json"
import "flag"
import "fmt"
import "math/rand"
import "os"

import "github.com/pkg/errors"
import "github.com/sirupsen/logrus"

import "github.com/neurlang/fidel/canvas"
import "github.com/neurlang/fidel/config"
import "github.com/neurlang/fidel/datasets/letters"
import "github.com/neurlang/fidel/grid"
import "github.com/neurlang/fidel/report"
import "github.com/neurlang/fidel/trainer"

func main() {
	verbose := flag.Bool("v", false, "log debug messages")
	strokes := flag.String("strokes", "", "JSON file of pen strokes to classify")
	gridPath := flag.String("grid", "", "32x32 grid text file to classify")
	size := flag.Int("size", canvas.DefaultSize, "canvas side in pixels for -strokes")
	chartPath := flag.String("chart", "", "PNG destination of the class response chart")
	bitmapPath := flag.String("bitmap", "", "BMP destination of the classified grid")
	flag.Bool("pgo", false, "write a CPU profile to default.pgo until interrupted")
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		logrus.Fatal(err)
	}
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if (*strokes == "") == (*gridPath == "") {
		logrus.Fatal("exactly one of -strokes or -grid is required")
	}

	var g grid.Grid
	if *gridPath != "" {
		g, err = readGrid(*gridPath)
	} else {
		g, err = draw(*strokes, *size, cfg.PenWidth)
	}
	if err != nil {
		logrus.Fatal(err)
	}

	method, err := cfg.ParseMethod()
	if err != nil {
		logrus.Fatal(err)
	}
	k, err := cfg.ParseKernel()
	if err != nil {
		logrus.Fatal(err)
	}
	trainset, err := cfg.Train.Load()
	if err != nil {
		logrus.Fatal(err)
	}
	var features []float64 = g.FeatureVector()
	if cfg.Seed != 0 {
		trainset.Shuffle(rand.New(rand.NewSource(cfg.Seed)))
	}
	if cfg.Downsample {
		trainset = trainset.Downsampled()
		features = g.Downsample()
	}

	var p = trainer.New(trainer.WithThreads(cfg.Threads), trainer.WithMethod(method), trainer.WithKernel(k))
	if _, err := p.Train(trainset); err != nil {
		logrus.Fatal(err)
	}

	label, profile, err := p.Infer(features)
	if err != nil {
		logrus.Fatal(err)
	}

	fmt.Print(g.String())
	fmt.Printf("Letter: %s (label %d)\n", letters.Name(label), label)
	var names = letters.Names(p.Model().Labels())
	for i, v := range profile.Percent() {
		fmt.Printf("%s %5.1f%%\n", names[i], v)
	}

	if *chartPath != "" {
		if err := writeFile(*chartPath, func(f *os.File) error {
			return report.WriteProfileChart(f, profile, names)
		}); err != nil {
			logrus.Fatal(err)
		}
	}
	if *bitmapPath != "" {
		if err := writeFile(*bitmapPath, func(f *os.File) error {
			return report.WriteGridBitmap(f, &g)
		}); err != nil {
			logrus.Fatal(err)
		}
	}
}

func readGrid(path string) (grid.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return grid.Grid{}, err
	}
	g, err := grid.Decode(string(data))
	return g, errors.Wrapf(err, "grid '%s'", path)
}

// draw replays the strokes of a JSON file on a headless canvas
func draw(path string, size int, pen float32) (grid.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return grid.Grid{}, err
	}
	var strokes [][][2]float32
	if err := json.Unmarshal(data, &strokes); err != nil {
		return grid.Grid{}, errors.Wrapf(err, "strokes '%s'", path)
	}
	var c = canvas.New(size)
	c.SetPenWidth(pen)
	for _, s := range strokes {
		var points = make([]canvas.Point, len(s))
		for i, xy := range s {
			points[i] = canvas.Point{X: xy[0], Y: xy[1]}
		}
		c.Stroke(points...)
	}
	logrus.WithField("strokes", c.Strokes()).Debug("canvas drawn")
	return c.Grid(), nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
