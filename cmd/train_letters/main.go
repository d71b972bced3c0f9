package main

import "flag"
import "fmt"
import "math/rand"
import "os"
import "path/filepath"

import "github.com/sirupsen/logrus"

import "github.com/neurlang/fidel/config"
import "github.com/neurlang/fidel/datasets"
import "github.com/neurlang/fidel/datasets/letters"
import "github.com/neurlang/fidel/report"
import "github.com/neurlang/fidel/trainer"

func main() {
	verbose := flag.Bool("v", false, "log debug messages")
	mismatched := flag.String("mismatched", "", "directory receiving bitmaps of misclassified test letters")
	flag.Bool("pgo", false, "write a CPU profile to default.pgo until interrupted")
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		logrus.Fatal(err)
	}
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
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
	testset, err := cfg.Test.Load()
	if err != nil {
		logrus.Fatal(err)
	}
	if cfg.Seed != 0 {
		trainset.Shuffle(rand.New(rand.NewSource(cfg.Seed)))
	}
	if cfg.Downsample {
		trainset = trainset.Downsampled()
		testset = testset.Downsampled()
	}
	logrus.WithFields(logrus.Fields{
		"train":  len(trainset),
		"test":   len(testset),
		"method": method,
	}).Debug("corpora loaded")

	var p = trainer.New(trainer.WithThreads(cfg.Threads), trainer.WithMethod(method), trainer.WithKernel(k))

	result, err := p.Train(trainset)
	if err != nil {
		logrus.Fatal(err)
	}
	fmt.Printf("Trained %d machines on %d samples in %v, training error %.4f\n",
		result.Machines, result.Samples, result.Duration, result.Error)

	evaluation, err := p.Evaluate(testset)
	if err != nil {
		logrus.Fatal(err)
	}
	fmt.Println(evaluation)
	printConfusion(evaluation.Labels, evaluation.Confusion)

	if *mismatched != "" {
		if err := export(*mismatched, testset, evaluation.Mismatched()); err != nil {
			logrus.Fatal(err)
		}
	}
}

func printConfusion(labels []int, confusion [][]int) {
	var names = letters.Names(labels)
	fmt.Printf("%8s", "")
	for _, name := range names {
		fmt.Printf("%6s", name)
	}
	fmt.Println()
	for i, row := range confusion {
		fmt.Printf("%8s", names[i])
		for _, n := range row {
			fmt.Printf("%6d", n)
		}
		fmt.Println()
	}
}

// export writes the grid of every misclassified sample as <index>_<expected>_as_<predicted>.bmp
func export(dir string, set datasets.Dataset, mismatched []trainer.Prediction) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, m := range mismatched {
		var g = set[m.Index].Grid
		if g == nil {
			continue
		}
		var name = filepath.Join(dir, fmt.Sprintf("%04d_%d_as_%d.bmp", m.Index, m.Expected, m.Predicted))
		f, err := os.Create(name)
		if err != nil {
			return err
		}
		err = report.WriteGridBitmap(f, g)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
	}
	logrus.WithField("count", len(mismatched)).Infof("mismatched letters written to %s", dir)
	return nil
}
