// Command gallerysearch runs the detection pipeline over a single
// image and prints the detections, optionally filtered by a query
// label.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	"github.com/photoseek/go-detect/images"
	"github.com/photoseek/go-detect/inference"
	"github.com/photoseek/go-detect/models"
	"github.com/photoseek/go-detect/models/model"
	"github.com/photoseek/go-detect/search"
)

const (
	inputWidth  = 640
	inputHeight = 640
)

func main() {
	var (
		modelPath = flag.String("model", "yolov5s.onnx", "path to the ONNX model file")
		imagePath = flag.String("image", "", "path to the image to process")
		classFile = flag.String("classes", "", "optional class list file, one label per line")
		query     = flag.String("query", "", "class label to search for; empty prints all detections")
		threshold = flag.Float64("threshold", float64(search.DefaultDetectionThreshold), "objectness threshold")
	)
	flag.Parse()

	if *imagePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(*imagePath)
	if err != nil {
		log.Fatalf("opening image: %v", err)
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		log.Fatalf("decoding image: %v", err)
	}
	bounds := img.Bounds()

	classes := models.YOLOClasses
	if *classFile != "" {
		classes, err = models.LoadClassFile(*classFile)
		if err != nil {
			log.Fatalf("loading classes: %v", err)
		}
	}

	session, err := inference.NewSession(inference.DefaultConfig(*modelPath))
	if err != nil {
		log.Fatalf("creating session: %v", err)
	}
	defer session.Close()

	input := make([]float32, 3*inputWidth*inputHeight)
	if err := inference.PrepareInput(img, inputWidth, inputHeight, input); err != nil {
		log.Fatalf("preparing input: %v", err)
	}

	output, err := session.Run(input)
	if err != nil {
		log.Fatalf("running inference: %v", err)
	}

	detModel, err := models.NewModel(model.NewModelArgs{Name: model.ModelNameYOLOv5, Path: *modelPath})
	if err != nil {
		log.Fatalf("creating model: %v", err)
	}

	searcher, err := search.New(search.Config{
		Classes:            classes,
		Model:              detModel,
		DetectionThreshold: float32(*threshold),
	})
	if err != nil {
		log.Fatalf("creating searcher: %v", err)
	}

	tr := images.IdentityTransform(bounds.Dx(), bounds.Dy(), inputWidth, inputHeight)
	detections, err := searcher.Detect(output, tr)
	if err != nil {
		log.Fatalf("decoding output: %v", err)
	}

	if *query != "" {
		matches, err := searcher.Query(detections, *query)
		if err != nil {
			log.Fatalf("query: %v", err)
		}
		fmt.Printf("%s: %d match(es) for %q\n", *imagePath, len(matches), *query)
		detections = matches
	}

	for _, d := range detections {
		fmt.Printf("  %-14s %.3f  (%d,%d)-(%d,%d)\n",
			searcher.Label(d), d.Score, d.Box.X1, d.Box.Y1, d.Box.X2, d.Box.Y2)
	}
}
