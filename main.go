package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jmrtz/go-pathtracer/pkg/loaders"
	"github.com/jmrtz/go-pathtracer/pkg/renderer"
)

func run(args []string) int {
	if len(args) != 4 {
		fmt.Fprintf(os.Stderr, "Error: invalid number of arguments: %d\n", len(args)-1)
		fmt.Fprintf(os.Stderr, "Usage: %s <config_path> <scene_path> <output_path>\n", args[0])
		return 1
	}
	configPath, scenePath, outputPath := args[1], args[2], args[3]

	cfg, err := loaders.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	scn, err := loaders.LoadScene(scenePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	camera, err := renderer.NewCamera(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	r := renderer.NewRenderer(cfg, scn, camera, nil)

	startTime := time.Now()
	img, err := r.Render()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	elapsed := time.Since(startTime)
	fmt.Printf("Total time: %g seconds\n", elapsed.Seconds())

	if err := img.SavePPM(outputPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("Image saved as %s\n", outputPath)

	return 0
}

func main() {
	os.Exit(run(os.Args))
}
