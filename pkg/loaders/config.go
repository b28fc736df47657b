package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jmrtz/go-pathtracer/pkg/core"
)

// Partitioner selects how image rows are split across workers.
type Partitioner string

const (
	PartitionerAuto   Partitioner = "auto"
	PartitionerSimple Partitioner = "simple"
	PartitionerStatic Partitioner = "static"
)

// Config holds every render parameter with its default value.
// Every key in the config file is optional.
type Config struct {
	// Image parameters
	AspectWidth  int
	AspectHeight int
	ImageWidth   int
	Gamma        float64

	// Camera parameters
	CameraPosition core.Vec3
	CameraTarget   core.Vec3
	CameraNorth    core.Vec3
	FieldOfView    float64

	// Ray tracing parameters
	SamplesPerPixel int
	MaxDepth        int

	// Seeds for the two independent RNG streams
	MaterialRNGSeed uint64
	RayRNGSeed      uint64

	// Background gradient colors
	BackgroundDarkColor  core.Vec3
	BackgroundLightColor core.Vec3

	// Parallelism parameters
	NumThreads  int // <= 0 means use all available cores
	GrainSize   int
	Partitioner Partitioner
}

// DefaultConfig returns the configuration used when a key is absent
func DefaultConfig() Config {
	return Config{
		AspectWidth:          16,
		AspectHeight:         9,
		ImageWidth:           1920,
		Gamma:                2.2,
		CameraPosition:       core.NewVec3(0, 0, -10),
		CameraTarget:         core.NewVec3(0, 0, 0),
		CameraNorth:          core.NewVec3(0, 1, 0),
		FieldOfView:          90.0,
		SamplesPerPixel:      20,
		MaxDepth:             5,
		MaterialRNGSeed:      13,
		RayRNGSeed:           19,
		BackgroundDarkColor:  core.NewVec3(0.25, 0.5, 1.0),
		BackgroundLightColor: core.NewVec3(1.0, 1.0, 1.0),
		NumThreads:           -1,
		GrainSize:            1,
		Partitioner:          PartitionerAuto,
	}
}

// AspectRatio returns width over height of the configured aspect
func (c *Config) AspectRatio() float64 {
	return float64(c.AspectWidth) / float64(c.AspectHeight)
}

// ImageHeight derives the pixel height from the width and aspect ratio,
// truncating toward zero
func (c *Config) ImageHeight() int {
	return int(float64(c.ImageWidth) / c.AspectRatio())
}

// invalidValue builds the shared error for a malformed or out-of-range key
func invalidValue(key string) error {
	return fmt.Errorf("invalid value for key: [%s:]", key)
}

func parseInt(s, key string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, invalidValue(key)
	}
	return v, nil
}

func parseFloat(s, key string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, invalidValue(key)
	}
	return v, nil
}

func parseUint64(s, key string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, invalidValue(key)
	}
	return v, nil
}

// parseVec3 parses three consecutive value tokens into a vector
func parseVec3(parts []string, key string) (core.Vec3, error) {
	x, err := parseFloat(parts[0], key)
	if err != nil {
		return core.Vec3{}, err
	}
	y, err := parseFloat(parts[1], key)
	if err != nil {
		return core.Vec3{}, err
	}
	z, err := parseFloat(parts[2], key)
	if err != nil {
		return core.Vec3{}, err
	}
	return core.NewVec3(x, y, z), nil
}

// inUnitRange reports whether every component lies in [0, 1]
func inUnitRange(v core.Vec3) bool {
	return v.X >= 0 && v.X <= 1 && v.Y >= 0 && v.Y <= 1 && v.Z >= 0 && v.Z <= 1
}

type configHandler func(values []string, cfg *Config) error

// configHandlers maps each key to its parser. Arity checks compare
// against the value tokens only, the key itself is already stripped.
var configHandlers = map[string]configHandler{
	"aspect_ratio": func(values []string, cfg *Config) error {
		if len(values) != 2 {
			return invalidValue("aspect_ratio")
		}
		w, err := parseInt(values[0], "aspect_ratio")
		if err != nil {
			return err
		}
		h, err := parseInt(values[1], "aspect_ratio")
		if err != nil {
			return err
		}
		if w <= 0 || h <= 0 {
			return invalidValue("aspect_ratio")
		}
		cfg.AspectWidth, cfg.AspectHeight = w, h
		return nil
	},
	"image_width": func(values []string, cfg *Config) error {
		if len(values) != 1 {
			return invalidValue("image_width")
		}
		w, err := parseInt(values[0], "image_width")
		if err != nil {
			return err
		}
		if w <= 0 {
			return invalidValue("image_width")
		}
		cfg.ImageWidth = w
		return nil
	},
	"gamma": func(values []string, cfg *Config) error {
		if len(values) != 1 {
			return invalidValue("gamma")
		}
		g, err := parseFloat(values[0], "gamma")
		if err != nil {
			return err
		}
		if g <= 0 {
			return invalidValue("gamma")
		}
		cfg.Gamma = g
		return nil
	},
	"camera_position": func(values []string, cfg *Config) error {
		if len(values) != 3 {
			return invalidValue("camera_position")
		}
		v, err := parseVec3(values, "camera_position")
		if err != nil {
			return err
		}
		cfg.CameraPosition = v
		return nil
	},
	"camera_target": func(values []string, cfg *Config) error {
		if len(values) != 3 {
			return invalidValue("camera_target")
		}
		v, err := parseVec3(values, "camera_target")
		if err != nil {
			return err
		}
		cfg.CameraTarget = v
		return nil
	},
	"camera_north": func(values []string, cfg *Config) error {
		if len(values) != 3 {
			return invalidValue("camera_north")
		}
		v, err := parseVec3(values, "camera_north")
		if err != nil {
			return err
		}
		if v.NearZero() {
			return invalidValue("camera_north")
		}
		cfg.CameraNorth = v
		return nil
	},
	"field_of_view": func(values []string, cfg *Config) error {
		if len(values) != 1 {
			return invalidValue("field_of_view")
		}
		fov, err := parseFloat(values[0], "field_of_view")
		if err != nil {
			return err
		}
		if fov <= 0 || fov >= 180 {
			return invalidValue("field_of_view")
		}
		cfg.FieldOfView = fov
		return nil
	},
	"samples_per_pixel": func(values []string, cfg *Config) error {
		if len(values) != 1 {
			return invalidValue("samples_per_pixel")
		}
		s, err := parseInt(values[0], "samples_per_pixel")
		if err != nil {
			return err
		}
		if s <= 0 {
			return invalidValue("samples_per_pixel")
		}
		cfg.SamplesPerPixel = s
		return nil
	},
	"max_depth": func(values []string, cfg *Config) error {
		if len(values) != 1 {
			return invalidValue("max_depth")
		}
		d, err := parseInt(values[0], "max_depth")
		if err != nil {
			return err
		}
		if d <= 0 {
			return invalidValue("max_depth")
		}
		cfg.MaxDepth = d
		return nil
	},
	"material_rng_seed": func(values []string, cfg *Config) error {
		if len(values) != 1 {
			return invalidValue("material_rng_seed")
		}
		seed, err := parseUint64(values[0], "material_rng_seed")
		if err != nil {
			return err
		}
		if seed == 0 {
			return invalidValue("material_rng_seed")
		}
		cfg.MaterialRNGSeed = seed
		return nil
	},
	"ray_rng_seed": func(values []string, cfg *Config) error {
		if len(values) != 1 {
			return invalidValue("ray_rng_seed")
		}
		seed, err := parseUint64(values[0], "ray_rng_seed")
		if err != nil {
			return err
		}
		if seed == 0 {
			return invalidValue("ray_rng_seed")
		}
		cfg.RayRNGSeed = seed
		return nil
	},
	"background_dark_color": func(values []string, cfg *Config) error {
		if len(values) != 3 {
			return invalidValue("background_dark_color")
		}
		v, err := parseVec3(values, "background_dark_color")
		if err != nil {
			return err
		}
		if !inUnitRange(v) {
			return invalidValue("background_dark_color")
		}
		cfg.BackgroundDarkColor = v
		return nil
	},
	"background_light_color": func(values []string, cfg *Config) error {
		if len(values) != 3 {
			return invalidValue("background_light_color")
		}
		v, err := parseVec3(values, "background_light_color")
		if err != nil {
			return err
		}
		if !inUnitRange(v) {
			return invalidValue("background_light_color")
		}
		cfg.BackgroundLightColor = v
		return nil
	},
	"num_threads": func(values []string, cfg *Config) error {
		if len(values) != 1 {
			return invalidValue("num_threads")
		}
		n, err := parseInt(values[0], "num_threads")
		if err != nil {
			return err
		}
		if n != -1 && n <= 0 {
			return invalidValue("num_threads")
		}
		cfg.NumThreads = n
		return nil
	},
	"grain_size": func(values []string, cfg *Config) error {
		if len(values) != 1 {
			return invalidValue("grain_size")
		}
		g, err := parseInt(values[0], "grain_size")
		if err != nil {
			return err
		}
		if g <= 0 {
			return invalidValue("grain_size")
		}
		cfg.GrainSize = g
		return nil
	},
	"partitioner": func(values []string, cfg *Config) error {
		if len(values) != 1 {
			return invalidValue("partitioner")
		}
		switch Partitioner(values[0]) {
		case PartitionerAuto, PartitionerSimple, PartitionerStatic:
			cfg.Partitioner = Partitioner(values[0])
			return nil
		default:
			return invalidValue("partitioner")
		}
	},
}

// ParseConfig reads a line-oriented configuration from r. Blank lines
// are skipped; each remaining line is `<key>[:] <value>...`.
func ParseConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		key := strings.TrimSuffix(parts[0], ":")
		handler, ok := configHandlers[key]
		if !ok {
			return cfg, fmt.Errorf("unknown configuration key: [%s:]", key)
		}
		if err := handler(parts[1:], &cfg); err != nil {
			return cfg, err
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("failed to read config: %v", err)
	}

	return cfg, nil
}

// LoadConfig reads the configuration file at path
func LoadConfig(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot open config file: %s", path)
	}
	defer file.Close()

	return ParseConfig(file)
}
