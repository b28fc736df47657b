package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jmrtz/go-pathtracer/pkg/core"
	"github.com/jmrtz/go-pathtracer/pkg/geometry"
	"github.com/jmrtz/go-pathtracer/pkg/material"
	"github.com/jmrtz/go-pathtracer/pkg/scene"
)

// Scene file grammar, one entity per line, token counts exact:
//
//	matte      <name> <r> <g> <b>
//	metal      <name> <r> <g> <b> <fuzz>
//	refractive <name> <ior>
//	sphere     <cx> <cy> <cz> <R> <material_name>
//	cylinder   <cx> <cy> <cz> <R> <ax> <ay> <az> <material_name>
//
// Materials must be defined before the objects that reference them.

// entityArity gives the exact token count for each tag, tag included
var entityArity = map[string]int{
	"matte":      5,
	"metal":      6,
	"refractive": 3,
	"sphere":     6,
	"cylinder":   9,
}

// checkArity enforces the exact token count, reporting extra tokens
// separately from missing ones
func checkArity(parts []string, tag string) error {
	expected := entityArity[tag]
	if len(parts) < expected {
		return fmt.Errorf("invalid %s parameters", tag)
	}
	if len(parts) > expected {
		return fmt.Errorf("extra data after %s entry: %q", tag, strings.Join(parts[expected:], " "))
	}
	return nil
}

func parseSceneFloat(s, tag string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameters", tag)
	}
	return v, nil
}

func parseSceneVec3(parts []string, tag string) (core.Vec3, error) {
	x, err := parseSceneFloat(parts[0], tag)
	if err != nil {
		return core.Vec3{}, err
	}
	y, err := parseSceneFloat(parts[1], tag)
	if err != nil {
		return core.Vec3{}, err
	}
	z, err := parseSceneFloat(parts[2], tag)
	if err != nil {
		return core.Vec3{}, err
	}
	return core.NewVec3(x, y, z), nil
}

func parseMatte(parts []string, scn *scene.Scene) error {
	if err := checkArity(parts, "matte"); err != nil {
		return err
	}

	reflectance, err := parseSceneVec3(parts[2:5], "matte")
	if err != nil {
		return err
	}
	matte, err := material.NewMatte(reflectance)
	if err != nil {
		return err
	}
	return scn.AddMaterial(parts[1], matte)
}

func parseMetal(parts []string, scn *scene.Scene) error {
	if err := checkArity(parts, "metal"); err != nil {
		return err
	}

	reflectance, err := parseSceneVec3(parts[2:5], "metal")
	if err != nil {
		return err
	}
	fuzz, err := parseSceneFloat(parts[5], "metal")
	if err != nil {
		return err
	}
	metal, err := material.NewMetal(reflectance, fuzz)
	if err != nil {
		return err
	}
	return scn.AddMaterial(parts[1], metal)
}

func parseRefractive(parts []string, scn *scene.Scene) error {
	if err := checkArity(parts, "refractive"); err != nil {
		return err
	}

	ior, err := parseSceneFloat(parts[2], "refractive")
	if err != nil {
		return err
	}
	refractive, err := material.NewRefractive(ior)
	if err != nil {
		return err
	}
	return scn.AddMaterial(parts[1], refractive)
}

func parseSphere(parts []string, scn *scene.Scene) error {
	if err := checkArity(parts, "sphere"); err != nil {
		return err
	}

	center, err := parseSceneVec3(parts[1:4], "sphere")
	if err != nil {
		return err
	}
	radius, err := parseSceneFloat(parts[4], "sphere")
	if err != nil {
		return err
	}
	mat, err := scn.GetMaterial(parts[5])
	if err != nil {
		return err
	}
	sphere, err := geometry.NewSphere(center, radius, mat)
	if err != nil {
		return err
	}
	scn.AddObject(sphere)
	return nil
}

func parseCylinder(parts []string, scn *scene.Scene) error {
	if err := checkArity(parts, "cylinder"); err != nil {
		return err
	}

	center, err := parseSceneVec3(parts[1:4], "cylinder")
	if err != nil {
		return err
	}
	radius, err := parseSceneFloat(parts[4], "cylinder")
	if err != nil {
		return err
	}
	axis, err := parseSceneVec3(parts[5:8], "cylinder")
	if err != nil {
		return err
	}
	mat, err := scn.GetMaterial(parts[8])
	if err != nil {
		return err
	}
	cylinder, err := geometry.NewCylinder(center, radius, axis, mat)
	if err != nil {
		return err
	}
	scn.AddObject(cylinder)
	return nil
}

// ParseScene reads a line-oriented scene description from r
func ParseScene(r io.Reader) (*scene.Scene, error) {
	scn := scene.NewScene()

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		tag := strings.TrimSuffix(parts[0], ":")

		var err error
		switch tag {
		case "matte":
			err = parseMatte(parts, scn)
		case "metal":
			err = parseMetal(parts, scn)
		case "refractive":
			err = parseRefractive(parts, scn)
		case "sphere":
			err = parseSphere(parts, scn)
		case "cylinder":
			err = parseCylinder(parts, scn)
		default:
			return nil, fmt.Errorf("error on line %d: unknown scene entity [%s]", lineNumber, tag)
		}
		if err != nil {
			return nil, fmt.Errorf("error on line %d (%q): %w", lineNumber, line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read scene: %v", err)
	}

	return scn, nil
}

// LoadScene reads the scene file at path
func LoadScene(path string) (*scene.Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open scene file: %s", path)
	}
	defer file.Close()

	return ParseScene(file)
}
