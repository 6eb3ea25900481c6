package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/math3d/engine/core"
)

// Workbook is a named set of operands and a list of steps to run against
// them. It is decoded from TOML.
type Workbook struct {
	Name string `toml:"name"`
	/** @brief Comparison tolerance for expectations. 0 means the evaluator default. */
	Tolerance   float64         `toml:"tolerance"`
	Vectors     []VectorDef     `toml:"vectors"`
	Matrices    []MatrixDef     `toml:"matrices"`
	Quaternions []QuaternionDef `toml:"quaternions"`
	Randoms     []RandomDef     `toml:"randoms"`
	Steps       []Step          `toml:"steps"`

	// Path is the file the workbook was loaded from, if any.
	Path string `toml:"-"`
}

type VectorDef struct {
	Name   string    `toml:"name"`
	Values []float64 `toml:"values"`
}

type MatrixDef struct {
	Name    string    `toml:"name"`
	Rows    int       `toml:"rows"`
	Columns int       `toml:"columns"`
	Values  []float64 `toml:"values"`
}

// QuaternionDef gives either Components (w, x, y, z) or an Axis with an
// Angle in degrees.
type QuaternionDef struct {
	Name       string    `toml:"name"`
	Components []float32 `toml:"components"`
	Axis       []float32 `toml:"axis"`
	Angle      float32   `toml:"angle"`
}

// RandomDef draws a seeded operand. Kind is vector, matrix or quaternion.
type RandomDef struct {
	Name    string  `toml:"name"`
	Kind    string  `toml:"kind"`
	Size    int     `toml:"size"`
	Rows    int     `toml:"rows"`
	Columns int     `toml:"columns"`
	Seed    uint64  `toml:"seed"`
	Min     float64 `toml:"min"`
	Max     float64 `toml:"max"`
}

/**
 * @brief One operation of a workbook. Args name operands or results of
 * earlier steps. The remaining fields are parameters read by the
 * operations that need them.
 */
type Step struct {
	Op     string   `toml:"op"`
	Args   []string `toml:"args"`
	Alpha  float32  `toml:"alpha"`
	Scalar float64  `toml:"scalar"`
	Radius float64  `toml:"radius"`
	Angle  float32  `toml:"angle"`
	Index  int      `toml:"index"`
	Row    int      `toml:"row"`
	Column int      `toml:"column"`
	Size   int      `toml:"size"`
	Into   string   `toml:"into"`

	Expect      []float64 `toml:"expect"`
	ExpectError string    `toml:"expect_error"`
}

// Label is the name used for the step in reports.
func (s Step) Label(index int) string {
	label := fmt.Sprintf("#%d %s", index+1, s.Op)
	if len(s.Args) > 0 {
		label += "(" + strings.Join(s.Args, ", ") + ")"
	}
	if s.Into != "" {
		label += " -> " + s.Into
	}
	return label
}

// Parse decodes a workbook. Unknown keys are rejected.
func Parse(data []byte) (*Workbook, error) {
	wb := &Workbook{}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(wb); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("%w: line %d column %d: %s", core.ErrInvalidWorkbook, row, col, derr.Error())
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return nil, fmt.Errorf("%w: %s", core.ErrInvalidWorkbook, strings.TrimSpace(serr.String()))
		}
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidWorkbook, err.Error())
	}
	if err := wb.Validate(); err != nil {
		return nil, err
	}
	return wb, nil
}

// Load reads and parses the workbook at path. A workbook without a name is
// named after its file.
func Load(path string) (*Workbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	wb, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	wb.Path = path
	if wb.Name == "" {
		wb.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return wb, nil
}

// Validate checks the parts of a workbook that do not need evaluation:
// operand names are unique, steps have an operation and error kinds are known.
func (wb *Workbook) Validate() error {
	if wb.Tolerance < 0 {
		return fmt.Errorf("%w: negative tolerance %v", core.ErrInvalidWorkbook, wb.Tolerance)
	}

	seen := make(map[string]struct{})
	declare := func(section, name string) error {
		if name == "" {
			return fmt.Errorf("%w: %s entry without a name", core.ErrInvalidWorkbook, section)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: operand %q declared twice", core.ErrInvalidWorkbook, name)
		}
		seen[name] = struct{}{}
		return nil
	}
	for _, v := range wb.Vectors {
		if err := declare("vectors", v.Name); err != nil {
			return err
		}
	}
	for _, m := range wb.Matrices {
		if err := declare("matrices", m.Name); err != nil {
			return err
		}
	}
	for _, q := range wb.Quaternions {
		if err := declare("quaternions", q.Name); err != nil {
			return err
		}
	}
	for _, r := range wb.Randoms {
		if err := declare("randoms", r.Name); err != nil {
			return err
		}
	}

	for i, s := range wb.Steps {
		if s.Op == "" {
			return fmt.Errorf("%w: step %d has no op", core.ErrInvalidWorkbook, i+1)
		}
		if s.ExpectError != "" {
			if _, ok := errorKinds[s.ExpectError]; !ok {
				return fmt.Errorf("%w: step %d: unknown error kind %q", core.ErrInvalidWorkbook, i+1, s.ExpectError)
			}
			if len(s.Expect) > 0 {
				return fmt.Errorf("%w: step %d: expect and expect_error are exclusive", core.ErrInvalidWorkbook, i+1)
			}
		}
	}
	return nil
}
