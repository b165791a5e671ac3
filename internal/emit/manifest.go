// Package emit generates fully unrolled Go kernel sources for
// statically known broadcast applications, intended to be run through
// go:generate. The engine package decides shapes and result types; this
// package only renders the straight-line code.
package emit

import (
	"fmt"
	"go/token"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/bcast/internal/engine"
)

// DefaultPackage is used when a manifest does not name an output package.
const DefaultPackage = "kernels"

// Manifest lists the kernels to generate into one Go source file.
type Manifest struct {
	Package string   `yaml:"package"`
	Kernels []Kernel `yaml:"kernels"`
}

// Kernel describes one unrolled elementwise function: the generated
// function's name, the built-in op to apply, and the static operands.
type Kernel struct {
	Name     string        `yaml:"name"`
	Op       string        `yaml:"op"`
	Operands []OperandSpec `yaml:"operands"`
}

// OperandSpec is the static description of one kernel operand.
// Scalar operands omit the shape and are passed by value.
type OperandSpec struct {
	Shape  []int  `yaml:"shape,flow"`
	DType  string `yaml:"dtype"`
	Scalar bool   `yaml:"scalar,omitempty"`
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML manifest and validates it.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if m.Package == "" {
		m.Package = DefaultPackage
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks structural manifest rules. Shape compatibility and
// result types are the engine's concern and are checked during Check
// or Generate.
func (m *Manifest) Validate() error {
	if !token.IsIdentifier(m.Package) {
		return fmt.Errorf("package %q is not a valid Go identifier", m.Package)
	}
	if len(m.Kernels) == 0 {
		return fmt.Errorf("manifest declares no kernels")
	}

	seen := make(map[string]bool, len(m.Kernels))
	for i, k := range m.Kernels {
		if !token.IsIdentifier(k.Name) {
			return fmt.Errorf("kernel %d: name %q is not a valid Go identifier", i, k.Name)
		}
		if seen[k.Name] {
			return fmt.Errorf("kernel %q declared twice", k.Name)
		}
		seen[k.Name] = true

		if _, ok := engine.Op(k.Op); !ok {
			return fmt.Errorf("kernel %q: unknown op %q", k.Name, k.Op)
		}
		if len(k.Operands) == 0 {
			return fmt.Errorf("kernel %q: no operands", k.Name)
		}

		for j, op := range k.Operands {
			if _, ok := engine.ParseDataType(op.DType); !ok {
				return fmt.Errorf("kernel %q operand %d: unknown dtype %q", k.Name, j, op.DType)
			}
			if op.Scalar && len(op.Shape) > 0 {
				return fmt.Errorf("kernel %q operand %d: scalar operands take no shape", k.Name, j)
			}
			if err := engine.Shape(op.Shape).Validate(); err != nil {
				return fmt.Errorf("kernel %q operand %d: %w", k.Name, j, err)
			}
		}
	}
	return nil
}

// shape returns the operand's engine shape (rank 0 for scalars).
func (o OperandSpec) shape() engine.Shape {
	return engine.Shape(o.Shape)
}

// dtype returns the operand's parsed element type. Validate runs first,
// so an unknown name here is an internal error.
func (o OperandSpec) dtype() engine.DataType {
	dt, ok := engine.ParseDataType(o.DType)
	if !ok {
		panic("unvalidated operand dtype " + o.DType)
	}
	return dt
}
