package scene

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/dnd/pkg/dnd"
	"github.com/go-drift/dnd/pkg/errors"
	"github.com/go-drift/dnd/pkg/geometry"
)

// FormatVersion is the newest scene format this package reads.
const FormatVersion = "v1.0.0"

// File is the YAML representation of a scene.
type File struct {
	Version    string       `yaml:"version,omitempty"`
	Container  ContainerDoc `yaml:"container"`
	Settings   SettingsDoc  `yaml:"settings,omitempty"`
	Draggables []string     `yaml:"draggables,omitempty"`
	Droppables []string     `yaml:"droppables,omitempty"`
	Elements   []ElementDoc `yaml:"elements"`
	Script     []Step       `yaml:"script,omitempty"`
}

// ContainerDoc places the board on the page.
type ContainerDoc struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ElementDoc describes a node. X and Y are relative to the parent.
type ElementDoc struct {
	ID       string       `yaml:"id"`
	Label    string       `yaml:"label,omitempty"`
	Classes  []string     `yaml:"classes,omitempty"`
	X        float64      `yaml:"x"`
	Y        float64      `yaml:"y"`
	Width    float64      `yaml:"width"`
	Height   float64      `yaml:"height"`
	Children []ElementDoc `yaml:"children,omitempty"`
}

// SettingsDoc holds settings overrides. A nil field keeps the base value. A
// class field given as null decodes to the empty string, which disables it.
type SettingsDoc struct {
	DragOverClass *string
	DropClass     *string
	DraggingClass *string
	Clone         *bool
	Tolerance     *dnd.Tolerance
	AcceptClass   *string
}

// UnmarshalYAML decodes the settings mapping by hand so that an explicit
// null can be told apart from a missing key.
func (s *SettingsDoc) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return &errors.ParseError{Source: "settings", Got: value.ShortTag()}
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		var err error
		switch key.Value {
		case "dragOverClass":
			s.DragOverClass, err = classValue(val)
		case "dropClass":
			s.DropClass, err = classValue(val)
		case "draggingClass":
			s.DraggingClass, err = classValue(val)
		case "acceptClass":
			s.AcceptClass, err = classValue(val)
		case "clone":
			var b bool
			err = val.Decode(&b)
			s.Clone = &b
		case "tolerance":
			var t dnd.Tolerance
			t, err = dnd.ParseTolerance(val.Value)
			s.Tolerance = &t
		default:
			return fmt.Errorf("line %d: unknown setting %q", key.Line, key.Value)
		}
		if err != nil {
			return fmt.Errorf("line %d: settings.%s: %w", val.Line, key.Value, err)
		}
	}
	return nil
}

// MarshalYAML writes only the overridden fields. Disabled classes are
// written as null.
func (s SettingsDoc) MarshalYAML() (any, error) {
	out := map[string]any{}
	putClass := func(key string, v *string) {
		if v == nil {
			return
		}
		if *v == "" {
			out[key] = nil
			return
		}
		out[key] = *v
	}
	putClass("dragOverClass", s.DragOverClass)
	putClass("dropClass", s.DropClass)
	putClass("draggingClass", s.DraggingClass)
	putClass("acceptClass", s.AcceptClass)
	if s.Clone != nil {
		out["clone"] = *s.Clone
	}
	if s.Tolerance != nil {
		out["tolerance"] = int(*s.Tolerance)
	}
	return out, nil
}

func classValue(n *yaml.Node) (*string, error) {
	if n.ShortTag() == "!!null" {
		empty := ""
		return &empty, nil
	}
	var s string
	if err := n.Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Apply returns base with the overrides in s applied.
func (s SettingsDoc) Apply(base dnd.Settings) dnd.Settings {
	if s.DragOverClass != nil {
		base.DragOverClass = *s.DragOverClass
	}
	if s.DropClass != nil {
		base.DropClass = *s.DropClass
	}
	if s.DraggingClass != nil {
		base.DraggingClass = *s.DraggingClass
	}
	if s.AcceptClass != nil {
		base.AcceptClass = *s.AcceptClass
	}
	if s.Clone != nil {
		base.Clone = *s.Clone
	}
	if s.Tolerance != nil {
		base.Tolerance = *s.Tolerance
	}
	return base
}

// Merge returns s with every field set in other taking precedence.
func (s SettingsDoc) Merge(other SettingsDoc) SettingsDoc {
	if other.DragOverClass != nil {
		s.DragOverClass = other.DragOverClass
	}
	if other.DropClass != nil {
		s.DropClass = other.DropClass
	}
	if other.DraggingClass != nil {
		s.DraggingClass = other.DraggingClass
	}
	if other.AcceptClass != nil {
		s.AcceptClass = other.AcceptClass
	}
	if other.Clone != nil {
		s.Clone = other.Clone
	}
	if other.Tolerance != nil {
		s.Tolerance = other.Tolerance
	}
	return s
}

// Load reads and builds the scene at path.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes and builds a scene. source names the input in errors.
func Parse(data []byte, source string) (*Scene, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, &errors.DndError{
			Op:   "scene.Parse",
			Kind: errors.KindParsing,
			Err:  fmt.Errorf("%s: %w", source, err),
		}
	}
	return f.Build(source)
}

// Marshal encodes f as YAML.
func (f *File) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func checkVersion(v, source string) error {
	if v == "" {
		return nil
	}
	if !semver.IsValid(v) {
		return &errors.ParseError{Source: source, Field: "version", Got: v}
	}
	if semver.Major(v) != semver.Major(FormatVersion) {
		return fmt.Errorf("%s: unsupported scene major version %s (want %s)", source, semver.Major(v), semver.Major(FormatVersion))
	}
	if semver.Compare(v, FormatVersion) > 0 {
		return fmt.Errorf("%s: scene version %s is newer than supported %s", source, v, FormatVersion)
	}
	return nil
}

// Build validates f and constructs its board.
func (f *File) Build(source string) (*Scene, error) {
	if err := checkVersion(f.Version, source); err != nil {
		return nil, err
	}
	if f.Container.Width < 0 || f.Container.Height < 0 {
		return nil, &errors.ParseError{Source: source, Field: "container", Got: f.Container}
	}

	board := NewBoard(
		geometry.Offset{X: f.Container.X, Y: f.Container.Y},
		geometry.Size{Width: f.Container.Width, Height: f.Container.Height},
	)
	seen := make(map[string]bool)
	var add func(parent *Node, docs []ElementDoc, path string) error
	add = func(parent *Node, docs []ElementDoc, path string) error {
		for i, doc := range docs {
			field := fmt.Sprintf("%s[%d]", path, i)
			if doc.ID == "" {
				return &errors.ParseError{Source: source, Field: field + ".id", Got: `""`}
			}
			if seen[doc.ID] {
				return &errors.ParseError{Source: source, Field: field + ".id", Got: doc.ID + " (duplicate)"}
			}
			if doc.Width < 0 || doc.Height < 0 {
				return &errors.ParseError{Source: source, Field: field, Got: fmt.Sprintf("%gx%g", doc.Width, doc.Height)}
			}
			seen[doc.ID] = true
			n := board.Add(parent, doc.ID, geometry.RectFromLTWH(doc.X, doc.Y, doc.Width, doc.Height), doc.Classes...)
			n.Label = doc.Label
			if err := add(n, doc.Children, field+".children"); err != nil {
				return err
			}
		}
		return nil
	}
	if err := add(nil, f.Elements, "elements"); err != nil {
		return nil, err
	}

	for i, step := range f.Script {
		if _, err := step.PointerPhase(); err != nil {
			return nil, fmt.Errorf("%s: script[%d]: %w", source, i, err)
		}
		if step.Target != "" && !seen[step.Target] {
			return nil, &errors.ParseError{Source: source, Field: fmt.Sprintf("script[%d].target", i), Got: step.Target}
		}
	}

	return &Scene{
		Source:   source,
		File:     f,
		Board:    board,
		Settings: f.Settings.Apply(dnd.DefaultSettings()),
	}, nil
}
