package world

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"spacefolio/internal/components"
	"spacefolio/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// --- JSON types ---

// Snapshot is a point-in-time dump of the world, used by the headless
// snapshot command and by tests that compare scene state.
type Snapshot struct {
	Camera  CameraDef   `json:"camera"`
	Objects []ObjectDef `json:"objects"`
}

type CameraDef struct {
	FOV      float32    `json:"fov"`
	Aspect   float32    `json:"aspect"`
	Near     float32    `json:"near"`
	Far      float32    `json:"far"`
	Position [3]float64 `json:"position"`
}

type ObjectDef struct {
	UID        uint64            `json:"uid"`
	Name       string            `json:"name"`
	Tags       []string          `json:"tags,omitempty"`
	Position   [3]float64        `json:"position"`
	Rotation   [3]float64        `json:"rotation"`
	Scale      [3]float64        `json:"scale"`
	Components []json.RawMessage `json:"components"`
}

type componentHeader struct {
	Type string `json:"type"`
}

type meshRendererDef struct {
	Type      string  `json:"type"`
	Mesh      string  `json:"mesh"`
	Bounding  float64 `json:"bounding_radius"`
	Material  string  `json:"material"`
	Color     string  `json:"color"`
	Map       string  `json:"map,omitempty"`
	NormalMap string  `json:"normalMap,omitempty"`
}

type pointLightDef struct {
	Type      string  `json:"type"`
	Color     string  `json:"color"`
	Intensity float32 `json:"intensity"`
}

type ambientLightDef struct {
	Type      string  `json:"type"`
	Color     string  `json:"color"`
	Intensity float32 `json:"intensity"`
}

type scriptDef struct {
	Type  string         `json:"type"`
	Name  string         `json:"name"`
	Props map[string]any `json:"props,omitempty"`
}

// colorHex writes colors as #rrggbb.
func colorHex(c rl.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// --- Saving ---

// Snapshot captures the camera and every object in scene order.
func (w *World) Snapshot() Snapshot {
	c := w.Camera
	snap := Snapshot{
		Camera: CameraDef{
			FOV:      c.FOV,
			Aspect:   c.Aspect,
			Near:     c.Near,
			Far:      c.Far,
			Position: c.Position.Array(),
		},
		Objects: make([]ObjectDef, 0, len(w.Scene.GameObjects)),
	}

	for _, g := range w.Scene.GameObjects {
		objDef := ObjectDef{
			UID:      g.UID,
			Name:     g.Name,
			Tags:     g.Tags,
			Position: g.Transform.Position.Array(),
			Rotation: g.Transform.Rotation.Array(),
			Scale:    g.Transform.Scale.Array(),
		}
		for _, comp := range g.Components() {
			if raw := serializeComponent(comp); raw != nil {
				objDef.Components = append(objDef.Components, raw)
			}
		}
		snap.Objects = append(snap.Objects, objDef)
	}
	return snap
}

// EncodeSnapshot writes the world's snapshot as indented JSON.
func (w *World) EncodeSnapshot(out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(w.Snapshot()); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// SaveSnapshot writes the snapshot to path, replacing any existing file.
func (w *World) SaveSnapshot(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := w.EncodeSnapshot(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot reads a snapshot written by EncodeSnapshot.
func DecodeSnapshot(in io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(in).Decode(&snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &snap, nil
}

// Find returns the first object with name, or nil.
func (s *Snapshot) Find(name string) *ObjectDef {
	for i := range s.Objects {
		if s.Objects[i].Name == name {
			return &s.Objects[i]
		}
	}
	return nil
}

// ComponentTypes lists the type of each serialized component in order.
func (o *ObjectDef) ComponentTypes() []string {
	types := make([]string, 0, len(o.Components))
	for _, raw := range o.Components {
		var header componentHeader
		if err := json.Unmarshal(raw, &header); err != nil {
			continue
		}
		types = append(types, header.Type)
	}
	return types
}

func serializeComponent(c engine.Component) json.RawMessage {
	var def any

	switch comp := c.(type) {
	case *components.MeshRenderer:
		d := meshRendererDef{
			Type:     "MeshRenderer",
			Mesh:     comp.Geometry.Kind(),
			Bounding: comp.Geometry.BoundingRadius(),
			Material: comp.Material.Kind.String(),
			Color:    colorHex(comp.Material.Color),
		}
		if comp.Material.Map != nil {
			d.Map = comp.Material.Map.Path
		}
		if comp.Material.NormalMap != nil {
			d.NormalMap = comp.Material.NormalMap.Path
		}
		def = d

	case *components.PointLight:
		def = pointLightDef{
			Type:      "PointLight",
			Color:     colorHex(comp.Color),
			Intensity: comp.Intensity,
		}

	case *components.AmbientLight:
		def = ambientLightDef{
			Type:      "AmbientLight",
			Color:     colorHex(comp.Color),
			Intensity: comp.Intensity,
		}

	default:
		// Try script registry
		if name, props, ok := engine.SerializeScript(c); ok {
			def = scriptDef{Type: "Script", Name: name, Props: props}
		} else {
			return nil
		}
	}

	data, err := json.Marshal(def)
	if err != nil {
		return nil
	}
	return data
}
