package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/runrotate/common"
)

//go:embed *.json
var LevelsFS embed.FS

var ErrInvalidLevel = errors.New("levels: invalid level")

// Point is an [x, y] pixel coordinate of an object's top-left corner.
type Point [2]float64

func (p Point) Vec() cp.Vector {
	return cp.Vector{X: p[0], Y: p[1]}
}

// Def is a level definition. The outer ring of cells is always filled with
// frame blocks and does not need listing.
type Def struct {
	Name     string  `json:"name"`
	CellSize int     `json:"cell_size"`
	Display  int     `json:"display,omitempty"`
	XSpeed   float64 `json:"x_speed"`
	YSpeed   float64 `json:"y_speed"`
	// Gravity applies to every dynamic object; PlayerGravity overrides it
	// for the player only. Zero means the tuning default.
	Gravity       float64 `json:"gravity,omitempty"`
	PlayerGravity float64 `json:"player_gravity,omitempty"`

	Player  Point   `json:"player"`
	Prize   Point   `json:"prize"`
	Boxes   []Point `json:"boxes,omitempty"`
	Blocks  []Point `json:"blocks,omitempty"`
	Skulls  []Point `json:"skulls,omitempty"`
	Portals []Point `json:"portals,omitempty"`

	// Fingerprint is the xxhash of the source bytes; edited levels get new
	// fingerprints so their run records do not mix.
	Fingerprint uint64 `json:"-"`
}

// Cells is the grid dimension in cells along each axis.
func (d *Def) Cells() int {
	return d.Display / d.CellSize
}

// PlayerSize shrinks the player by ten percent per full hundred pixels of
// cell size so it fits through single-cell gaps.
func (d *Def) PlayerSize() int {
	return d.CellSize - d.CellSize/100*10
}

func (d *Def) Validate() error {
	switch {
	case d.CellSize <= 0:
		return fmt.Errorf("%w %q: cell size %d", ErrInvalidLevel, d.Name, d.CellSize)
	case d.Display%d.CellSize != 0:
		return fmt.Errorf("%w %q: display %d is not a multiple of cell size %d", ErrInvalidLevel, d.Name, d.Display, d.CellSize)
	case d.XSpeed <= 0 || d.YSpeed <= 0:
		return fmt.Errorf("%w %q: speeds must be positive", ErrInvalidLevel, d.Name)
	case len(d.Portals) != 0 && len(d.Portals) != 2:
		return fmt.Errorf("%w %q: want 0 or 2 portals, got %d", ErrInvalidLevel, d.Name, len(d.Portals))
	}
	limit := float64(d.Display - d.CellSize)
	check := func(what string, p Point) error {
		if p[0] < 0 || p[1] < 0 || p[0] > limit || p[1] > limit {
			return fmt.Errorf("%w %q: %s at (%g,%g) is outside the level", ErrInvalidLevel, d.Name, what, p[0], p[1])
		}
		return nil
	}
	if err := check("player", d.Player); err != nil {
		return err
	}
	if err := check("prize", d.Prize); err != nil {
		return err
	}
	for what, pts := range map[string][]Point{"box": d.Boxes, "block": d.Blocks, "skull": d.Skulls, "portal": d.Portals} {
		for _, p := range pts {
			if err := check(what, p); err != nil {
				return err
			}
		}
	}
	return nil
}

// Parse decodes and validates a level definition.
func Parse(data []byte) (*Def, error) {
	var d Def
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("levels: unmarshal level: %w", err)
	}
	if d.Display == 0 {
		d.Display = common.DisplaySize
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	d.Fingerprint = xxhash.Sum64(data)
	return &d, nil
}

// Names lists the embedded levels in play order.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}

// Load reads an embedded level by name (".json" optional). A name that is
// a path to an existing file is read from disk instead.
func Load(name string) (*Def, error) {
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("levels: read %s: %w", name, err)
		}
		return Parse(data)
	}
	clean := strings.TrimPrefix(path.Clean(name), "levels/")
	if !strings.HasSuffix(clean, ".json") {
		clean += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, clean)
	if err != nil {
		return nil, fmt.Errorf("levels: read level: %w", err)
	}
	return Parse(data)
}
