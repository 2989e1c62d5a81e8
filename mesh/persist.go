package mesh

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"

	boundErrors "github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/pkg/errors"
)

// gridFileVersion guards the on-disk layout. Bump on incompatible change.
const gridFileVersion = 1

// gridFile is the serialized form of a Grid. Checksum covers the grid
// payload so a corrupted or hand-edited file is rejected on load.
type gridFile struct {
	Version  int      `json:"version"`
	Checksum string   `json:"checksum"`
	Grid     gridData `json:"grid"`
}

type gridData struct {
	Xs    []float64   `json:"xs"`
	Ys    []float64   `json:"ys"`
	Probs [][]float64 `json:"probs"`
}

func (d gridData) checksum() (string, error) {
	payload, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(payload)
	return hex.EncodeToString(hash[:]), nil
}

// Write serializes the grid as JSON to w.
func (g *Grid) Write(w io.Writer) error {
	data := gridData{Xs: g.Xs, Ys: g.Ys, Probs: g.Probs}
	sum, err := data.checksum()
	if err != nil {
		return boundErrors.Wrap(err, "mesh: encoding grid")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(gridFile{Version: gridFileVersion, Checksum: sum, Grid: data}); err != nil {
		return boundErrors.Wrap(err, "mesh: writing grid")
	}
	return nil
}

// Save writes the grid to path, creating or truncating the file.
func (g *Grid) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return boundErrors.Wrap(err, "mesh: creating grid file")
	}
	defer func() { _ = f.Close() }()
	return g.Write(f)
}

// Read deserializes a grid written by Write, verifying version and checksum.
func Read(r io.Reader) (*Grid, error) {
	var file gridFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, boundErrors.Wrap(err, "mesh: decoding grid")
	}
	if file.Version != gridFileVersion {
		return nil, boundErrors.NewValueError("mesh.Read",
			"unsupported grid file version")
	}
	sum, err := file.Grid.checksum()
	if err != nil {
		return nil, boundErrors.Wrap(err, "mesh: verifying grid")
	}
	if sum != file.Checksum {
		return nil, boundErrors.NewValueError("mesh.Read", "grid checksum mismatch")
	}

	g := &Grid{Xs: file.Grid.Xs, Ys: file.Grid.Ys, Probs: file.Grid.Probs}
	rows, cols := g.Dims()
	if len(g.Probs) != rows {
		return nil, boundErrors.NewDimensionError("mesh.Read", rows, len(g.Probs), 0)
	}
	for _, row := range g.Probs {
		if len(row) != cols {
			return nil, boundErrors.NewDimensionError("mesh.Read", cols, len(row), 1)
		}
	}
	return g, nil
}

// Load reads a grid file written by Save.
func Load(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, boundErrors.Wrap(err, "mesh: opening grid file")
	}
	defer func() { _ = f.Close() }()
	return Read(f)
}
