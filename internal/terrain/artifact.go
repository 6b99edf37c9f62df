package terrain

import (
	"fmt"
	"os"
	"path/filepath"
)

// ArtifactName returns the fixed file name for a grid dump of the given
// dimensions. The dump is raw row-major bytes (0/1), no header and no
// compression; consumers must know the dimensions out-of-band.
func ArtifactName(rows, cols int) string {
	return fmt.Sprintf("is_soil_%d_%d.bin", rows, cols)
}

// WriteArtifact dumps the class grid under dir, one byte per cell.
func WriteArtifact(dir string, g *ClassGrid) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	buf := make([]byte, len(g.cells))
	for i, v := range g.cells {
		if v {
			buf[i] = 1
		}
	}
	path := filepath.Join(dir, ArtifactName(g.Rows, g.Cols))
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// ReadArtifact loads a grid dump written by WriteArtifact. The caller
// supplies the dimensions.
func ReadArtifact(dir string, rows, cols int) (*ClassGrid, error) {
	path := filepath.Join(dir, ArtifactName(rows, cols))
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(buf) != rows*cols {
		return nil, fmt.Errorf("terrain: artifact %s holds %d cells, want %d", path, len(buf), rows*cols)
	}
	g := NewClassGrid(rows, cols)
	for i, b := range buf {
		g.cells[i] = b != 0
	}
	return g, nil
}
