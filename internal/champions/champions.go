// Package champions holds the read-only champion id to name table used when
// normalizing match records.
package champions

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ErrUnknownChampion is returned when an id has no entry in the table.
var ErrUnknownChampion = errors.New("unknown champion id")

// Table maps stringified numeric champion ids to display names
// (e.g. "103" -> "Ahri"). It is owned by the caller and never mutated here.
type Table map[string]string

// Name returns the champion name for id.
func (t Table) Name(id int) (string, error) {
	name, ok := t[strconv.Itoa(id)]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownChampion, id)
	}
	return name, nil
}

// Load decodes a JSON object of id -> name pairs.
func Load(r io.Reader) (Table, error) {
	t := make(Table)
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode champion table: %w", err)
	}
	return t, nil
}

// LoadFile reads a champion table from path.
func LoadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open champion table: %w", err)
	}
	defer f.Close()
	return Load(f)
}
