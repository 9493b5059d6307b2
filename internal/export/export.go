// Package export writes a compressed snapshot of the store for archival or
// transfer between machines.
package export

import (
	"encoding/json"
	"io"

	"github.com/klauspost/compress/zstd"

	"sem/internal/model"
	"sem/internal/storage"
)

// Snapshot is the export envelope.
type Snapshot struct {
	Snapshot string         `json:"snapshot"`
	Entities []model.Entity `json:"entities"`
	Changes  []model.Change `json:"changes"`
}

// Write serialises a snapshot's entities plus every stored change as
// zstd-compressed JSON.
func Write(db *storage.DB, snapshot string, w io.Writer) error {
	if snapshot == "" {
		snapshot = "current"
	}

	entities, err := db.GetEntities(snapshot, "")
	if err != nil {
		return err
	}
	changes, err := db.GetChanges(storage.ChangeFilter{})
	if err != nil {
		return err
	}

	encoder, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	if err := json.NewEncoder(encoder).Encode(Snapshot{
		Snapshot: snapshot,
		Entities: entities,
		Changes:  changes,
	}); err != nil {
		encoder.Close()
		return err
	}
	return encoder.Close()
}

// Read decodes a snapshot previously produced by Write.
func Read(r io.Reader) (*Snapshot, error) {
	decoder, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer decoder.Close()

	var snap Snapshot
	if err := json.NewDecoder(decoder).Decode(&snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
