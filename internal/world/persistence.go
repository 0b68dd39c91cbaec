package world

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/df-mc/goleveldb/leveldb"
	"github.com/google/uuid"

	"sunaba/internal/player"
)

// MetadataVersion is the current world metadata record version.
const MetadataVersion = 1

// Metadata is the versioned per-world record stored next to the chunk
// database.
type Metadata struct {
	Version         int            `json:"version"`
	WorldID         uuid.UUID      `json:"world_id"`
	Seed            uint64         `json:"seed"`
	SpawnPoint      [2]float32     `json:"spawn_point"`
	CreatedAt       string         `json:"created_at"`
	LastPlayed      string         `json:"last_played"`
	PlayTimeSeconds uint64         `json:"play_time_seconds"`
	PlayerData      *player.Player `json:"player_data,omitempty"`
}

const metadataFile = "world.json"

// Store persists chunks in a LevelDB keyed by chunk coordinate, plus
// the world metadata file. All I/O is synchronous and confined to tick
// boundaries by the callers.
type Store struct {
	dir string
	db  *leveldb.DB
}

// OpenStore opens (or creates) the world directory and its chunk
// database.
func OpenStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create world directory: %w", err)
	}
	db, err := leveldb.OpenFile(filepath.Join(dir, "chunks"), nil)
	if err != nil {
		return nil, fmt.Errorf("open chunk database: %w", err)
	}
	return &Store{dir: dir, db: db}, nil
}

// Close releases the chunk database.
func (s *Store) Close() error {
	return s.db.Close()
}

func chunkKey(cx, cy int32) []byte {
	return []byte(fmt.Sprintf("c:%d:%d", cx, cy))
}

func corruptKey(cx, cy int32) []byte {
	return []byte(fmt.Sprintf("corrupt:%d:%d", cx, cy))
}

// LoadChunk returns the chunk at (cx, cy): from disk when present,
// otherwise freshly generated. A chunk that fails to deserialize is
// moved aside under a corrupt: key and regenerated from the seed.
func (s *Store) LoadChunk(cx, cy int32, gen *Generator) *Chunk {
	data, err := s.db.Get(chunkKey(cx, cy), nil)
	if err != nil {
		if !errors.Is(err, leveldb.ErrNotFound) {
			slog.Error("read chunk", "chunk_x", cx, "chunk_y", cy, "err", err)
		}
		return gen.GenerateChunk(cx, cy)
	}

	c, err := DecodeChunk(data)
	if err != nil {
		slog.Warn("corrupt chunk on disk, regenerating", "chunk_x", cx, "chunk_y", cy, "err", err)
		// Move the original bytes aside before regenerating.
		if err := s.db.Put(corruptKey(cx, cy), data, nil); err == nil {
			_ = s.db.Delete(chunkKey(cx, cy), nil)
		}
		return gen.GenerateChunk(cx, cy)
	}

	// Loaded chunks match their disk bytes until mutated, but get one
	// settling scan after load.
	c.Dirty = false
	c.SetSimulationActive(true)
	return c
}

// HasChunk reports whether a chunk exists on disk.
func (s *Store) HasChunk(cx, cy int32) bool {
	ok, err := s.db.Has(chunkKey(cx, cy), nil)
	return err == nil && ok
}

// SaveChunk serializes a chunk to disk. The caller clears the dirty
// flag only after a successful save.
func (s *Store) SaveChunk(c *Chunk) error {
	if err := s.db.Put(chunkKey(c.X, c.Y), EncodeChunk(c), nil); err != nil {
		return fmt.Errorf("write chunk (%d, %d): %w", c.X, c.Y, err)
	}
	return nil
}

// LoadMetadata reads the world metadata file, creating a fresh record
// (new world id, current timestamp) when none exists or it cannot be
// parsed.
func (s *Store) LoadMetadata(seed uint64) Metadata {
	path := filepath.Join(s.dir, metadataFile)
	data, err := os.ReadFile(path)
	if err == nil {
		var m Metadata
		if jsonErr := json.Unmarshal(data, &m); jsonErr == nil {
			return m
		}
		slog.Warn("unreadable world metadata, recreating", "path", path)
	}

	m := Metadata{
		Version:    MetadataVersion,
		WorldID:    uuid.New(),
		Seed:       seed,
		SpawnPoint: [2]float32{0, 100},
		CreatedAt:  time.Now().Format(time.RFC3339),
	}
	if err := s.SaveMetadata(m); err != nil {
		slog.Error("write initial world metadata", "err", err)
	}
	return m
}

// SaveMetadata writes the metadata file atomically (temp file +
// rename).
func (s *Store) SaveMetadata(m Metadata) error {
	m.LastPlayed = time.Now().Format(time.RFC3339)
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	path := filepath.Join(s.dir, metadataFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace metadata: %w", err)
	}
	return nil
}
