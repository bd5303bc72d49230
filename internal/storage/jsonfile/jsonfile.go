// Package jsonfile implements the storage.Backend interface on a single JSON
// file, optionally gzipped. Every save merges with the file already on disk.
package jsonfile

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/yertz/yapr/pkg/core"
)

// Config holds configuration for the JSON file backend.
type Config struct {
	Path           string
	CompressOutput bool
}

// exportJSON is the on-disk layout.
type exportJSON struct {
	LastUpdated    string   `json:"last_updated"`
	PlayerName     string   `json:"player_name"`
	GameVersion    string   `json:"game_version"`
	TotalKills     int      `json:"total_kills"`
	NPCKills       int      `json:"npc_kills"`
	PlayerKills    int      `json:"player_kills"`
	UniqueTransits []string `json:"unique_transits"`
	UniquePlayers  []string `json:"unique_players"`
	PlayersKilled  []string `json:"players_killed"`
	DetectedZones  []string `json:"detected_zones"`
}

// lastUpdatedLayouts are accepted when reading; files written by older
// tools carry a local timestamp without an offset.
var lastUpdatedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// Backend stores the summary in a JSON file.
type Backend struct {
	cfg Config
	mu  sync.Mutex
}

// New creates a JSON file backend.
func New(cfg Config) *Backend {
	return &Backend{cfg: cfg}
}

// Init creates the file with a zeroed summary if it doesn't exist yet.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cfg.Path == "" {
		return fmt.Errorf("export path not set")
	}
	if dir := filepath.Dir(b.cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if _, err := os.Stat(b.cfg.Path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat export file: %w", err)
	}
	empty := core.EmptyExport()
	empty.LastUpdated = time.Now().UTC()
	return b.write(toJSON(empty))
}

// Close is a no-op; every save is written through.
func (b *Backend) Close() error {
	return nil
}

// Target returns the file path.
func (b *Backend) Target() string {
	return b.cfg.Path
}

// Load reads the summary. A missing file gives a zeroed summary.
func (b *Backend) Load() (*core.Export, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, err := b.read()
	if errors.Is(err, fs.ErrNotExist) {
		e := core.EmptyExport()
		return &e, nil
	}
	if err != nil {
		return nil, err
	}
	e := fromJSON(data)
	return &e, nil
}

// Save merges e with the file on disk and writes the result. An unreadable
// file is replaced by e.
func (b *Backend) Save(e *core.Export) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var stored *core.Export
	if data, err := b.read(); err == nil {
		s := fromJSON(data)
		stored = &s
	}
	merged := core.MergeExports(stored, *e)
	return b.write(toJSON(merged))
}

func (b *Backend) read() (exportJSON, error) {
	var data exportJSON

	f, err := os.Open(b.cfg.Path)
	if err != nil {
		return data, err
	}
	defer f.Close()

	var r io.Reader = f
	if b.cfg.CompressOutput {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return data, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return data, fmt.Errorf("failed to parse %s: %w", b.cfg.Path, err)
	}
	return data, nil
}

// write replaces the file through a temporary sibling.
func (b *Backend) write(data exportJSON) error {
	tmp := b.cfg.Path + ".tmp"
	if err := b.writeFile(tmp, data); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, b.cfg.Path); err != nil {
		return fmt.Errorf("failed to replace export file: %w", err)
	}
	return nil
}

func (b *Backend) writeFile(path string, data exportJSON) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if !b.cfg.CompressOutput {
		encoder := json.NewEncoder(f)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	}

	gzWriter := gzip.NewWriter(f)
	encoder := json.NewEncoder(gzWriter)
	if err := encoder.Encode(data); err != nil {
		gzWriter.Close()
		return err
	}
	return gzWriter.Close()
}

func toJSON(e core.Export) exportJSON {
	return exportJSON{
		LastUpdated:    e.LastUpdated.UTC().Format(time.RFC3339),
		PlayerName:     e.PlayerName,
		GameVersion:    e.GameVersion,
		TotalKills:     e.TotalKills,
		NPCKills:       e.NPCKills,
		PlayerKills:    e.PlayerKills,
		UniqueTransits: nonNil(e.UniqueTransits),
		UniquePlayers:  nonNil(e.UniquePlayers),
		PlayersKilled:  nonNil(e.PlayersKilled),
		DetectedZones:  nonNil(e.DetectedZones),
	}
}

func fromJSON(d exportJSON) core.Export {
	e := core.Export{
		PlayerName:     d.PlayerName,
		GameVersion:    d.GameVersion,
		TotalKills:     d.TotalKills,
		NPCKills:       d.NPCKills,
		PlayerKills:    d.PlayerKills,
		UniqueTransits: nonNil(d.UniqueTransits),
		UniquePlayers:  nonNil(d.UniquePlayers),
		PlayersKilled:  nonNil(d.PlayersKilled),
		DetectedZones:  nonNil(d.DetectedZones),
	}
	if e.PlayerName == "" {
		e.PlayerName = core.Unknown
	}
	if e.GameVersion == "" {
		e.GameVersion = core.Unknown
	}
	for _, layout := range lastUpdatedLayouts {
		if ts, err := time.Parse(layout, d.LastUpdated); err == nil {
			e.LastUpdated = ts.UTC()
			break
		}
	}
	return e
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
