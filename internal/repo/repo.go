// Package repo provides SQLite-backed persistence for saved dashboard
// configs. Metadata lives in .dashgen/configs.db; each saved spec is one
// JSON file under .dashgen/configs/, keyed by config id.
package repo

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/dashkite/dashgen/internal/spec"
)

// ErrNotFound is returned when no config matches the given name or id.
var ErrNotFound = errors.New("config not found")

// ConfigMetadata is the persisted record for one saved config.
type ConfigMetadata struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description,omitempty"`
	Tags              []string   `json:"tags"`
	CreatedAt         time.Time  `json:"created_at"`
	LastUsedAt        *time.Time `json:"last_used_at,omitempty"`
	UsageCount        int        `json:"usage_count"`
	SchemaFingerprint string     `json:"schema_fingerprint,omitempty"`
	SpecPath          string     `json:"spec_path"`
	PreviewPath       string     `json:"preview_path,omitempty"`
}

// Store manages the configs database and the per-config spec files.
type Store struct {
	db       *sql.DB
	specsDir string
	dbPath   string
}

// Open opens or creates the store under the given .dashgen directory,
// initializing the schema if the database is new.
func Open(dir string) (*Store, error) {
	specsDir := filepath.Join(dir, "configs")
	if err := os.MkdirAll(specsDir, 0755); err != nil {
		return nil, fmt.Errorf("create configs directory: %w", err)
	}

	dbPath := filepath.Join(dir, "configs.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open configs db: %w", err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db, specsDir: specsDir, dbPath: dbPath}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS configs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL,
		last_used_at TEXT,
		usage_count INTEGER NOT NULL DEFAULT 0,
		schema_fingerprint TEXT NOT NULL DEFAULT '',
		spec_path TEXT NOT NULL,
		preview_path TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_configs_fingerprint ON configs(schema_fingerprint);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create configs table: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// Save persists a spec under a name, overwriting an existing config of
// the same name while keeping its id, creation time, and usage count.
func (s *Store) Save(name, description string, tags []string, d *spec.Dashboard, fingerprint, previewPath string) (*ConfigMetadata, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: config name required", spec.ErrInvalidInput)
	}
	if tags == nil {
		tags = []string{}
	}

	existing, err := s.getByNameOrID(name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	meta := &ConfigMetadata{
		Name:              name,
		Description:       description,
		Tags:              tags,
		SchemaFingerprint: fingerprint,
		PreviewPath:       previewPath,
	}
	if existing != nil {
		meta.ID = existing.ID
		meta.CreatedAt = existing.CreatedAt
		meta.LastUsedAt = existing.LastUsedAt
		meta.UsageCount = existing.UsageCount
	} else {
		meta.ID = uuid.NewString()
		// RFC3339 storage keeps second precision, so match it here.
		meta.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	meta.SpecPath = filepath.Join(s.specsDir, meta.ID+".json")

	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode spec: %w", err)
	}
	if err := os.WriteFile(meta.SpecPath, raw, 0644); err != nil {
		return nil, fmt.Errorf("write spec file: %w", err)
	}

	tagsJSON, _ := json.Marshal(meta.Tags)
	_, err = s.db.Exec(`
		INSERT INTO configs (id, name, description, tags, created_at, last_used_at, usage_count, schema_fingerprint, spec_path, preview_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			description = excluded.description,
			tags = excluded.tags,
			schema_fingerprint = excluded.schema_fingerprint,
			spec_path = excluded.spec_path,
			preview_path = excluded.preview_path`,
		meta.ID, meta.Name, meta.Description, string(tagsJSON),
		meta.CreatedAt.Format(time.RFC3339), nullableTime(meta.LastUsedAt),
		meta.UsageCount, meta.SchemaFingerprint, meta.SpecPath, meta.PreviewPath,
	)
	if err != nil {
		return nil, fmt.Errorf("save config: %w", err)
	}
	return meta, nil
}

// List returns configs whose name or description contains query (empty
// matches all), optionally restricted to an exact tag, newest first.
func (s *Store) List(query, tag string) ([]ConfigMetadata, error) {
	rows, err := s.db.Query(`SELECT id, name, description, tags, created_at, last_used_at, usage_count, schema_fingerprint, spec_path, preview_path
		FROM configs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list configs: %w", err)
	}
	defer rows.Close()

	var out []ConfigMetadata
	for rows.Next() {
		meta, err := scanConfig(rows)
		if err != nil {
			return nil, err
		}
		if query != "" {
			q := strings.ToLower(query)
			if !strings.Contains(strings.ToLower(meta.Name), q) &&
				!strings.Contains(strings.ToLower(meta.Description), q) {
				continue
			}
		}
		if tag != "" && !containsTag(meta.Tags, tag) {
			continue
		}
		out = append(out, *meta)
	}
	return out, rows.Err()
}

// Get retrieves a config by name or id, loads its spec, and records the
// use (usage_count incremented, last_used_at set).
func (s *Store) Get(nameOrID string) (*ConfigMetadata, *spec.Dashboard, error) {
	meta, err := s.getByNameOrID(nameOrID)
	if err != nil {
		return nil, nil, err
	}

	raw, err := os.ReadFile(meta.SpecPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read spec file: %w", err)
	}
	d, err := spec.Parse(raw)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC().Truncate(time.Second)
	if _, err := s.db.Exec(
		"UPDATE configs SET usage_count = usage_count + 1, last_used_at = ? WHERE id = ?",
		now.Format(time.RFC3339), meta.ID,
	); err != nil {
		return nil, nil, fmt.Errorf("record usage: %w", err)
	}
	meta.UsageCount++
	meta.LastUsedAt = &now

	return meta, d, nil
}

// FindByFingerprint returns configs whose schema fingerprint matches
// exactly.
func (s *Store) FindByFingerprint(fingerprint string) ([]ConfigMetadata, error) {
	if fingerprint == "" {
		return nil, nil
	}
	rows, err := s.db.Query(`SELECT id, name, description, tags, created_at, last_used_at, usage_count, schema_fingerprint, spec_path, preview_path
		FROM configs WHERE schema_fingerprint = ? ORDER BY usage_count DESC`, fingerprint)
	if err != nil {
		return nil, fmt.Errorf("find by fingerprint: %w", err)
	}
	defer rows.Close()

	var out []ConfigMetadata
	for rows.Next() {
		meta, err := scanConfig(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *meta)
	}
	return out, rows.Err()
}

// Delete removes a config and its spec file.
func (s *Store) Delete(nameOrID string) error {
	meta, err := s.getByNameOrID(nameOrID)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec("DELETE FROM configs WHERE id = ?", meta.ID); err != nil {
		return fmt.Errorf("delete config: %w", err)
	}
	if err := os.Remove(meta.SpecPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove spec file: %w", err)
	}
	return nil
}

func (s *Store) getByNameOrID(nameOrID string) (*ConfigMetadata, error) {
	row := s.db.QueryRow(`SELECT id, name, description, tags, created_at, last_used_at, usage_count, schema_fingerprint, spec_path, preview_path
		FROM configs WHERE name = ? OR id = ?`, nameOrID, nameOrID)
	meta, err := scanConfig(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, nameOrID)
	}
	if err != nil {
		return nil, err
	}
	return meta, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanConfig(row scanner) (*ConfigMetadata, error) {
	var meta ConfigMetadata
	var tagsJSON, createdAt string
	var lastUsed sql.NullString
	if err := row.Scan(&meta.ID, &meta.Name, &meta.Description, &tagsJSON, &createdAt,
		&lastUsed, &meta.UsageCount, &meta.SchemaFingerprint, &meta.SpecPath, &meta.PreviewPath); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan config: %w", err)
	}

	if err := json.Unmarshal([]byte(tagsJSON), &meta.Tags); err != nil || meta.Tags == nil {
		meta.Tags = []string{}
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		meta.CreatedAt = t
	}
	if lastUsed.Valid {
		if t, err := time.Parse(time.RFC3339, lastUsed.String); err == nil {
			meta.LastUsedAt = &t
		}
	}
	return &meta, nil
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}
