package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/quarry-labs/corrag/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/quarry-labs/corrag/internal/core/domain"
	"github.com/quarry-labs/corrag/internal/core/ports/driven"
)

// Store is a SQLite-backed storage for the knowledge base.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.corrag/data/knowledge.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".corrag", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "knowledge.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// Upsert stores a document, replacing any existing record with the
// same ID.
func (s *documentStore) Upsert(ctx context.Context, doc *domain.Document) error {
	metadataJSON, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("marshalling metadata: %w", err)
	}

	createdAt := doc.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO documents (id, owner_id, title, content, embedding, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			owner_id = excluded.owner_id,
			title = excluded.title,
			content = excluded.content,
			embedding = excluded.embedding,
			metadata = excluded.metadata
	`, doc.ID, doc.OwnerID, doc.Title, doc.Text,
		float32SliceToBytes(doc.Embedding), string(metadataJSON), createdAt)

	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// FindAll returns every document in the shared collection.
func (s *documentStore) FindAll(ctx context.Context) ([]domain.Document, error) {
	return s.findByOwner(ctx, "")
}

// FindByOwner returns every document owned by the given user.
func (s *documentStore) FindByOwner(ctx context.Context, ownerID string) ([]domain.Document, error) {
	return s.findByOwner(ctx, ownerID)
}

func (s *documentStore) findByOwner(ctx context.Context, ownerID string) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, owner_id, title, content, embedding, metadata, created_at
		FROM documents WHERE owner_id = ?
		ORDER BY created_at, id
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// DeleteByID removes a document. Returns true if one was removed.
func (s *documentStore) DeleteByID(ctx context.Context, docID string) (bool, error) {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", docID)
	if err != nil {
		return false, fmt.Errorf("deleting document: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading rows affected: %w", err)
	}
	return affected > 0, nil
}

// DeleteAll removes every document in the shared collection.
func (s *documentStore) DeleteAll(ctx context.Context) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM documents WHERE owner_id = ''")
	if err != nil {
		return fmt.Errorf("clearing documents: %w", err)
	}
	return nil
}

// Count returns the number of documents in the shared collection.
func (s *documentStore) Count(ctx context.Context) (int, error) {
	return s.countByOwner(ctx, "")
}

// CountByOwner returns the number of documents owned by the user.
func (s *documentStore) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	return s.countByOwner(ctx, ownerID)
}

func (s *documentStore) countByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM documents WHERE owner_id = ?", ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return count, nil
}

// scanDocument scans a document from *sql.Rows.
func scanDocument(rows *sql.Rows) (*domain.Document, error) {
	var doc domain.Document
	var embeddingBlob []byte
	var metadataJSON sql.NullString

	if err := rows.Scan(&doc.ID, &doc.OwnerID, &doc.Title, &doc.Text,
		&embeddingBlob, &metadataJSON, &doc.CreatedAt); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.Embedding = bytesToFloat32Slice(embeddingBlob)

	if metadataJSON.Valid && metadataJSON.String != "" && metadataJSON.String != "null" {
		if err := json.Unmarshal([]byte(metadataJSON.String), &doc.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshaling metadata: %w", err)
		}
	}

	return &doc, nil
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
