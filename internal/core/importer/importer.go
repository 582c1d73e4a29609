package importer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/neilberkman/scjournal/internal/core/db"
	"github.com/neilberkman/scjournal/internal/core/models"
)

// Importer loads journal files into the database
type Importer struct {
	db   *db.DB
	warn io.Writer
}

// Result describes one imported file
type Result struct {
	File       string
	Sessions   int
	Activities int
	Skipped    bool
}

// New creates a new importer. Warnings go to stderr.
func New(database *db.DB) *Importer {
	return &Importer{db: database, warn: os.Stderr}
}

// SetWarningWriter redirects per-file warnings from ImportDirectory
func (i *Importer) SetWarningWriter(w io.Writer) {
	i.warn = w
}

// ImportFile imports a journal file (a JSON array of session records).
// Files already imported with the same content are skipped.
func (i *Importer) ImportFile(path string) (*Result, error) {
	result := &Result{File: path}

	// Compute file hash
	hash, err := computeFileHash(path)
	if err != nil {
		return nil, fmt.Errorf("failed to hash file: %w", err)
	}

	// Check if already imported
	var exists bool
	err = i.db.QueryRow("SELECT EXISTS(SELECT 1 FROM import_log WHERE file_hash = ? AND status = 'success')", hash).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check import log: %w", err)
	}
	if exists {
		result.Skipped = true
		return result, nil
	}

	journal := models.NewJournal()
	if err := journal.LoadFromFile(path); err != nil {
		i.logFailure(path, hash, err)
		return nil, err
	}

	tx, err := i.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for n, s := range journal.Sessions(0) {
		if _, err := db.InsertSessionTx(tx, s); err != nil {
			return nil, fmt.Errorf("session %d: %w", n, err)
		}
		result.Sessions++
		result.Activities += len(s.Activities)
	}

	// Record import
	_, err = tx.Exec(`
		INSERT INTO import_log (file_path, file_hash, sessions_imported, activities_imported, status)
		VALUES (?, ?, ?, ?, 'success')
	`, path, hash, result.Sessions, result.Activities)
	if err != nil {
		return nil, fmt.Errorf("failed to record import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	return result, nil
}

func (i *Importer) logFailure(path, hash string, cause error) {
	_, err := i.db.Exec(`
		INSERT INTO import_log (file_path, file_hash, sessions_imported, activities_imported, status, error_message)
		VALUES (?, ?, 0, 0, 'failed', ?)
	`, path, hash, cause.Error())
	if err != nil {
		fmt.Fprintf(i.warn, "Warning: failed to record import failure for %s: %v\n", path, err)
	}
}

// ImportDirectory imports every .json journal under dirPath. Files that
// fail are reported as warnings and skipped.
func (i *Importer) ImportDirectory(dirPath string, progress ProgressCallback) ([]Result, error) {
	files, err := FindJournalFiles(dirPath)
	if err != nil {
		return nil, err
	}

	var results []Result
	for _, file := range files {
		result, err := i.ImportFile(file)
		if err != nil {
			fmt.Fprintf(i.warn, "Warning: failed to import %s: %v\n", file, err)
			continue
		}
		results = append(results, *result)

		if progress != nil {
			status := fmt.Sprintf("%d sessions", result.Sessions)
			if result.Skipped {
				status = "already imported"
			}
			progress.Update(filepath.Base(file), status)
		}
	}

	return results, nil
}

// FindJournalFiles lists all .json files under dirPath
func FindJournalFiles(dirPath string) ([]string, error) {
	var files []string
	err := filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.EqualFold(filepath.Ext(path), ".json") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}
	return files, nil
}

func computeFileHash(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
