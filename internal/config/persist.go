package config

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/afero"
)

const (
	filePerm = 0600
	dirPerm  = 0755

	// maxBackupSuffix bounds the numbered names tried when backups taken in
	// the same millisecond collide.
	maxBackupSuffix = 100
)

// SaveResult describes a completed save. BackupPath is empty when no file
// existed at Path beforehand.
type SaveResult struct {
	Path       string
	BackupPath string
}

// HasBackup reports whether the save replaced an existing file.
func (r *SaveResult) HasBackup() bool {
	return r != nil && r.BackupPath != ""
}

// Writer saves configuration files, backing up whatever it overwrites.
type Writer struct {
	fs  afero.Fs
	now func() time.Time
}

// NewWriter returns a Writer on fs. A nil fs means the OS filesystem.
func NewWriter(fs afero.Fs) *Writer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Writer{fs: fs, now: time.Now}
}

// Save writes content to path as two-space indented JSON. When a file
// already exists at path its bytes are first copied to a new timestamped
// backup; the new content is only written once that copy succeeded.
func (w *Writer) Save(ctx context.Context, path string, content any) (*SaveResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := logr.FromContextOrDiscard(ctx).WithName("config")

	data, err := Encode(content)
	if err != nil {
		return nil, err
	}

	exists, err := afero.Exists(w.fs, path)
	if err != nil {
		return nil, &SaveError{Stage: StageCheck, Path: path, Err: err}
	}

	result := &SaveResult{Path: path}
	if exists {
		backup, err := w.backup(path)
		if err != nil {
			return nil, err
		}
		result.BackupPath = backup
		log.V(1).Info("backed up existing configuration", "path", path, "backup", backup)
	} else if dir := filepath.Dir(path); dir != "" {
		if err := w.fs.MkdirAll(dir, dirPerm); err != nil {
			return nil, &SaveError{Stage: StageMkdir, Path: dir, Err: err}
		}
	}

	if err := afero.WriteFile(w.fs, path, data, filePerm); err != nil {
		return nil, &SaveError{Stage: StageWrite, Path: path, Err: err}
	}
	log.V(1).Info("wrote configuration", "path", path, "bytes", len(data))

	return result, nil
}

// backup copies path to a new file and returns its name. An existing backup
// is never replaced: on a name collision a numbered suffix is appended.
func (w *Writer) backup(path string) (string, error) {
	original, err := afero.ReadFile(w.fs, path)
	if err != nil {
		return "", &SaveError{Stage: StageRead, Path: path, Err: err}
	}

	mode := os.FileMode(filePerm)
	if info, err := w.fs.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	base := BackupPath(path, w.now().UnixMilli())
	backup := base
	for n := 1; ; n++ {
		err := writeNew(w.fs, backup, original, mode)
		if err == nil {
			return backup, nil
		}
		if !errors.Is(err, os.ErrExist) || n > maxBackupSuffix {
			return "", &SaveError{Stage: StageBackup, Path: backup, Err: err}
		}
		backup = fmt.Sprintf("%s-%d", base, n)
	}
}

// writeNew writes data to name, failing with os.ErrExist when name exists.
func writeNew(fs afero.Fs, name string, data []byte, mode os.FileMode) error {
	f, err := fs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return err
	}
	_, err = f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// Encode renders content the way configuration files are stored: JSON with
// two-space indentation and no HTML escaping. Map keys come out sorted.
func Encode(content any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(content); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
