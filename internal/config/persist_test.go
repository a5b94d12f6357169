package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingFs records every file opened for writing.
type countingFs struct {
	afero.Fs
	mu     sync.Mutex
	writes []string
	failOn map[string]error
}

func newCountingFs(base afero.Fs) *countingFs {
	return &countingFs{Fs: base, failOn: map[string]error{}}
}

func (c *countingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR) != 0 {
		c.mu.Lock()
		c.writes = append(c.writes, name)
		c.mu.Unlock()
		if err, ok := c.failOn[name]; ok {
			return nil, err
		}
	}
	return c.Fs.OpenFile(name, flag, perm)
}

func (c *countingFs) Create(name string) (afero.File, error) {
	return c.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
}

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestSave_NewFile(t *testing.T) {
	fs := newCountingFs(afero.NewMemMapFs())
	w := NewWriter(fs)
	path := Path("app", "development")

	res, err := w.Save(context.Background(), path, map[string]any{"server": map[string]any{"port": 8080}})
	require.NoError(t, err)

	assert.Equal(t, path, res.Path)
	assert.Empty(t, res.BackupPath)
	assert.False(t, res.HasBackup())
	assert.Equal(t, []string{path}, fs.writes, "exactly one write")

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"server\": {\n    \"port\": 8080\n  }\n}", string(data))
}

func TestSave_ExistingFileIsBackedUp(t *testing.T) {
	mem := afero.NewMemMapFs()
	path := Path("app", "production")
	original := []byte(`{"server":{"port":8080}}`)
	require.NoError(t, afero.WriteFile(mem, path, original, 0600))

	fs := newCountingFs(mem)
	w := NewWriter(fs)
	w.now = fixedClock(1700000000123)

	res, err := w.Save(context.Background(), path, map[string]any{"server": map[string]any{"port": 9090}})
	require.NoError(t, err)

	wantBackup := path + "-1700000000123"
	assert.Equal(t, path, res.Path)
	assert.Equal(t, wantBackup, res.BackupPath)
	assert.True(t, res.HasBackup())
	assert.Equal(t, []string{wantBackup, path}, fs.writes, "backup is written before the target")

	backup, err := afero.ReadFile(mem, wantBackup)
	require.NoError(t, err)
	assert.Equal(t, original, backup)

	current, err := afero.ReadFile(mem, path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"server":{"port":9090}}`, string(current))
}

func TestSave_BackupsInSameMillisecondDoNotCollide(t *testing.T) {
	mem := afero.NewMemMapFs()
	path := Path("app", "development")
	original := []byte(`{"server":{"port":8080}}`)
	require.NoError(t, afero.WriteFile(mem, path, original, 0600))

	w := NewWriter(mem)
	w.now = fixedClock(1700000000123)
	ctx := context.Background()

	first, err := w.Save(ctx, path, map[string]any{"v": 1})
	require.NoError(t, err)
	second, err := w.Save(ctx, path, map[string]any{"v": 2})
	require.NoError(t, err)

	assert.Equal(t, path+"-1700000000123", first.BackupPath)
	assert.Equal(t, path+"-1700000000123-1", second.BackupPath)

	backup, err := afero.ReadFile(mem, first.BackupPath)
	require.NoError(t, err)
	assert.Equal(t, original, backup, "first backup keeps the original bytes")

	backup, err = afero.ReadFile(mem, second.BackupPath)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"v\": 1\n}", string(backup))

	current, err := afero.ReadFile(mem, path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"v\": 2\n}", string(current))
}

func TestSave_BackupNamesExhausted(t *testing.T) {
	mem := afero.NewMemMapFs()
	path := Path(".", "development")
	require.NoError(t, afero.WriteFile(mem, path, []byte(`{"a":1}`), 0600))

	base := BackupPath(path, 5)
	require.NoError(t, afero.WriteFile(mem, base, []byte("taken"), 0600))
	for n := 1; n <= maxBackupSuffix; n++ {
		require.NoError(t, afero.WriteFile(mem, fmt.Sprintf("%s-%d", base, n), []byte("taken"), 0600))
	}

	w := NewWriter(mem)
	w.now = fixedClock(5)

	_, err := w.Save(context.Background(), path, map[string]any{"a": 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrExist)

	var saveErr *SaveError
	require.ErrorAs(t, err, &saveErr)
	assert.Equal(t, StageBackup, saveErr.Stage)

	data, err := afero.ReadFile(mem, path)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))

	taken, err := afero.ReadFile(mem, base)
	require.NoError(t, err)
	assert.Equal(t, "taken", string(taken))
}

func TestSave_BackupFailureLeavesTargetUntouched(t *testing.T) {
	mem := afero.NewMemMapFs()
	path := Path(".", "development")
	require.NoError(t, afero.WriteFile(mem, path, []byte(`{"a":1}`), 0600))

	fs := newCountingFs(mem)
	w := NewWriter(fs)
	w.now = fixedClock(42)
	cause := errors.New("disk full")
	fs.failOn[path+"-42"] = cause

	res, err := w.Save(context.Background(), path, map[string]any{"a": 2})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, cause)

	var saveErr *SaveError
	require.ErrorAs(t, err, &saveErr)
	assert.Equal(t, StageBackup, saveErr.Stage)

	data, err := afero.ReadFile(mem, path)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))
}

func TestSave_WriteFailureKeepsBackup(t *testing.T) {
	mem := afero.NewMemMapFs()
	path := Path(".", "development")
	require.NoError(t, afero.WriteFile(mem, path, []byte(`{"a":1}`), 0600))

	fs := newCountingFs(mem)
	w := NewWriter(fs)
	w.now = fixedClock(7)
	fs.failOn[path] = errors.New("permission denied")

	_, err := w.Save(context.Background(), path, map[string]any{"a": 2})
	require.Error(t, err)

	var saveErr *SaveError
	require.ErrorAs(t, err, &saveErr)
	assert.Equal(t, StageWrite, saveErr.Stage)
	assert.Equal(t, path, saveErr.Path)

	backup, err := afero.ReadFile(mem, path+"-7")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(backup))
}

func TestSave_ReadOnlyFilesystem(t *testing.T) {
	w := NewWriter(afero.NewReadOnlyFs(afero.NewMemMapFs()))

	_, err := w.Save(context.Background(), Path("app", "test"), map[string]any{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
}

func TestSave_EncodeFailureTouchesNothing(t *testing.T) {
	fs := newCountingFs(afero.NewMemMapFs())
	w := NewWriter(fs)

	_, err := w.Save(context.Background(), Path("app", "development"), map[string]any{"bad": make(chan int)})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrIO)
	assert.Empty(t, fs.writes)
}

func TestSave_CancelledContext(t *testing.T) {
	fs := newCountingFs(afero.NewMemMapFs())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewWriter(fs).Save(ctx, "config.json", map[string]any{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fs.writes)
}

func TestSave_OsFilesystem(t *testing.T) {
	dir := t.TempDir()
	path := Path(dir, "development")

	w := NewWriter(nil)
	res, err := w.Save(context.Background(), path, map[string]any{"env": "development"})
	require.NoError(t, err)
	assert.False(t, res.HasBackup())

	res, err = w.Save(context.Background(), path, map[string]any{"env": "production"})
	require.NoError(t, err)
	require.True(t, res.HasBackup())
	assert.Equal(t, filepath.Dir(path), filepath.Dir(res.BackupPath))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestEncode(t *testing.T) {
	data, err := Encode(map[string]any{
		"url":  "http://localhost/?a=1&b=<2>",
		"list": []any{1, "two"},
	})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"list\": [\n    1,\n    \"two\"\n  ],\n  \"url\": \"http://localhost/?a=1&b=<2>\"\n}", string(data))
}

func TestSaveError(t *testing.T) {
	err := &SaveError{Stage: StageRead, Path: "config/config.test.json", Err: os.ErrPermission}

	assert.Equal(t, "read config/config.test.json: permission denied", err.Error())
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, os.ErrPermission)
}
