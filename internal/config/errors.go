package config

import (
	"errors"
	"fmt"
)

// ErrIO matches every persistence failure returned by Writer.Save.
var ErrIO = errors.New("config i/o failure")

// Stage names the persistence step that failed.
type Stage string

// Persistence stages.
const (
	StageCheck  Stage = "check"
	StageRead   Stage = "read"
	StageBackup Stage = "backup"
	StageMkdir  Stage = "mkdir"
	StageWrite  Stage = "write"
)

// SaveError reports which stage of a save failed and on which path.
type SaveError struct {
	Stage Stage
	Path  string
	Err   error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

// Unwrap makes a SaveError match both ErrIO and the underlying cause.
func (e *SaveError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}
