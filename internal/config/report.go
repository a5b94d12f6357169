package config

import (
	"fmt"
	"strings"

	"github.com/dadi/cli/internal/ui/progress"
)

// ReportSave reports the outcome of a save: a clean write succeeds, a write
// that replaced an existing file warns and names the backup, and a failure
// fails. description names the file, e.g. "Configuration file".
func ReportSave(r progress.Reporter, description string, result *SaveResult, err error) {
	if err != nil {
		r.Report(progress.StateFail, fmt.Sprintf("An unexpected error occurred when writing the %s: %v", strings.ToLower(description), err))
		return
	}

	message := fmt.Sprintf("%s written to %s.", description, result.Path)
	if result.HasBackup() {
		r.Report(progress.StateWarn, message+
			fmt.Sprintf(" A file already existed at that location, so it was backed up to %s.", result.BackupPath))
		return
	}
	r.Report(progress.StateSucceed, message)
}
