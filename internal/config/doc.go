// Package config persists the answer trees produced by the setup wizard.
//
// Configuration files live at <baseDir>/config/config.<environment>.json
// (see [Path]) and are written as two-space indented JSON by [Writer]. A
// file that already exists is copied byte for byte to
// <path>-<unixMillis> before it is overwritten, and the backup is left in
// place even when the final write fails. [Load] reads an existing file back
// so a previous run can seed a new one.
package config
