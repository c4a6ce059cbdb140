// Package transfer moves whole tables in and out of the store as JSON
// snapshots.
package transfer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"connectplus/pkg/types"
)

var (
	ErrInvalidImportType = errors.New("invalid import type")
	ErrMissingImportData = errors.New("missing type or data")
)

type entity string

const (
	entityResource entity = "resource"
	entityRole     entity = "role"
	entityNeed     entity = "need"
	entityUser     entity = "user"
)

func (e entity) title() string {
	return strings.ToUpper(string(e[:1])) + string(e[1:])
}

// ParseType maps a query value onto a transfer type. Unknown and empty
// values select a full transfer.
func ParseType(value string) types.TransferType {
	switch t := types.TransferType(strings.ToLower(strings.TrimSpace(value))); t {
	case types.TransferResources, types.TransferRoles, types.TransferNeeds, types.TransferUsers:
		return t
	}
	return types.TransferFull
}

type tally struct {
	results *types.ImportResults
}

func newTally() *tally {
	return &tally{results: &types.ImportResults{Errors: []string{}, Details: []string{}}}
}

func (t *tally) created(e entity, label string) {
	t.results.Created++
	t.detail("Created %s: %s", e, label)
}

func (t *tally) updated(e entity, label string) {
	t.results.Updated++
	t.detail("Updated %s: %s", e, label)
}

func (t *tally) skipped(format string, args ...any) {
	t.results.Skipped++
	t.detail(format, args...)
}

func (t *tally) unsupported(format string, args ...any) {
	t.results.Unsupported++
	t.detail(format, args...)
}

func (t *tally) detail(format string, args ...any) {
	t.results.Details = append(t.results.Details, fmt.Sprintf(format, args...))
}

func (t *tally) fail(format string, args ...any) {
	t.results.Errors = append(t.results.Errors, fmt.Sprintf(format, args...))
}

// FileName is the download name for a snapshot taken at t.
func FileName(t types.TransferType, at time.Time) string {
	return fmt.Sprintf("connect-plus-%s-%s.json", t, at.UTC().Format(time.DateOnly))
}
