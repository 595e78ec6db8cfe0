package browser

import (
	"errors"

	"docshelf/internal/domain"
	docsys "docshelf/internal/service/docsystem"
)

// snapshotMsg carries a freshly loaded generation.
type snapshotMsg struct {
	snapshot *docsys.Snapshot
	err      error
}

// mutationMsg reports a finished mutation. snapshot is nil when the
// mutation or its reload failed.
type mutationMsg struct {
	op             string
	status         string
	snapshot       *docsys.Snapshot
	selectionReset bool
	err            error
}

// errorText is the line shown to the user for err.
func errorText(err error) string {
	var collabErr *domain.CollaboratorError
	if errors.As(err, &collabErr) {
		return collabErr.UserMessage()
	}
	return err.Error()
}
