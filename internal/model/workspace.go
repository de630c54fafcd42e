package model

import "time"

type WorkspaceID string

// Workspace is the per-visitor state the web front end keeps between
// requests: the last submitted form and the id of the last saved notice.
type Workspace struct {
	ID          WorkspaceID
	Form        Form
	LastSavedID NoticeID
	UpdatedAt   time.Time
}
