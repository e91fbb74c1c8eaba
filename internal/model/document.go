package model

import (
	"sort"
	"strconv"
	"time"
)

// MaxUploadSize is the hard cap for a single uploaded file (10MB).
const MaxUploadSize = 10 << 20

// Document is a file attached to a register record. The storage fields
// always mirror the most recently added version.
// This is a pure domain model with no database-specific dependencies or tags.
type Document struct {
	ID             string     `json:"id"`
	Module         string     `json:"module"`
	ParentID       string     `json:"parent_id"`
	Title          string     `json:"title"`
	StorageKey     string     `json:"storage_key"`
	ContentType    string     `json:"content_type"`
	Size           int64      `json:"size"`
	UploadedBy     string     `json:"uploaded_by"`
	UploadedAt     time.Time  `json:"uploaded_at"`
	ExpiryDate     *time.Time `json:"expiry_date,omitempty"`
	AssignedTo     *string    `json:"assigned_to,omitempty"`
	LastNotifiedAt *time.Time `json:"last_notified_at,omitempty"`
}

// DocumentVersion is an immutable snapshot of a document's file content.
// Labels are free text; see LatestVersion for how "latest" is resolved.
type DocumentVersion struct {
	ID          string    `json:"id"`
	DocumentID  string    `json:"document_id"`
	Label       string    `json:"label"`
	StorageKey  string    `json:"storage_key"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	Notes       string    `json:"notes,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// LatestVersion picks the version with the highest numeric label.
// Labels are free text in the wild, so versions whose label does not parse
// are skipped; if none parse, the most recently created version wins.
func LatestVersion(versions []DocumentVersion) *DocumentVersion {
	if len(versions) == 0 {
		return nil
	}

	var best *DocumentVersion
	bestNum := 0
	for i := range versions {
		n, err := strconv.Atoi(versions[i].Label)
		if err != nil {
			continue
		}
		if best == nil || n > bestNum {
			best = &versions[i]
			bestNum = n
		}
	}
	if best != nil {
		return best
	}

	byCreated := make([]DocumentVersion, len(versions))
	copy(byCreated, versions)
	sort.Slice(byCreated, func(i, j int) bool {
		return byCreated[i].CreatedAt.After(byCreated[j].CreatedAt)
	})
	out := byCreated[0]
	return &out
}
