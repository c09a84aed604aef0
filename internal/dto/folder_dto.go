package dto

import "time"

type FolderDTO struct {
	ID           string       `json:"id"`
	ParentID     *string      `json:"parentId"`
	Name         string       `json:"name"`
	AreaID       *string      `json:"areaId"`
	ProcesoID    *string      `json:"procesoId"`
	SubprocesoID *string      `json:"subprocesoId"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
	Children     []*FolderDTO `json:"children,omitempty"`
}

type TreeDTO struct {
	Roots          []*FolderDTO `json:"roots"`
	Orphans        []*FolderDTO `json:"orphans"`
	DuplicateRoots []*FolderDTO `json:"duplicateRoots"`
}

type FileDTO struct {
	ID          string    `json:"id"`
	FolderID    string    `json:"folderId"`
	Name        string    `json:"name"`
	Extension   string    `json:"extension,omitempty"`
	ContentType string    `json:"contentType,omitempty"`
	Size        int64     `json:"size"`
	SHA256      string    `json:"sha256,omitempty"`
	DownloadURL string    `json:"downloadUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}
