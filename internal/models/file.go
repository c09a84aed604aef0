package models

type File struct {
	BaseModel
	Scope
	FolderID    string `gorm:"type:varchar(191);not null;index" json:"folderId"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	ContentType string `gorm:"type:varchar(255)" json:"contentType,omitempty"`
	Size        int64  `gorm:"default:0" json:"size"`
	SHA256      string `gorm:"type:varchar(64)" json:"sha256,omitempty"`
	StoragePath string `gorm:"type:text;not null" json:"storagePath"`
	DownloadURL string `gorm:"type:text" json:"downloadUrl"`
}
