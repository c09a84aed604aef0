package models

// BlobTombstone marks a blob whose file record is gone but whose object may
// still exist in the blob store. The janitor sweeps these.
type BlobTombstone struct {
	BaseModel
	StoragePath string `gorm:"type:text;not null" json:"storagePath"`
	Attempts    int    `gorm:"default:0" json:"attempts"`
	LastError   string `gorm:"type:text" json:"lastError,omitempty"`
}
