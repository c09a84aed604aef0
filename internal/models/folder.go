package models

type Folder struct {
	BaseModel
	Scope
	Name     string  `gorm:"type:varchar(255);not null" json:"name"`
	ParentID *string `gorm:"type:varchar(191);index" json:"parentId"`
}

func (f *Folder) IsRoot() bool {
	return f.ParentID == nil
}
