package models

import "github.com/google/uuid"

// File is the metadata record for one stored blob. StorageKey is derived from
// the owner id and the generated StoredName, so keys never collide across
// owners. A record must not outlive its blob; the upload and delete paths in
// the file service enforce the ordering that keeps that true.
type File struct {
	BaseModel
	StoredName   string    `json:"storedName" gorm:"type:varchar(255);not null"`
	OriginalName string    `json:"originalName" gorm:"type:varchar(255);not null"`
	Size         int64     `json:"size" gorm:"not null;default:0"`
	ContentType  string    `json:"contentType" gorm:"type:varchar(255);not null"`
	Bucket       string    `json:"-" gorm:"type:varchar(255);not null"`
	StorageKey   string    `json:"-" gorm:"type:text;not null;uniqueIndex"`
	OwnerID      uuid.UUID `json:"ownerID" gorm:"type:uuid;not null;index"`

	Owner User `json:"-" gorm:"foreignKey:OwnerID;references:ID"`
}
