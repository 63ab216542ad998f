package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UploadedDocument tracks document metadata only; file storage itself lives
// behind an external collaborator. Uploads count against the owner's quota.
type UploadedDocument struct {
	gorm.Model
	DocumentID   string `json:"document_id" gorm:"uniqueIndex"`
	UploadedByID *uint  `json:"uploaded_by_id" gorm:"index"`
	Title        string `json:"title" gorm:"not null"`
	FilePath     string `json:"file_path"`
	FileSize     int64  `json:"file_size" gorm:"default:0"`
	FileType     string `json:"file_type"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Tags         string `json:"tags"`
	IsPublic     bool   `json:"is_public" gorm:"default:false"`
}

func (UploadedDocument) TableName() string { return "uploaded_documents" }

// BeforeCreate hook to auto-generate the public DocumentID
func (d *UploadedDocument) BeforeCreate(tx *gorm.DB) error {
	if d.DocumentID == "" {
		d.DocumentID = "DOC-" + uuid.NewString()
	}
	return nil
}
