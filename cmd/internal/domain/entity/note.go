package entity

// Note is a shared file. The file itself stays on Telegram's servers, we only
// keep the references needed to send it again.
type Note struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	FileRef       string `gorm:"not null"`
	FileUniqueRef string `gorm:"not null"`
	FileName      string
	Title         string  `gorm:"not null"`
	Subject       Subject `gorm:"not null"`
	OwnerID       int64   `gorm:"not null"` // References: users(id)

	// OwnerDisplayName is a snapshot of the uploader's name at upload time,
	// it does not follow later name changes.
	OwnerDisplayName string
	UploadedAt       int64 `gorm:"not null"`
}
