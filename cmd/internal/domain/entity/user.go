package entity

// User is anyone who has ever sent /start to the bot.
type User struct {
	ID          int64 `gorm:"primaryKey;autoIncrement:false"` // Telegram user ID
	DisplayName string
	JoinedAt    int64 `gorm:"not null"`
}
