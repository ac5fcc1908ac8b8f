package repository

import (
	"excelbot/cmd/internal/domain/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *DefaultUserRepository {
	return &DefaultUserRepository{db: db}
}

// Register inserts the user unless the ID is already known, in which case
// nothing changes (not even the display name).
func (u *DefaultUserRepository) Register(user *entity.User) error {
	return u.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(user).Error
}

func (u *DefaultUserRepository) FindAllIDs() ([]int64, error) {
	var ids []int64
	result := u.db.Model(&entity.User{}).Pluck("id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}

func (u *DefaultUserRepository) Count() (int64, error) {
	var count int64
	err := u.db.Model(&entity.User{}).Count(&count).Error
	return count, err
}
