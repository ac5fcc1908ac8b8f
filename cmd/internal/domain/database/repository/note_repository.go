package repository

import (
	"errors"

	"excelbot/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

const newestFirst = "uploaded_at DESC, id DESC"

type DefaultNoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *DefaultNoteRepository {
	return &DefaultNoteRepository{db: db}
}

// Save inserts the note and fills in its new ID.
func (d *DefaultNoteRepository) Save(note *entity.Note) error {
	return d.db.Create(note).Error
}

func (d *DefaultNoteRepository) Count() (int64, error) {
	var count int64
	err := d.db.Model(&entity.Note{}).Count(&count).Error
	return count, err
}

func (d *DefaultNoteRepository) FindByID(id int64) (*entity.Note, error) {
	var note entity.Note
	err := d.db.First(&note, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (d *DefaultNoteRepository) FindBySubject(subject entity.Subject) ([]*entity.Note, error) {
	var notes []*entity.Note
	err := d.db.
		Select("id", "title", "file_name", "owner_display_name", "uploaded_at").
		Where("subject = ?", subject).
		Order(newestFirst).
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (d *DefaultNoteRepository) FindByOwner(ownerID int64) ([]*entity.Note, error) {
	var notes []*entity.Note
	err := d.db.
		Select("id", "title", "subject", "uploaded_at").
		Where("owner_id = ?", ownerID).
		Order(newestFirst).
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// Search returns up to limit notes whose title or subject contains keyword.
// INSTR keeps the match case-sensitive and treats '%' and '_' literally.
func (d *DefaultNoteRepository) Search(keyword string, limit int) ([]*entity.Note, error) {
	var notes []*entity.Note
	err := d.db.
		Select("id", "title", "subject", "file_name").
		Where("INSTR(title, ?) > 0 OR INSTR(subject, ?) > 0", keyword, keyword).
		Order(newestFirst).
		Limit(limit).
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// DeleteOwned removes the note only if it belongs to ownerID.
func (d *DefaultNoteRepository) DeleteOwned(id, ownerID int64) (bool, error) {
	result := d.db.
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&entity.Note{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (d *DefaultNoteRepository) Delete(id int64) (bool, error) {
	result := d.db.Delete(&entity.Note{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
