package repository

import (
	"fmt"
	"notekeeper/cmd/internal/domain/database"
	"notekeeper/cmd/internal/domain/entity"
	"sync"

	"gorm.io/gorm"
)

type DefaultNoteRepository struct {
	db        *gorm.DB
	closeOnce sync.Once
	closeErr  error
}

func NewNoteRepository(db *gorm.DB) *DefaultNoteRepository {
	return &DefaultNoteRepository{db: db}
}

// EnsureSchema creates the notes table when it does not exist yet.
// Running it again against an existing table leaves the rows untouched.
func (d *DefaultNoteRepository) EnsureSchema() error {
	if err := d.db.AutoMigrate(&entity.Note{}); err != nil {
		return fmt.Errorf("%w: ensure notes schema: %v", database.ErrStoreUnavailable, err)
	}
	return nil
}

// FindAll returns every note, newest first.
func (d *DefaultNoteRepository) FindAll() ([]*entity.Note, error) {
	notes := []*entity.Note{}
	err := d.db.
		Order("created_at DESC").
		Order("id DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (d *DefaultNoteRepository) Insert(title, content string) (int64, error) {
	note := &entity.Note{Title: title, Content: content}
	if err := d.db.Create(note).Error; err != nil {
		return 0, err
	}
	return note.ID, nil
}

// Update replaces title and content of the note with the given id.
// The boolean reports whether any row was affected.
func (d *DefaultNoteRepository) Update(id int64, title, content string) (bool, error) {
	result := d.db.
		Model(&entity.Note{}).
		Where("id = ?", id).
		Updates(map[string]any{"title": title, "content": content})
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

// Close releases the underlying pool. It is safe to call more than once,
// and on a repository that never got a connection.
func (d *DefaultNoteRepository) Close() error {
	if d == nil || d.db == nil {
		return nil
	}

	d.closeOnce.Do(func() {
		sqlDB, err := d.db.DB()
		if err != nil {
			d.closeErr = err
			return
		}
		d.closeErr = sqlDB.Close()
	})
	return d.closeErr
}
