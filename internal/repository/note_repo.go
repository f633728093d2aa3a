package repository

import (
	"Followdesk/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type NoteRepo interface {
	Get(ctx context.Context) (*model.AdminNote, error)
	Save(ctx context.Context, content, author string) (*model.AdminNote, error)
}

type noteRepoImpl struct {
	db *gorm.DB
}

func NewNoteRepo(db *gorm.DB) NoteRepo {
	return &noteRepoImpl{db: db}
}

func (s *noteRepoImpl) Get(ctx context.Context) (*model.AdminNote, error) {
	note := &model.AdminNote{}
	if err := s.db.WithContext(ctx).Order("id ASC").First(note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return note, nil
}

// Save 全局只保留一条便签，存在则覆盖
func (s *noteRepoImpl) Save(ctx context.Context, content, author string) (*model.AdminNote, error) {
	var saved *model.AdminNote
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		note := &model.AdminNote{}
		err := tx.Order("id ASC").First(note).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		note.Content = content
		note.Author = author
		if err = tx.Save(note).Error; err != nil {
			return err
		}
		saved = note
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}
