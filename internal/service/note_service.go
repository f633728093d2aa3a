package service

import (
	"Followdesk/internal/api/dto"
	"Followdesk/internal/repository"
	"context"
)

type NoteService interface {
	GetNote(ctx context.Context) (*dto.NoteDTO, error)
	UpdateNote(ctx context.Context, content, author string) (*dto.NoteDTO, error)
}

type noteServiceImpl struct {
	noteRepo repository.NoteRepo
}

func NewNoteService(noteRepo repository.NoteRepo) NoteService {
	return &noteServiceImpl{noteRepo: noteRepo}
}

func (s *noteServiceImpl) GetNote(ctx context.Context) (*dto.NoteDTO, error) {
	note, err := s.noteRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return &dto.NoteDTO{}, nil
	}
	updatedAt := note.UpdatedAt
	return &dto.NoteDTO{Content: note.Content, Author: note.Author, UpdatedAt: &updatedAt}, nil
}

func (s *noteServiceImpl) UpdateNote(ctx context.Context, content, author string) (*dto.NoteDTO, error) {
	note, err := s.noteRepo.Save(ctx, content, author)
	if err != nil {
		return nil, err
	}
	updatedAt := note.UpdatedAt
	return &dto.NoteDTO{Content: note.Content, Author: note.Author, UpdatedAt: &updatedAt}, nil
}
