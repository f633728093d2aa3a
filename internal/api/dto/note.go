package dto

import "time"

type NoteDTO struct {
	Content   string     `json:"content"`
	Author    string     `json:"author"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type NoteUpdateDTO struct {
	Content string `json:"content" validate:"max=10000"`
}
