package handler

import (
	"Followdesk/internal/api/dto"
	"Followdesk/internal/pkg/response"
	"Followdesk/internal/pkg/util"
	"Followdesk/internal/service"

	"github.com/gin-gonic/gin"
)

type NoteHandler struct {
	noteSvc service.NoteService
}

func NewNoteHandler(noteSvc service.NoteService) *NoteHandler {
	return &NoteHandler{noteSvc: noteSvc}
}

func (s *NoteHandler) GetNote(c *gin.Context) {
	note, err := s.noteSvc.GetNote(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, note)
}

func (s *NoteHandler) UpdateNote(c *gin.Context) {
	var req dto.NoteUpdateDTO
	if err := util.BindAndValidate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	note, err := s.noteSvc.UpdateNote(c.Request.Context(), req.Content, util.GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, note)
}
