package mapper

import (
	"notes-api-be/internal/entity"
	"notes-api-be/internal/model"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	state := entity.NoteStateActive
	if n.IsDeleted {
		state = entity.NoteStateSoftDeleted
	}

	return &entity.Note{
		Id:        n.Id,
		Title:     n.Title,
		Body:      n.Body,
		UserId:    n.UserId,
		State:     state,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}
	return &model.Note{
		Id:        n.Id,
		Title:     n.Title,
		Body:      n.Body,
		IsDeleted: n.State == entity.NoteStateSoftDeleted,
		UserId:    n.UserId,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
