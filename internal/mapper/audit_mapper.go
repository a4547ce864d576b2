package mapper

import (
	"encoding/json"

	"notes-api-be/internal/entity"
	"notes-api-be/internal/model"
)

type AuditLogMapper struct{}

func NewAuditLogMapper() *AuditLogMapper {
	return &AuditLogMapper{}
}

func (m *AuditLogMapper) ToEntity(l *model.AuditLog) *entity.AuditLog {
	if l == nil {
		return nil
	}

	var details map[string]interface{}
	if len(l.Details) > 0 {
		// Corrupt rows surface as a nil details map rather than an error.
		_ = json.Unmarshal(l.Details, &details)
	}

	return &entity.AuditLog{
		Id:        l.Id,
		EventType: l.EventType,
		Details:   details,
		CreatedAt: l.CreatedAt,
	}
}

func (m *AuditLogMapper) ToModel(l *entity.AuditLog) (*model.AuditLog, error) {
	if l == nil {
		return nil, nil
	}

	var details []byte
	if l.Details != nil {
		raw, err := json.Marshal(l.Details)
		if err != nil {
			return nil, err
		}
		details = raw
	}

	return &model.AuditLog{
		Id:        l.Id,
		EventType: l.EventType,
		Details:   details,
		CreatedAt: l.CreatedAt,
	}, nil
}

func (m *AuditLogMapper) ToEntities(logs []*model.AuditLog) []*entity.AuditLog {
	entities := make([]*entity.AuditLog, len(logs))
	for i, l := range logs {
		entities[i] = m.ToEntity(l)
	}
	return entities
}
