package db

import (
	"context"

	"github.com/shandysiswandi/ambassador/internal/notification/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/valueobject"
)

func (s *DB) CreateNotification(ctx context.Context, n entity.Notification) (err error) {
	ctx, span := s.startSpan(ctx, "CreateNotification")
	defer func() { s.endSpan(span, err) }()

	metadata := n.Metadata
	if metadata == nil {
		metadata = valueobject.JSONMap{}
	}

	_, err = s.conn.Exec(ctx, `
		INSERT INTO notifications (id, application_id, type, title, description, read, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.ApplicationID, n.Type.String(), n.Title, n.Description, n.Read, metadata, n.CreatedAt,
	)
	return s.mapError(err)
}
