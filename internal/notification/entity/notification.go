package entity

import (
	"time"

	"github.com/shandysiswandi/ambassador/internal/pkg/valueobject"
)

type Notification struct {
	ID            int64
	ApplicationID int64
	Type          Type
	Title         string
	Description   string
	Read          bool
	Metadata      valueobject.JSONMap
	CreatedAt     time.Time
}
