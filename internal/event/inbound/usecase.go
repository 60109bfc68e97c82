package inbound

import (
	"context"

	"github.com/shandysiswandi/ambassador/internal/event/entity"
	"github.com/shandysiswandi/ambassador/internal/event/usecase"
)

type uc interface {
	CreateEvent(ctx context.Context, in usecase.CreateEventInput) (*entity.Event, error)
	ListEvents(ctx context.Context) ([]entity.Event, error)
	GetEvent(ctx context.Context, in usecase.GetEventInput) (*usecase.EventDetail, error)
	JoinEvent(ctx context.Context, in usecase.AttendInput) (*usecase.EventDetail, error)
	LeaveEvent(ctx context.Context, in usecase.AttendInput) (*usecase.EventDetail, error)
}
