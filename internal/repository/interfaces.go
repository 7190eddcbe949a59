package repository

import (
	"context"

	"github.com/alexanderramin/releaseplan/internal/domain"
)

type ReleaseRepo interface {
	Create(ctx context.Context, r *domain.Release) error
	GetByID(ctx context.Context, id string) (*domain.Release, error)
	GetByName(ctx context.Context, name string) (*domain.Release, error)
	List(ctx context.Context) ([]*domain.Release, error)
	Update(ctx context.Context, r *domain.Release) error
	Delete(ctx context.Context, id string) error
}

// TeamRepo stores team members together with their PTO entries.
type TeamRepo interface {
	Create(ctx context.Context, m *domain.TeamMember) error
	ListByRelease(ctx context.Context, releaseID string) ([]domain.TeamMember, error)
	AddPTO(ctx context.Context, p *domain.PTOEntry) error
}

type HolidayRepo interface {
	Create(ctx context.Context, h *domain.Holiday) error
	ListByRelease(ctx context.Context, releaseID string) ([]domain.Holiday, error)
}

type SprintRepo interface {
	Create(ctx context.Context, s *domain.Sprint) error
	ListByRelease(ctx context.Context, releaseID string) ([]domain.Sprint, error)
}

type PhaseRepo interface {
	Create(ctx context.Context, p *domain.Phase) error
	GetByID(ctx context.Context, id string) (*domain.Phase, error)
	ListByRelease(ctx context.Context, releaseID string) ([]domain.Phase, error)
	UpdateDates(ctx context.Context, p *domain.Phase) error
}

type TicketRepo interface {
	Create(ctx context.Context, t *domain.Ticket) error
	Upsert(ctx context.Context, t *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListByRelease(ctx context.Context, releaseID string) ([]domain.Ticket, error)
	Update(ctx context.Context, t *domain.Ticket) error
}

// SnapshotStore reads and writes a whole release at once.
type SnapshotStore interface {
	Load(ctx context.Context, releaseID string) (*domain.Snapshot, error)
	Save(ctx context.Context, s *domain.Snapshot) error
}
