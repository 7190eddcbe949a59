package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/releaseplan/internal/conflict"
	"github.com/alexanderramin/releaseplan/internal/domain"
	"github.com/alexanderramin/releaseplan/internal/repository"
)

// resolveRelease finds a release by ID first, then by name.
func resolveRelease(ctx context.Context, releases repository.ReleaseRepo, ref string) (*domain.Release, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("release reference is required")
	}
	rel, err := releases.GetByID(ctx, ref)
	if err == nil {
		return rel, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	rel, err = releases.GetByName(ctx, ref)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("release %q: %w", ref, repository.ErrNotFound)
	}
	return rel, err
}

// loadSnapshot resolves ref and loads the release's full snapshot.
func loadSnapshot(ctx context.Context, store *repository.SQLiteSnapshotStore, ref string) (*domain.Snapshot, error) {
	rel, err := resolveRelease(ctx, store.Releases, ref)
	if err != nil {
		return nil, err
	}
	snap, err := store.Load(ctx, rel.ID)
	if err != nil {
		return nil, fmt.Errorf("loading release %q: %w", rel.Name, err)
	}
	return snap, nil
}

// resolvePhase finds a phase by ID, then by case-insensitive name.
func resolvePhase(phases []domain.Phase, ref string) (int, error) {
	for i := range phases {
		if phases[i].ID == ref {
			return i, nil
		}
	}
	for i := range phases {
		if strings.EqualFold(phases[i].Name, strings.TrimSpace(ref)) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("phase %q: %w", ref, repository.ErrNotFound)
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}

// contiguityWarnings flattens a joined contiguity error into one line per gap.
func contiguityWarnings(err error) []string {
	if err == nil {
		return nil
	}
	var out []string
	for _, line := range strings.Split(err.Error(), "\n") {
		if line = strings.TrimSpace(line); line != "" && line != domain.ErrPhasesNotContiguous.Error() {
			out = append(out, line)
		}
	}
	return out
}

func conflictsTouching(conflicts []conflict.Conflict, ticketID string) []conflict.Conflict {
	var out []conflict.Conflict
	for i := range conflicts {
		if conflicts[i].Touches(ticketID) {
			out = append(out, conflicts[i])
		}
	}
	return out
}

// withTicket returns a copy of tickets with the entry matching t.ID replaced.
func withTicket(tickets []domain.Ticket, t domain.Ticket) []domain.Ticket {
	out := make([]domain.Ticket, len(tickets))
	copy(out, tickets)
	for i := range out {
		if out[i].ID == t.ID {
			out[i] = t
		}
	}
	return out
}
