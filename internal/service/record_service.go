package service

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"muhasebe-api/internal/core/domain"
	"muhasebe-api/internal/core/ports"
	"muhasebe-api/pkg/apperror"
)

// Entity describes how RecordService handles one record type.
type Entity[T any] struct {
	// Name is the audit target; lower-cased it prefixes capabilities.
	Name string
	ID   func(*T) string
	// Owner returns the id of the user who owns the record.
	Owner func(*T) string
	// Stamp assigns the server-side fields of a new record.
	Stamp func(rec *T, ownerID string, now time.Time)
	// Preserve copies fields an update must not change from old to updated.
	Preserve func(updated, old *T)
	// Normalize is optional and runs before Validate on create and update.
	Normalize func(*T)
	Validate  func(*T) error
	// Filterable lists the Filter.Eq fields callers may use on List.
	Filterable []string
}

func (e Entity[T]) capability(a domain.Action) domain.Capability {
	return domain.NewCapability(e.Name, a)
}

// RecordServiceImpl implements ports.RecordService for any entity.
type RecordServiceImpl[T any] struct {
	entity Entity[T]
	repo   ports.RecordRepository[T]
	audit  ports.AuditService
	now    func() time.Time
}

// NewRecordService creates a RecordServiceImpl for entity backed by repo.
func NewRecordService[T any](entity Entity[T], repo ports.RecordRepository[T], audit ports.AuditService) *RecordServiceImpl[T] {
	return &RecordServiceImpl[T]{
		entity: entity,
		repo:   repo,
		audit:  audit,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create stamps, validates and stores a new record owned by the caller.
func (s *RecordServiceImpl[T]) Create(ctx context.Context, in *T) (*T, error) {
	p, _ := domain.PrincipalFrom(ctx)
	if err := Authorize(p, s.entity.capability(domain.ActionCreate), "", ""); err != nil {
		return nil, err
	}

	rec := *in
	s.entity.Stamp(&rec, p.ID, s.now())
	if err := s.check(&rec); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &rec); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create %s: %w", s.entity.Name, err))
	}

	s.audit.Record(ctx, ports.AuditEntry{
		ActorID: p.ID,
		Action:  domain.AuditActionAdd,
		Target:  s.entity.Name,
		ItemID:  s.entity.ID(&rec),
		New:     rec,
	})

	return &rec, nil
}

// List returns one page of records visible to the caller and the total
// number of matches. Non-admins only ever see their own records.
func (s *RecordServiceImpl[T]) List(ctx context.Context, q ports.ListQuery) ([]T, int64, error) {
	p, _ := domain.PrincipalFrom(ctx)
	if err := Authorize(p, s.entity.capability(domain.ActionRead), "", q.UserID); err != nil {
		return nil, 0, err
	}

	filter, err := s.buildFilter(q.Filter)
	if err != nil {
		return nil, 0, err
	}
	filter = ScopeToOwner(p, filter, q.UserID)

	items, total, err := s.repo.List(ctx, filter, q.Page)
	if err != nil {
		return nil, 0, apperror.ErrDatabaseError(fmt.Errorf("list %s: %w", s.entity.Name, err))
	}
	return items, total, nil
}

// Get loads a single record. Existence is checked before ownership.
func (s *RecordServiceImpl[T]) Get(ctx context.Context, id string) (*T, error) {
	p, _ := domain.PrincipalFrom(ctx)
	if p == nil {
		return nil, apperror.ErrUnauthenticated()
	}

	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(p, s.entity.capability(domain.ActionRead), s.entity.Owner(rec), ""); err != nil {
		return nil, err
	}
	return rec, nil
}

// Update applies mutate to a copy of the stored record and replaces it.
func (s *RecordServiceImpl[T]) Update(ctx context.Context, id string, mutate func(*T) error) (*T, error) {
	p, _ := domain.PrincipalFrom(ctx)
	if p == nil {
		return nil, apperror.ErrUnauthenticated()
	}

	existing, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(p, s.entity.capability(domain.ActionUpdate), s.entity.Owner(existing), ""); err != nil {
		return nil, err
	}

	updated := *existing
	if err := mutate(&updated); err != nil {
		return nil, err
	}
	s.entity.Preserve(&updated, existing)
	if err := s.check(&updated); err != nil {
		return nil, err
	}

	ok, err := s.repo.Replace(ctx, &updated)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("replace %s: %w", s.entity.Name, err))
	}
	if !ok {
		return nil, apperror.ErrNotFound(s.entity.Name)
	}

	s.audit.Record(ctx, ports.AuditEntry{
		ActorID: p.ID,
		Action:  domain.AuditActionUpdate,
		Target:  s.entity.Name,
		ItemID:  id,
		Old:     *existing,
		New:     updated,
	})

	return &updated, nil
}

// Delete removes a record. Deleting an id twice yields NotFound.
func (s *RecordServiceImpl[T]) Delete(ctx context.Context, id string) error {
	p, _ := domain.PrincipalFrom(ctx)
	if p == nil {
		return apperror.ErrUnauthenticated()
	}

	existing, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := Authorize(p, s.entity.capability(domain.ActionDelete), s.entity.Owner(existing), ""); err != nil {
		return err
	}

	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("delete %s: %w", s.entity.Name, err))
	}
	if !ok {
		return apperror.ErrNotFound(s.entity.Name)
	}

	s.audit.Record(ctx, ports.AuditEntry{
		ActorID: p.ID,
		Action:  domain.AuditActionDelete,
		Target:  s.entity.Name,
		ItemID:  id,
		Old:     *existing,
	})

	return nil
}

func (s *RecordServiceImpl[T]) load(ctx context.Context, id string) (*T, error) {
	if !domain.IsValidID(id) {
		return nil, apperror.ErrNotFound(s.entity.Name)
	}
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get %s: %w", s.entity.Name, err))
	}
	if rec == nil {
		return nil, apperror.ErrNotFound(s.entity.Name)
	}
	return rec, nil
}

func (s *RecordServiceImpl[T]) check(rec *T) error {
	if s.entity.Normalize != nil {
		s.entity.Normalize(rec)
	}
	if s.entity.Validate != nil {
		return s.entity.Validate(rec)
	}
	return nil
}

func (s *RecordServiceImpl[T]) buildFilter(fields map[string]string) (ports.Filter, error) {
	filter := ports.NewFilter()
	for field, value := range fields {
		if !slices.Contains(s.entity.Filterable, field) {
			allowed := slices.Clone(s.entity.Filterable)
			sort.Strings(allowed)
			return filter, apperror.Validation(fmt.Sprintf(
				"unknown filter field %q for %s (allowed: %s)", field, s.entity.Name, strings.Join(allowed, ", "),
			))
		}
		if value == "" {
			continue
		}
		filter = filter.With(field, value)
	}
	return filter, nil
}

// ScopeToOwner restricts filter to the records the principal may list.
// Admins may narrow to requestedUserID; everyone else is pinned to their
// own id.
func ScopeToOwner(p *domain.Principal, filter ports.Filter, requestedUserID string) ports.Filter {
	if !p.IsAdmin() {
		return filter.With(ports.FieldUserID, p.ID)
	}
	if requestedUserID != "" {
		return filter.With(ports.FieldUserID, requestedUserID)
	}
	return filter
}
