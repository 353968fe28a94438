package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/classtrack/roster/internal/app/models/dto"
	"github.com/classtrack/roster/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

func int64Ptr(i int64) *int64 { return &i }

// requireValidationError asserts err is a ValidationError naming exactly the
// given fields.
func requireValidationError(t *testing.T, err error, fields ...string) *apperrors.ValidationError {
	t.Helper()
	var verr *apperrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	got := verr.Fields()
	if len(got) != len(fields) {
		t.Fatalf("expected violations on %v, got %v", fields, got)
	}
	for i, field := range fields {
		if got[i] != field {
			t.Fatalf("expected violations on %v, got %v", fields, got)
		}
	}
	return verr
}

func newSectionService() (*SectionService, *fakeSectionStore) {
	store := newFakeSectionStore()
	newFakeStudentStore(store)
	return NewSectionService(store), store
}

func TestSectionServiceCreateAndGet(t *testing.T) {
	svc, _ := newSectionService()
	ctx := context.Background()

	first, err := svc.Create(ctx, dto.CreateSectionRequest{Name: "Paralelo A"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second, err := svc.Create(ctx, dto.CreateSectionRequest{Name: "Paralelo B"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct ids, both got %d", first.ID)
	}

	got, err := svc.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name != "Paralelo A" {
		t.Fatalf("expected name Paralelo A, got %q", got.Name)
	}
}

func TestSectionServiceCreateValidation(t *testing.T) {
	tests := []struct {
		name  string
		req   dto.CreateSectionRequest
		field string
	}{
		{name: "empty name", req: dto.CreateSectionRequest{Name: ""}, field: "name"},
		{name: "name too long", req: dto.CreateSectionRequest{Name: strings.Repeat("a", 101)}, field: "name"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newSectionService()
			_, err := svc.Create(context.Background(), tc.req)
			requireValidationError(t, err, tc.field)
		})
	}
}

func TestSectionServiceCreateDuplicateName(t *testing.T) {
	svc, _ := newSectionService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, dto.CreateSectionRequest{Name: "Paralelo A"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err := svc.Create(ctx, dto.CreateSectionRequest{Name: "Paralelo A"})
	verr := requireValidationError(t, err, "name")
	if verr.Violations["name"][0] != "has already been taken" {
		t.Fatalf("unexpected reason: %v", verr.Violations["name"])
	}
}

func TestSectionServiceCreateDuplicateRace(t *testing.T) {
	// The pre-check misses the conflict; the unique constraint must still
	// surface as the same field violation.
	svc, store := newSectionService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, dto.CreateSectionRequest{Name: "Paralelo A"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	store.blindPrecheck = true

	_, err := svc.Create(ctx, dto.CreateSectionRequest{Name: "Paralelo A"})
	requireValidationError(t, err, "name")
}

func TestSectionServiceUpdate(t *testing.T) {
	svc, _ := newSectionService()
	ctx := context.Background()

	section, err := svc.Create(ctx, dto.CreateSectionRequest{Name: "Paralelo A"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(ctx, section.ID, dto.UpdateSectionRequest{Name: strPtr("Paralelo C")})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Paralelo C" {
		t.Fatalf("expected renamed section, got %q", updated.Name)
	}

	got, err := svc.Get(ctx, section.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name != "Paralelo C" {
		t.Fatalf("rename not persisted, got %q", got.Name)
	}
}

func TestSectionServiceUpdateNoFieldsIsNoOp(t *testing.T) {
	svc, _ := newSectionService()
	ctx := context.Background()

	section, err := svc.Create(ctx, dto.CreateSectionRequest{Name: "Paralelo A"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(ctx, section.ID, dto.UpdateSectionRequest{})
	if err != nil {
		t.Fatalf("empty update failed: %v", err)
	}
	if updated.Name != "Paralelo A" {
		t.Fatalf("no-op update changed the record: %q", updated.Name)
	}
}

func TestSectionServiceUpdateNotFound(t *testing.T) {
	svc, _ := newSectionService()

	_, err := svc.Update(context.Background(), 42, dto.UpdateSectionRequest{Name: strPtr("Paralelo X")})
	if !errors.Is(err, apperrors.ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
}

func TestSectionServiceUpdateDuplicateName(t *testing.T) {
	svc, _ := newSectionService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, dto.CreateSectionRequest{Name: "Paralelo A"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	section, err := svc.Create(ctx, dto.CreateSectionRequest{Name: "Paralelo B"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = svc.Update(ctx, section.ID, dto.UpdateSectionRequest{Name: strPtr("Paralelo A")})
	requireValidationError(t, err, "name")
}

func TestSectionServiceUpdateToOwnNameAllowed(t *testing.T) {
	svc, _ := newSectionService()
	ctx := context.Background()

	section, err := svc.Create(ctx, dto.CreateSectionRequest{Name: "Paralelo A"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(ctx, section.ID, dto.UpdateSectionRequest{Name: strPtr("Paralelo A")})
	if err != nil {
		t.Fatalf("idempotent rename rejected: %v", err)
	}
	if updated.Name != "Paralelo A" {
		t.Fatalf("unexpected name %q", updated.Name)
	}
}

func TestSectionServiceDelete(t *testing.T) {
	svc, _ := newSectionService()
	ctx := context.Background()

	section, err := svc.Create(ctx, dto.CreateSectionRequest{Name: "Paralelo A"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	snapshot, err := svc.Delete(ctx, section.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if snapshot.Name != "Paralelo A" {
		t.Fatalf("expected snapshot of deleted section, got %q", snapshot.Name)
	}

	if _, err := svc.Get(ctx, section.ID); !errors.Is(err, apperrors.ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound after delete, got %v", err)
	}
}

func TestSectionServiceDeleteNotFound(t *testing.T) {
	svc, _ := newSectionService()

	_, err := svc.Delete(context.Background(), 42)
	if !errors.Is(err, apperrors.ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
}

func TestSectionServiceDeleteWithStudentsBlocked(t *testing.T) {
	sections := newFakeSectionStore()
	students := newFakeStudentStore(sections)
	sectionSvc := NewSectionService(sections)
	studentSvc := NewStudentService(students, sections)
	ctx := context.Background()

	section, err := sectionSvc.Create(ctx, dto.CreateSectionRequest{Name: "Paralelo A"})
	if err != nil {
		t.Fatalf("create section failed: %v", err)
	}
	_, err = studentSvc.Create(ctx, dto.CreateStudentRequest{
		Name:       "Carlos Perez",
		NationalID: "1102567890",
		Email:      "carlos@example.com",
		SectionID:  section.ID,
	})
	if err != nil {
		t.Fatalf("create student failed: %v", err)
	}

	if _, err := sectionSvc.Delete(ctx, section.ID); !errors.Is(err, apperrors.ErrSectionHasStudents) {
		t.Fatalf("expected ErrSectionHasStudents, got %v", err)
	}

	// The section must still be there.
	if _, err := sectionSvc.Get(ctx, section.ID); err != nil {
		t.Fatalf("blocked delete removed the section: %v", err)
	}
}

func TestSectionServiceList(t *testing.T) {
	svc, _ := newSectionService()
	ctx := context.Background()

	names := []string{"Paralelo A", "Paralelo B", "Paralelo C"}
	for _, name := range names {
		if _, err := svc.Create(ctx, dto.CreateSectionRequest{Name: name}); err != nil {
			t.Fatalf("create %q failed: %v", name, err)
		}
	}

	sections, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(sections) != len(names) {
		t.Fatalf("expected %d sections, got %d", len(names), len(sections))
	}
	for i, section := range sections {
		if section.Name != names[i] {
			t.Fatalf("expected %q at position %d, got %q", names[i], i, section.Name)
		}
	}
}
