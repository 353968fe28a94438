package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/classtrack/roster/internal/app/models"
	"github.com/classtrack/roster/internal/app/models/dto"
	"github.com/classtrack/roster/internal/pkg/apperrors"
)

// stubSections answers every lookup positively and reports no name clashes.
type stubSections struct{}

func (stubSections) Find(ctx context.Context, id int64) (*models.Section, error) {
	return &models.Section{ID: id, Name: "Paralelo A"}, nil
}

func (stubSections) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	return false, nil
}

// stubStudents reports no national-id clashes.
type stubStudents struct{}

func (stubStudents) NationalIDExists(ctx context.Context, nationalID string, excludeID int64) (bool, error) {
	return false, nil
}

func emailRejected(t *testing.T, err error) bool {
	t.Helper()
	if err == nil {
		return false
	}
	var verr *apperrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	return len(verr.Violations["email"]) > 0
}

// An email accepted when the student is created must also be accepted when
// re-submitted on update, and vice versa.
func TestStudentEmailRulesAgreeAcrossCreateAndUpdate(t *testing.T) {
	v := NewStudentValidator(stubStudents{}, stubSections{})
	ctx := context.Background()

	emails := []string{
		"carlos@example.com",
		"ana.lopez+test@sub.example.co",
		"x_y%z@example.io",
		"user@example.c0m",
		"plainaddress",
		"@example.com",
		"carlos@",
		"carlos example@example.com",
	}

	for _, email := range emails {
		t.Run(email, func(t *testing.T) {
			createErr := v.ValidateCreate(ctx, dto.CreateStudentRequest{
				Name:       "Carlos Perez",
				NationalID: "1102567890",
				Email:      email,
				SectionID:  1,
			})
			updateErr := v.ValidateUpdate(ctx, 1, dto.UpdateStudentRequest{Email: &email})

			if emailRejected(t, createErr) != emailRejected(t, updateErr) {
				t.Errorf("create and update disagree on %q (create rejected: %v, update rejected: %v)",
					email, emailRejected(t, createErr), emailRejected(t, updateErr))
			}
		})
	}
}

func TestStudentEmailUpdateRequiredWhenPresent(t *testing.T) {
	v := NewStudentValidator(stubStudents{}, stubSections{})
	empty := ""

	err := v.ValidateUpdate(context.Background(), 1, dto.UpdateStudentRequest{Email: &empty})
	var verr *apperrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Violations["email"]) != 1 || verr.Violations["email"][0] != ReasonRequired {
		t.Fatalf("expected required violation, got %v", verr.Violations["email"])
	}
}
