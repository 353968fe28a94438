package services

import (
	"context"
	"sort"

	"github.com/classtrack/roster/internal/app/models"
	"github.com/classtrack/roster/internal/app/repositories"
	"github.com/classtrack/roster/internal/pkg/apperrors"
)

// fakeSectionStore is an in-memory SectionStore. It enforces the same
// constraints the database schema does, so services see the same sentinel
// errors in tests as in production.
type fakeSectionStore struct {
	sections map[int64]*models.Section
	students *fakeStudentStore
	nextID   int64

	// blindPrecheck makes NameExists always report false, simulating a
	// write that races past the validator and loses to the unique index.
	blindPrecheck bool

	// phantomFind makes Find succeed for any id, simulating a section
	// deleted between the reference check and the student write.
	phantomFind bool
}

func newFakeSectionStore() *fakeSectionStore {
	return &fakeSectionStore{sections: make(map[int64]*models.Section)}
}

func (f *fakeSectionStore) Find(ctx context.Context, id int64) (*models.Section, error) {
	if section, ok := f.sections[id]; ok {
		copied := *section
		return &copied, nil
	}
	if f.phantomFind {
		return &models.Section{ID: id, Name: "phantom"}, nil
	}
	return nil, apperrors.ErrSectionNotFound
}

func (f *fakeSectionStore) List(ctx context.Context) ([]*models.Section, error) {
	ids := make([]int64, 0, len(f.sections))
	for id := range f.sections {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	sections := make([]*models.Section, 0, len(ids))
	for _, id := range ids {
		copied := *f.sections[id]
		sections = append(sections, &copied)
	}
	return sections, nil
}

func (f *fakeSectionStore) Insert(ctx context.Context, section *models.Section) error {
	for _, existing := range f.sections {
		if existing.Name == section.Name {
			return repositories.ErrDuplicateSectionName
		}
	}
	f.nextID++
	section.ID = f.nextID
	copied := *section
	f.sections[section.ID] = &copied
	return nil
}

func (f *fakeSectionStore) Update(ctx context.Context, section *models.Section) error {
	if _, ok := f.sections[section.ID]; !ok {
		return apperrors.ErrSectionNotFound
	}
	for id, existing := range f.sections {
		if id != section.ID && existing.Name == section.Name {
			return repositories.ErrDuplicateSectionName
		}
	}
	copied := *section
	f.sections[section.ID] = &copied
	return nil
}

func (f *fakeSectionStore) Remove(ctx context.Context, id int64) error {
	if _, ok := f.sections[id]; !ok {
		return apperrors.ErrSectionNotFound
	}
	if f.students != nil {
		for _, student := range f.students.students {
			if student.SectionID == id {
				return apperrors.ErrSectionHasStudents
			}
		}
	}
	delete(f.sections, id)
	return nil
}

func (f *fakeSectionStore) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	if f.blindPrecheck {
		return false, nil
	}
	for id, existing := range f.sections {
		if id != excludeID && existing.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSectionStore) HasStudents(ctx context.Context, id int64) (bool, error) {
	if f.students == nil {
		return false, nil
	}
	for _, student := range f.students.students {
		if student.SectionID == id {
			return true, nil
		}
	}
	return false, nil
}

// fakeStudentStore is an in-memory StudentStore linked to a section store so
// reads carry the section name the way the LEFT JOIN does.
type fakeStudentStore struct {
	students map[int64]*models.Student
	sections *fakeSectionStore
	nextID   int64

	blindPrecheck bool
}

func newFakeStudentStore(sections *fakeSectionStore) *fakeStudentStore {
	store := &fakeStudentStore{
		students: make(map[int64]*models.Student),
		sections: sections,
	}
	if sections != nil {
		sections.students = store
	}
	return store
}

// withSectionName mirrors the join: a dangling reference yields a nil name.
func (f *fakeStudentStore) withSectionName(student *models.Student) *models.Student {
	copied := *student
	copied.SectionName = nil
	if f.sections != nil {
		if section, ok := f.sections.sections[student.SectionID]; ok {
			name := section.Name
			copied.SectionName = &name
		}
	}
	return &copied
}

func (f *fakeStudentStore) Find(ctx context.Context, id int64) (*models.Student, error) {
	if student, ok := f.students[id]; ok {
		return f.withSectionName(student), nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentStore) List(ctx context.Context) ([]*models.Student, error) {
	ids := make([]int64, 0, len(f.students))
	for id := range f.students {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	students := make([]*models.Student, 0, len(ids))
	for _, id := range ids {
		students = append(students, f.withSectionName(f.students[id]))
	}
	return students, nil
}

func (f *fakeStudentStore) checkConstraints(student *models.Student) error {
	for id, existing := range f.students {
		if id != student.ID && existing.NationalID == student.NationalID {
			return repositories.ErrDuplicateNationalID
		}
	}
	if f.sections != nil {
		if _, ok := f.sections.sections[student.SectionID]; !ok {
			return repositories.ErrSectionReferenceMissing
		}
	}
	return nil
}

func (f *fakeStudentStore) Insert(ctx context.Context, student *models.Student) error {
	if err := f.checkConstraints(student); err != nil {
		return err
	}
	f.nextID++
	student.ID = f.nextID
	copied := *student
	f.students[student.ID] = &copied
	return nil
}

func (f *fakeStudentStore) Update(ctx context.Context, student *models.Student) error {
	if _, ok := f.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	if err := f.checkConstraints(student); err != nil {
		return err
	}
	copied := *student
	f.students[student.ID] = &copied
	return nil
}

func (f *fakeStudentStore) Remove(ctx context.Context, id int64) error {
	if _, ok := f.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(f.students, id)
	return nil
}

func (f *fakeStudentStore) NationalIDExists(ctx context.Context, nationalID string, excludeID int64) (bool, error) {
	if f.blindPrecheck {
		return false, nil
	}
	for id, existing := range f.students {
		if id != excludeID && existing.NationalID == nationalID {
			return true, nil
		}
	}
	return false, nil
}

// breakJoin repoints a student at a section id that no longer exists, the
// state a read must tolerate with a null section name.
func (f *fakeStudentStore) breakJoin(id int64, danglingSectionID int64) {
	if student, ok := f.students[id]; ok {
		student.SectionID = danglingSectionID
	}
}
