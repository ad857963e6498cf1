package app_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"newsnotes/internal/notes/domain/entities"
	"newsnotes/internal/notes/ports/repositories"
)

type mockNoteStore struct {
	mock.Mock
}

func (m *mockNoteStore) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockNoteStore) Insert(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	args := m.Called(ctx, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteStore) Update(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	args := m.Called(ctx, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

// mockNoteRepository выполняет fn транзакции над store.
type mockNoteRepository struct {
	mock.Mock
	store *mockNoteStore
}

func (m *mockNoteRepository) ListByAuthor(ctx context.Context, authorID string) ([]entities.Note, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Note), args.Error(1)
}

func (m *mockNoteRepository) GetBySlug(ctx context.Context, slug, authorID string) (*entities.Note, error) {
	args := m.Called(ctx, slug, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) Delete(ctx context.Context, id int64, authorID string) error {
	return m.Called(ctx, id, authorID).Error(0)
}

func (m *mockNoteRepository) WithinTx(ctx context.Context, fn func(store repositories.NoteStore) error) error {
	args := m.Called(ctx)
	if err := fn(m.store); err != nil {
		return err
	}
	return args.Error(0)
}
