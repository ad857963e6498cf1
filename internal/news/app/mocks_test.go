package app_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"newsnotes/internal/news/domain/entities"
)

type mockNewsRepository struct {
	mock.Mock
}

func (m *mockNewsRepository) ListLatest(ctx context.Context, limit int) ([]entities.News, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.News), args.Error(1)
}

func (m *mockNewsRepository) GetByID(ctx context.Context, id int64) (*entities.News, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.News), args.Error(1)
}

func (m *mockNewsRepository) BulkCreate(ctx context.Context, news []entities.News) (int64, error) {
	args := m.Called(ctx, news)
	return args.Get(0).(int64), args.Error(1)
}

type mockCommentRepository struct {
	mock.Mock
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *entities.Comment) (*entities.Comment, error) {
	args := m.Called(ctx, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Comment), args.Error(1)
}

func (m *mockCommentRepository) ListByNews(ctx context.Context, newsID int64) ([]entities.Comment, error) {
	args := m.Called(ctx, newsID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Comment), args.Error(1)
}

func (m *mockCommentRepository) GetOwned(ctx context.Context, id int64, authorID string) (*entities.Comment, error) {
	args := m.Called(ctx, id, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Comment), args.Error(1)
}

func (m *mockCommentRepository) UpdateText(ctx context.Context, id int64, authorID, text string) (*entities.Comment, error) {
	args := m.Called(ctx, id, authorID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Comment), args.Error(1)
}

func (m *mockCommentRepository) Delete(ctx context.Context, id int64, authorID string) error {
	return m.Called(ctx, id, authorID).Error(0)
}
