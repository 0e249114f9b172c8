package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"smart-life-organizer/internal/model"
)

type MockContentStore struct {
	mock.Mock
}

func (m *MockContentStore) List(ctx context.Context) ([]model.Content, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Content), args.Error(1)
}

func (m *MockContentStore) FindByID(ctx context.Context, id int64) (model.Content, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Content), args.Error(1)
}

func (m *MockContentStore) FindBySlug(ctx context.Context, slug string) (model.Content, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(model.Content), args.Error(1)
}

func (m *MockContentStore) Create(ctx context.Context, c model.Content) (model.Content, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(model.Content), args.Error(1)
}

func (m *MockContentStore) Update(ctx context.Context, c model.Content) (model.Content, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(model.Content), args.Error(1)
}

func (m *MockContentStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
