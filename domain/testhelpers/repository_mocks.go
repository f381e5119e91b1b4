package testhelpers

import (
	"context"

	"symmbot/domain/entities"
	"symmbot/domain/events"

	"github.com/stretchr/testify/mock"
)

// MockServerConfigRepository is a mock implementation of ServerConfigRepository
type MockServerConfigRepository struct {
	mock.Mock
}

func (m *MockServerConfigRepository) GetByGuildID(ctx context.Context) (*entities.ServerConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ServerConfig), args.Error(1)
}

func (m *MockServerConfigRepository) GetOrCreate(ctx context.Context) (*entities.ServerConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ServerConfig), args.Error(1)
}

func (m *MockServerConfigRepository) Update(ctx context.Context, config *entities.ServerConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

// MockRoleMenuRepository is a mock implementation of RoleMenuRepository
type MockRoleMenuRepository struct {
	mock.Mock
}

func (m *MockRoleMenuRepository) Create(ctx context.Context, menu *entities.RoleMenu, roleGroups [][]int64) (int64, error) {
	args := m.Called(ctx, menu, roleGroups)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRoleMenuRepository) GetByMessageID(ctx context.Context, messageID int64) (*entities.RoleMenu, error) {
	args := m.Called(ctx, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RoleMenu), args.Error(1)
}

func (m *MockRoleMenuRepository) GetByRoleID(ctx context.Context, roleID int64) (*entities.RoleMenu, error) {
	args := m.Called(ctx, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RoleMenu), args.Error(1)
}

func (m *MockRoleMenuRepository) DeleteByMessageID(ctx context.Context, messageID int64) (bool, error) {
	args := m.Called(ctx, messageID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoleMenuRepository) ListByGuild(ctx context.Context) ([]*entities.RoleMenu, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.RoleMenu), args.Error(1)
}

// MockRoleBlockRepository is a mock implementation of RoleBlockRepository
type MockRoleBlockRepository struct {
	mock.Mock
}

func (m *MockRoleBlockRepository) Add(ctx context.Context, blockingRoleID, blockedRoleID int64) error {
	args := m.Called(ctx, blockingRoleID, blockedRoleID)
	return args.Error(0)
}

func (m *MockRoleBlockRepository) Remove(ctx context.Context, blockingRoleID, blockedRoleID int64) (bool, error) {
	args := m.Called(ctx, blockingRoleID, blockedRoleID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoleBlockRepository) GetBlockedRoles(ctx context.Context, userRoles []int64) ([]int64, error) {
	args := m.Called(ctx, userRoles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockRoleBlockRepository) GetBlockingRole(ctx context.Context, userRoles []int64, roleID int64) (*int64, error) {
	args := m.Called(ctx, userRoles, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int64), args.Error(1)
}

func (m *MockRoleBlockRepository) List(ctx context.Context) ([]*entities.RoleBlock, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.RoleBlock), args.Error(1)
}

// MockDocumentationRepository is a mock implementation of DocumentationRepository
type MockDocumentationRepository struct {
	mock.Mock
}

func (m *MockDocumentationRepository) Upsert(ctx context.Context, title, content string, createdBy int64) (int64, error) {
	args := m.Called(ctx, title, content, createdBy)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentationRepository) Delete(ctx context.Context, title string) (bool, error) {
	args := m.Called(ctx, title)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentationRepository) Get(ctx context.Context, title string) (*entities.ServerDocumentation, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ServerDocumentation), args.Error(1)
}

func (m *MockDocumentationRepository) List(ctx context.Context) ([]*entities.ServerDocumentation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ServerDocumentation), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

// MockCompletionClient is a mock implementation of CompletionClient
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Complete(ctx context.Context, req entities.CompletionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// MockDocumentationProvider is a mock implementation of DocumentationProvider
type MockDocumentationProvider struct {
	mock.Mock
}

func (m *MockDocumentationProvider) CombinedDocumentation(ctx context.Context, guildID int64) (string, error) {
	args := m.Called(ctx, guildID)
	return args.String(0), args.Error(1)
}
