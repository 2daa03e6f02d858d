package company

import (
	"context"
	"errors"
	"testing"

	"github.com/cajachica/backend/internal/domain/company"
	"github.com/cajachica/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCompanyRepository is a mock implementation of company.Repository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]company.Company, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]company.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindActive(ctx context.Context) ([]company.Company, error) {
	args := m.Called(ctx)
	return args.Get(0).([]company.Company), args.Error(1)
}

func (m *MockCompanyRepository) Save(ctx context.Context, c *company.Company) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCompanyRepository) SaveWithLock(ctx context.Context, c *company.Company) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCompanyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCompanyRepository) CommitReportSequence(ctx context.Context, id uuid.UUID, number int) error {
	args := m.Called(ctx, id, number)
	return args.Error(0)
}

func TestCreateCompany(t *testing.T) {
	ctx := context.Background()

	t.Run("creates with defaults", func(t *testing.T) {
		repo := new(MockCompanyRepository)
		repo.On("Save", ctx, mock.AnythingOfType("*company.Company")).Return(nil)
		service := NewService(repo, nil)

		c, err := service.CreateCompany(ctx, CreateCompanyRequest{Name: "Constructora Andina SAC"})
		require.NoError(t, err)

		assert.Equal(t, "Constructora Andina SAC", c.Name)
		assert.Equal(t, company.DefaultReportPrefix, c.ReportPrefix)
		assert.Equal(t, 0, c.ReportSequence)
		assert.True(t, c.IsActive())
		repo.AssertExpectations(t)
	})

	t.Run("honors a custom report prefix", func(t *testing.T) {
		repo := new(MockCompanyRepository)
		repo.On("Save", ctx, mock.AnythingOfType("*company.Company")).Return(nil)
		service := NewService(repo, nil)

		c, err := service.CreateCompany(ctx, CreateCompanyRequest{Name: "Andina", ReportPrefix: "CAJ"})
		require.NoError(t, err)
		assert.Equal(t, "CAJ", c.ReportPrefix)
	})

	t.Run("rejects an empty name without touching the store", func(t *testing.T) {
		repo := new(MockCompanyRepository)
		service := NewService(repo, nil)

		_, err := service.CreateCompany(ctx, CreateCompanyRequest{Name: "   "})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("propagates storage failures", func(t *testing.T) {
		repo := new(MockCompanyRepository)
		repo.On("Save", ctx, mock.Anything).Return(errors.New("db down"))
		service := NewService(repo, nil)

		_, err := service.CreateCompany(ctx, CreateCompanyRequest{Name: "Andina"})
		assert.Error(t, err)
	})
}

func TestGetCompany(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		existing, err := company.NewCompany("Andina")
		require.NoError(t, err)

		repo := new(MockCompanyRepository)
		repo.On("FindByID", ctx, existing.GetID()).Return(existing, nil)
		service := NewService(repo, nil)

		c, err := service.GetCompany(ctx, existing.GetID())
		require.NoError(t, err)
		assert.Equal(t, existing.GetID(), c.GetID())
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockCompanyRepository)
		repo.On("FindByID", ctx, mock.Anything).Return(nil, nil)
		service := NewService(repo, nil)

		_, err := service.GetCompany(ctx, uuid.New())
		assert.Equal(t, "NOT_FOUND", shared.ErrorCode(err))
	})
}

func TestCompanyLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivate then activate", func(t *testing.T) {
		existing, err := company.NewCompany("Andina")
		require.NoError(t, err)

		repo := new(MockCompanyRepository)
		repo.On("FindByID", ctx, existing.GetID()).Return(existing, nil)
		repo.On("SaveWithLock", ctx, existing).Return(nil)
		service := NewService(repo, nil)

		c, err := service.DeactivateCompany(ctx, existing.GetID())
		require.NoError(t, err)
		assert.False(t, c.IsActive())

		c, err = service.ActivateCompany(ctx, existing.GetID())
		require.NoError(t, err)
		assert.True(t, c.IsActive())
	})

	t.Run("deactivating twice fails", func(t *testing.T) {
		existing, err := company.NewCompany("Andina")
		require.NoError(t, err)
		require.NoError(t, existing.Deactivate())

		repo := new(MockCompanyRepository)
		repo.On("FindByID", ctx, existing.GetID()).Return(existing, nil)
		service := NewService(repo, nil)

		_, err = service.DeactivateCompany(ctx, existing.GetID())
		assert.Equal(t, "INVALID_STATE", shared.ErrorCode(err))
		repo.AssertNotCalled(t, "SaveWithLock")
	})
}

func TestUpdateCompany(t *testing.T) {
	ctx := context.Background()
	existing, err := company.NewCompany("Andina")
	require.NoError(t, err)

	repo := new(MockCompanyRepository)
	repo.On("FindByID", ctx, existing.GetID()).Return(existing, nil)
	repo.On("SaveWithLock", ctx, existing).Return(nil)
	service := NewService(repo, nil)

	c, err := service.UpdateCompany(ctx, existing.GetID(), UpdateCompanyRequest{Name: "Andina Norte", ReportPrefix: "NOR"})
	require.NoError(t, err)
	assert.Equal(t, "Andina Norte", c.Name)
	assert.Equal(t, "NOR", c.ReportPrefix)
}

func TestDeleteCompany(t *testing.T) {
	ctx := context.Background()
	existing, err := company.NewCompany("Andina")
	require.NoError(t, err)

	repo := new(MockCompanyRepository)
	repo.On("FindByID", ctx, existing.GetID()).Return(existing, nil)
	repo.On("Delete", ctx, existing.GetID()).Return(nil)
	service := NewService(repo, nil)

	require.NoError(t, service.DeleteCompany(ctx, existing.GetID()))
	repo.AssertExpectations(t)
}
