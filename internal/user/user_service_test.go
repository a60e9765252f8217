package user_test

import (
	"context"
	"testing"

	"go-backoffice/internal/user"
	usererrors "go-backoffice/internal/user/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	createFn     func(ctx context.Context, u *user.User) error
	getByEmailFn func(ctx context.Context, email string) (*user.User, error)
	getByIDFn    func(ctx context.Context, id string) (*user.User, error)
	findAllFn    func(ctx context.Context) ([]user.User, error)
	updateFn     func(ctx context.Context, u *user.User) error
}

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindAll(ctx context.Context) ([]user.User, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, u)
	}
	return nil
}

func TestUserService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success maps employee link", func(t *testing.T) {
		userID := uuid.New()
		employeeID := uuid.New()
		repo := &fakeUserRepository{
			getByIDFn: func(ctx context.Context, id string) (*user.User, error) {
				assert.Equal(t, userID.String(), id)
				return &user.User{
					ID:         userID,
					EmployeeID: &employeeID,
					Name:       "Siti Rahma",
					Email:      "siti@example.com",
					Role:       "HR",
					IsActive:   true,
				}, nil
			},
		}
		svc := user.NewService(repo)

		resp, err := svc.GetByID(ctx, userID.String())

		assert.NoError(t, err)
		assert.Equal(t, userID.String(), resp.ID)
		assert.Equal(t, "HR", resp.Role)
		assert.NotNil(t, resp.EmployeeID)
		assert.Equal(t, employeeID.String(), *resp.EmployeeID)
	})

	t.Run("invalid id rejected", func(t *testing.T) {
		svc := user.NewService(&fakeUserRepository{})

		_, err := svc.GetByID(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, usererrors.ErrInvalidUserID)
	})

	t.Run("missing user", func(t *testing.T) {
		svc := user.NewService(&fakeUserRepository{})

		_, err := svc.GetByID(ctx, uuid.New().String())

		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}

func TestUserService_GetAll(t *testing.T) {
	ctx := context.Background()

	repo := &fakeUserRepository{
		findAllFn: func(ctx context.Context) ([]user.User, error) {
			return []user.User{
				{ID: uuid.New(), Name: "Budi", Role: "Employee", IsActive: true},
				{ID: uuid.New(), Name: "Siti", Role: "HR", IsActive: false},
			}, nil
		},
	}
	svc := user.NewService(repo)

	resp, err := svc.GetAll(ctx)

	assert.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, "Budi", resp[0].Name)
	assert.False(t, resp[1].IsActive)
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	userID := uuid.New()

	stored := func() *user.User {
		return &user.User{
			ID:       userID,
			Name:     "Budi Santoso",
			Email:    "budi@example.com",
			Role:     "Employee",
			IsActive: true,
		}
	}

	t.Run("admin changes role and deactivates", func(t *testing.T) {
		var saved *user.User
		inactive := false
		repo := &fakeUserRepository{
			getByIDFn: func(ctx context.Context, id string) (*user.User, error) {
				return stored(), nil
			},
			updateFn: func(ctx context.Context, u *user.User) error {
				saved = u
				return nil
			},
		}
		svc := user.NewService(repo)

		resp, err := svc.Update(ctx, actorID, userID.String(), user.UpdateUserRequest{
			Role:     "HR",
			IsActive: &inactive,
		})

		assert.NoError(t, err)
		assert.NotNil(t, saved)
		assert.Equal(t, "HR", saved.Role)
		assert.False(t, saved.IsActive)
		// Field yang tidak dikirim tidak boleh berubah.
		assert.Equal(t, "Budi Santoso", saved.Name)
		assert.Equal(t, "HR", resp.Role)
		assert.False(t, resp.IsActive)
	})

	t.Run("missing user", func(t *testing.T) {
		svc := user.NewService(&fakeUserRepository{})

		_, err := svc.Update(ctx, actorID, userID.String(), user.UpdateUserRequest{Role: "HR"})

		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})

	t.Run("invalid id rejected", func(t *testing.T) {
		svc := user.NewService(&fakeUserRepository{})

		_, err := svc.Update(ctx, actorID, "not-a-uuid", user.UpdateUserRequest{Role: "HR"})

		assert.ErrorIs(t, err, usererrors.ErrInvalidUserID)
	})
}
