package branch_test

import (
	"context"
	"errors"
	"testing"

	"go-backoffice/internal/branch"
	brancherrors "go-backoffice/internal/branch/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeBranchRepository struct {
	createCountryFn    func(ctx context.Context, c *branch.Country) error
	findAllCountriesFn func(ctx context.Context) ([]branch.Country, error)
	findCountryByIDFn  func(ctx context.Context, id string) (*branch.Country, error)

	createBranchFn     func(ctx context.Context, b *branch.Branch) error
	findAllBranchesFn  func(ctx context.Context) ([]branch.Branch, error)
	findBranchByIDFn   func(ctx context.Context, id string) (*branch.Branch, error)
	findBranchByNameFn func(ctx context.Context, name string) (*branch.Branch, error)
	updateBranchFn     func(ctx context.Context, b *branch.Branch) error
}

func (f *fakeBranchRepository) CreateCountry(ctx context.Context, c *branch.Country) error {
	if f.createCountryFn != nil {
		return f.createCountryFn(ctx, c)
	}
	return nil
}

func (f *fakeBranchRepository) FindAllCountries(ctx context.Context) ([]branch.Country, error) {
	if f.findAllCountriesFn != nil {
		return f.findAllCountriesFn(ctx)
	}
	return nil, nil
}

func (f *fakeBranchRepository) FindCountryByID(ctx context.Context, id string) (*branch.Country, error) {
	if f.findCountryByIDFn != nil {
		return f.findCountryByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBranchRepository) CreateBranch(ctx context.Context, b *branch.Branch) error {
	if f.createBranchFn != nil {
		return f.createBranchFn(ctx, b)
	}
	return nil
}

func (f *fakeBranchRepository) FindAllBranches(ctx context.Context) ([]branch.Branch, error) {
	if f.findAllBranchesFn != nil {
		return f.findAllBranchesFn(ctx)
	}
	return nil, nil
}

func (f *fakeBranchRepository) FindBranchByID(ctx context.Context, id string) (*branch.Branch, error) {
	if f.findBranchByIDFn != nil {
		return f.findBranchByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBranchRepository) FindBranchByName(ctx context.Context, name string) (*branch.Branch, error) {
	if f.findBranchByNameFn != nil {
		return f.findBranchByNameFn(ctx, name)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBranchRepository) UpdateBranch(ctx context.Context, b *branch.Branch) error {
	if f.updateBranchFn != nil {
		return f.updateBranchFn(ctx, b)
	}
	return nil
}

func TestBranchService_CreateCountry(t *testing.T) {
	ctx := context.Background()

	t.Run("success uppercases code", func(t *testing.T) {
		var created *branch.Country
		repo := &fakeBranchRepository{
			createCountryFn: func(ctx context.Context, c *branch.Country) error {
				created = c
				return nil
			},
		}
		svc := branch.NewService(repo)

		resp, err := svc.CreateCountry(ctx, branch.CreateCountryRequest{Name: "Indonesia", Code: "idn"})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, "IDN", created.Code)
		assert.Equal(t, "IDN", resp.Code)
		assert.Equal(t, "Indonesia", resp.Name)
	})

	t.Run("duplicate code conflicts", func(t *testing.T) {
		repo := &fakeBranchRepository{
			createCountryFn: func(ctx context.Context, c *branch.Country) error {
				return errors.New(`pq: duplicate key value violates unique constraint "uq_countries_code"`)
			},
		}
		svc := branch.NewService(repo)

		_, err := svc.CreateCountry(ctx, branch.CreateCountryRequest{Name: "Indonesia", Code: "IDN"})

		assert.ErrorIs(t, err, brancherrors.ErrDuplicateCountry)
	})
}

func TestBranchService_CreateBranch(t *testing.T) {
	ctx := context.Background()
	countryID := uuid.New()

	t.Run("success", func(t *testing.T) {
		var created *branch.Branch
		repo := &fakeBranchRepository{
			findCountryByIDFn: func(ctx context.Context, id string) (*branch.Country, error) {
				assert.Equal(t, countryID.String(), id)
				return &branch.Country{ID: countryID, Name: "Indonesia", Code: "IDN"}, nil
			},
			createBranchFn: func(ctx context.Context, b *branch.Branch) error {
				created = b
				return nil
			},
		}
		svc := branch.NewService(repo)

		resp, err := svc.CreateBranch(ctx, branch.CreateBranchRequest{
			Name:      "Jakarta Pusat",
			Address:   "Jl. Sudirman 1",
			City:      "Jakarta",
			CountryID: countryID.String(),
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.True(t, created.IsActive)
		assert.Equal(t, countryID, created.CountryID)
		assert.Equal(t, "Jakarta Pusat", resp.Name)
		assert.True(t, resp.IsActive)
	})

	t.Run("missing country rejected", func(t *testing.T) {
		svc := branch.NewService(&fakeBranchRepository{})

		_, err := svc.CreateBranch(ctx, branch.CreateBranchRequest{
			Name:      "Jakarta Pusat",
			CountryID: uuid.New().String(),
		})

		assert.ErrorIs(t, err, brancherrors.ErrCountryNotFound)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		repo := &fakeBranchRepository{
			findCountryByIDFn: func(ctx context.Context, id string) (*branch.Country, error) {
				return &branch.Country{ID: countryID}, nil
			},
			findBranchByNameFn: func(ctx context.Context, name string) (*branch.Branch, error) {
				return &branch.Branch{ID: uuid.New(), Name: name}, nil
			},
			createBranchFn: func(ctx context.Context, b *branch.Branch) error {
				t.Fatal("create must not be called")
				return nil
			},
		}
		svc := branch.NewService(repo)

		_, err := svc.CreateBranch(ctx, branch.CreateBranchRequest{
			Name:      "Jakarta Pusat",
			CountryID: countryID.String(),
		})

		assert.ErrorIs(t, err, brancherrors.ErrDuplicateBranchName)
	})
}

func TestBranchService_GetBranchByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success includes country name", func(t *testing.T) {
		branchID := uuid.New()
		countryID := uuid.New()
		repo := &fakeBranchRepository{
			findBranchByIDFn: func(ctx context.Context, id string) (*branch.Branch, error) {
				return &branch.Branch{
					ID:        branchID,
					Name:      "Jakarta Pusat",
					CountryID: countryID,
					IsActive:  true,
					Country:   &branch.Country{ID: countryID, Name: "Indonesia", Code: "IDN"},
				}, nil
			},
		}
		svc := branch.NewService(repo)

		resp, err := svc.GetBranchByID(ctx, branchID.String())

		assert.NoError(t, err)
		assert.Equal(t, "Jakarta Pusat", resp.Name)
		assert.Equal(t, "Indonesia", resp.CountryName)
	})

	t.Run("invalid id rejected", func(t *testing.T) {
		svc := branch.NewService(&fakeBranchRepository{})

		_, err := svc.GetBranchByID(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, brancherrors.ErrInvalidBranchID)
	})

	t.Run("missing branch", func(t *testing.T) {
		svc := branch.NewService(&fakeBranchRepository{})

		_, err := svc.GetBranchByID(ctx, uuid.New().String())

		assert.ErrorIs(t, err, brancherrors.ErrBranchNotFound)
	})
}

func TestBranchService_UpdateBranch(t *testing.T) {
	ctx := context.Background()
	branchID := uuid.New()
	countryID := uuid.New()

	stored := func() *branch.Branch {
		return &branch.Branch{
			ID:        branchID,
			Name:      "Jakarta Pusat",
			Address:   "Jl. Sudirman 1",
			City:      "Jakarta",
			CountryID: countryID,
			IsActive:  true,
		}
	}

	t.Run("rename and deactivate", func(t *testing.T) {
		var saved *branch.Branch
		inactive := false
		repo := &fakeBranchRepository{
			findBranchByIDFn: func(ctx context.Context, id string) (*branch.Branch, error) {
				return stored(), nil
			},
			updateBranchFn: func(ctx context.Context, b *branch.Branch) error {
				saved = b
				return nil
			},
		}
		svc := branch.NewService(repo)

		resp, err := svc.UpdateBranch(ctx, branchID.String(), branch.UpdateBranchRequest{
			Name:     "Jakarta Selatan",
			IsActive: &inactive,
		})

		assert.NoError(t, err)
		assert.NotNil(t, saved)
		assert.Equal(t, "Jakarta Selatan", saved.Name)
		assert.False(t, saved.IsActive)
		// Alamat tidak dikirim, harus tetap.
		assert.Equal(t, "Jl. Sudirman 1", saved.Address)
		assert.Equal(t, "Jakarta Selatan", resp.Name)
	})

	t.Run("rename to taken name conflicts", func(t *testing.T) {
		repo := &fakeBranchRepository{
			findBranchByIDFn: func(ctx context.Context, id string) (*branch.Branch, error) {
				return stored(), nil
			},
			findBranchByNameFn: func(ctx context.Context, name string) (*branch.Branch, error) {
				return &branch.Branch{ID: uuid.New(), Name: name}, nil
			},
		}
		svc := branch.NewService(repo)

		_, err := svc.UpdateBranch(ctx, branchID.String(), branch.UpdateBranchRequest{
			Name: "Surabaya",
		})

		assert.ErrorIs(t, err, brancherrors.ErrDuplicateBranchName)
	})

	t.Run("same name skips uniqueness check", func(t *testing.T) {
		repo := &fakeBranchRepository{
			findBranchByIDFn: func(ctx context.Context, id string) (*branch.Branch, error) {
				return stored(), nil
			},
			findBranchByNameFn: func(ctx context.Context, name string) (*branch.Branch, error) {
				t.Fatal("name lookup must not be called for unchanged name")
				return nil, nil
			},
		}
		svc := branch.NewService(repo)

		_, err := svc.UpdateBranch(ctx, branchID.String(), branch.UpdateBranchRequest{
			Name: "Jakarta Pusat",
		})

		assert.NoError(t, err)
	})

	t.Run("missing branch", func(t *testing.T) {
		svc := branch.NewService(&fakeBranchRepository{})

		_, err := svc.UpdateBranch(ctx, branchID.String(), branch.UpdateBranchRequest{Name: "X"})

		assert.ErrorIs(t, err, brancherrors.ErrBranchNotFound)
	})
}
