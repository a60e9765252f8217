package rbac_test

import (
	"testing"

	"go-backoffice/internal/domain"
	"go-backoffice/internal/rbac"
	rbacerrors "go-backoffice/internal/rbac/errors"
	"go-backoffice/internal/rbac/infra"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRoleRepository struct {
	listRolesFn  func() ([]rbac.CustomRole, error)
	findByIDFn   func(id string) (*rbac.CustomRole, error)
	findByNameFn func(name string) (*rbac.CustomRole, error)
	createFn     func(role *rbac.CustomRole) error
	updateFn     func(role *rbac.CustomRole) error
	deleteFn     func(id string) error
}

func (f *fakeRoleRepository) ListRoles() ([]rbac.CustomRole, error) {
	if f.listRolesFn != nil {
		return f.listRolesFn()
	}
	return nil, nil
}

func (f *fakeRoleRepository) FindByID(id string) (*rbac.CustomRole, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRoleRepository) FindByName(name string) (*rbac.CustomRole, error) {
	if f.findByNameFn != nil {
		return f.findByNameFn(name)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRoleRepository) Create(role *rbac.CustomRole) error {
	if f.createFn != nil {
		return f.createFn(role)
	}
	return nil
}

func (f *fakeRoleRepository) Update(role *rbac.CustomRole) error {
	if f.updateFn != nil {
		return f.updateFn(role)
	}
	return nil
}

func (f *fakeRoleRepository) Delete(id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(id)
	}
	return nil
}

func setupRBACServiceTest(t *testing.T) (rbac.Service, *fakeRoleRepository) {
	t.Helper()
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		t.Fatalf("enforcer: %v", err)
	}
	repo := &fakeRoleRepository{}
	return rbac.NewService(repo, enforcer), repo
}

func TestRBACService_Enforce(t *testing.T) {
	t.Run("builtin HR can manage leave", func(t *testing.T) {
		svc, _ := setupRBACServiceTest(t)

		allowed, err := svc.Enforce(domain.EnforceRequest{
			Role: "HR", Resource: "leave", Action: "manage",
		})
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("builtin Employee cannot approve leave", func(t *testing.T) {
		svc, _ := setupRBACServiceTest(t)

		allowed, err := svc.Enforce(domain.EnforceRequest{
			Role: "Employee", Resource: "leave", Action: "approve",
		})
		assert.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("wildcard admin allows everything", func(t *testing.T) {
		svc, _ := setupRBACServiceTest(t)

		allowed, err := svc.Enforce(domain.EnforceRequest{
			Role: "Admin", Resource: "payroll", Action: "approve",
		})
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("legacy Director aliases to Admin", func(t *testing.T) {
		svc, repo := setupRBACServiceTest(t)

		var lookedUp string
		repo.findByNameFn = func(name string) (*rbac.CustomRole, error) {
			lookedUp = name
			return nil, gorm.ErrRecordNotFound
		}

		allowed, err := svc.Enforce(domain.EnforceRequest{
			Role: "Director", Resource: "branch", Action: "manage",
		})
		assert.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, "Admin", lookedUp)
	})

	t.Run("custom role overrides builtin", func(t *testing.T) {
		svc, repo := setupRBACServiceTest(t)

		repo.findByNameFn = func(name string) (*rbac.CustomRole, error) {
			if name == "Employee" {
				return &rbac.CustomRole{
					ID:          uuid.New(),
					Name:        "Employee",
					Permissions: pq.StringArray{"leave.read", "leave.approve"},
				}, nil
			}
			return nil, gorm.ErrRecordNotFound
		}

		allowed, err := svc.Enforce(domain.EnforceRequest{
			Role: "Employee", Resource: "leave", Action: "approve",
		})
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("unknown role gets nothing", func(t *testing.T) {
		svc, _ := setupRBACServiceTest(t)

		allowed, err := svc.Enforce(domain.EnforceRequest{
			Role: "Intern", Resource: "leave", Action: "read",
		})
		assert.NoError(t, err)
		assert.False(t, allowed)
	})
}

func TestRBACService_HasPermission(t *testing.T) {
	svc, _ := setupRBACServiceTest(t)

	ok, err := svc.HasPermission("Department Manager", "leave.approve")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.HasPermission("Department Manager", "payroll.manage")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRBACService_ResolvePermissions(t *testing.T) {
	t.Run("unknown role resolves to empty list", func(t *testing.T) {
		svc, _ := setupRBACServiceTest(t)

		perms, err := svc.ResolvePermissions("Ghost")
		assert.NoError(t, err)
		assert.Empty(t, perms)
	})

	t.Run("custom row wins over builtin", func(t *testing.T) {
		svc, repo := setupRBACServiceTest(t)

		repo.findByNameFn = func(name string) (*rbac.CustomRole, error) {
			return &rbac.CustomRole{
				Name:        name,
				Permissions: pq.StringArray{"lead.read"},
			}, nil
		}

		perms, err := svc.ResolvePermissions("HR")
		assert.NoError(t, err)
		assert.Equal(t, []string{"lead.read"}, perms)
	})
}

func TestRBACService_CreateRole(t *testing.T) {
	t.Run("invalid permission format", func(t *testing.T) {
		svc, _ := setupRBACServiceTest(t)

		_, err := svc.CreateRole(domain.CreateRoleRequest{
			Name:        "Auditor",
			Permissions: []string{"leave.read", "DROP TABLE"},
		})
		assert.ErrorIs(t, err, rbacerrors.ErrInvalidPermission)
	})

	t.Run("duplicate name", func(t *testing.T) {
		svc, repo := setupRBACServiceTest(t)

		repo.findByNameFn = func(name string) (*rbac.CustomRole, error) {
			return &rbac.CustomRole{Name: name}, nil
		}

		_, err := svc.CreateRole(domain.CreateRoleRequest{Name: "Auditor"})
		assert.ErrorIs(t, err, rbacerrors.ErrDuplicateRoleName)
	})

	t.Run("success", func(t *testing.T) {
		svc, repo := setupRBACServiceTest(t)

		var created *rbac.CustomRole
		repo.createFn = func(role *rbac.CustomRole) error {
			created = role
			return nil
		}

		resp, err := svc.CreateRole(domain.CreateRoleRequest{
			Name:        "Auditor",
			Permissions: []string{"leave.read", "payroll.read"},
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, "Auditor", resp.Name)
		assert.Equal(t, []string{"leave.read", "payroll.read"}, resp.Permissions)
	})
}

func TestRBACService_BuiltinRoleImmutable(t *testing.T) {
	id := uuid.New()

	svc, repo := setupRBACServiceTest(t)
	repo.findByIDFn = func(_ string) (*rbac.CustomRole, error) {
		return &rbac.CustomRole{ID: id, Name: "HR", IsBuiltin: true}, nil
	}

	_, err := svc.UpdateRole(id.String(), domain.UpdateRoleRequest{Name: "HR2"})
	assert.ErrorIs(t, err, rbacerrors.ErrBuiltinRoleImmutable)

	err = svc.DeleteRole(id.String())
	assert.ErrorIs(t, err, rbacerrors.ErrBuiltinRoleImmutable)
}
