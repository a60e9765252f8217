package rbac

import (
	"errors"
	"regexp"
	"strings"
	"sync"

	"go-backoffice/internal/domain"
	rbacerrors "go-backoffice/internal/rbac/errors"

	"github.com/casbin/casbin/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// builtinRoles adalah baseline kalau tabel custom_roles kosong atau
// role belum pernah dikustomisasi.
var builtinRoles = map[string][]string{
	"Admin": {"*"},
	"HR": {
		"leave", "employee", "attendance", "payroll", "branch", "lead.read",
	},
	"Department Manager": {
		"leave.read", "leave.approve", "employee.read", "attendance.read",
	},
	"Employee": {
		"leave.read",
	},
	"Sales": {
		"lead",
	},
}

// legacyRoleAliases memetakan nama role lama ke role yang masih dipakai.
var legacyRoleAliases = map[string]string{
	"Director": "Admin",
}

var permissionPattern = regexp.MustCompile(`^(\*|[a-z_]+(\.[a-z_]+)?)$`)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
	HasPermission(role, permission string) (bool, error)
	ResolvePermissions(role string) ([]string, error)

	ListRoles() ([]domain.RoleResponse, error)
	GetRole(id string) (domain.RoleResponse, error)
	CreateRole(req domain.CreateRoleRequest) (domain.RoleResponse, error)
	UpdateRole(id string, req domain.UpdateRoleRequest) (domain.RoleResponse, error)
	DeleteRole(id string) error
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	logger   *zap.Logger
	mu       sync.Mutex
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{repo: repo, enforcer: enforcer, logger: l}
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	role := normalizeRole(req.Role)

	if err := s.loadRolePolicyUnlocked(role); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(role, req.Resource, req.Action)
	if err != nil {
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("user_id", req.UserID),
		zap.String("role", role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) HasPermission(role, permission string) (bool, error) {
	resource := permission
	action := "*"
	if idx := strings.IndexByte(permission, '.'); idx >= 0 {
		resource = permission[:idx]
		action = permission[idx+1:]
	}

	return s.Enforce(domain.EnforceRequest{
		Role:     role,
		Resource: resource,
		Action:   action,
	})
}

// ResolvePermissions mencari daftar permission untuk sebuah role:
// baris custom_roles dulu, lalu baseline builtin. Role yang tidak
// dikenal menghasilkan daftar kosong, bukan error, supaya token lama
// dengan role usang hanya kehilangan akses, bukan mematahkan request.
func (s *service) ResolvePermissions(role string) ([]string, error) {
	role = normalizeRole(role)

	row, err := s.repo.FindByName(role)
	if err == nil {
		return []string(row.Permissions), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if perms, ok := builtinRoles[role]; ok {
		return perms, nil
	}

	s.logger.Warn("rbac resolve: unknown role, granting nothing", zap.String("role", role))
	return []string{}, nil
}

func (s *service) loadRolePolicyUnlocked(role string) error {
	s.enforcer.ClearPolicy()

	perms, err := s.ResolvePermissions(role)
	if err != nil {
		return err
	}

	for _, perm := range perms {
		resource := perm
		action := "*"
		if idx := strings.IndexByte(perm, '.'); idx >= 0 {
			resource = perm[:idx]
			action = perm[idx+1:]
		}
		if _, err := s.enforcer.AddPolicy(role, resource, action); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) ListRoles() ([]domain.RoleResponse, error) {
	rows, err := s.repo.ListRoles()
	if err != nil {
		return nil, err
	}

	resp := make([]domain.RoleResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapRoleToResponse(row)
	}
	return resp, nil
}

func (s *service) GetRole(id string) (domain.RoleResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.RoleResponse{}, rbacerrors.ErrInvalidRoleID
	}

	row, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RoleResponse{}, rbacerrors.ErrRoleNotFound
		}
		return domain.RoleResponse{}, err
	}
	return mapRoleToResponse(*row), nil
}

func (s *service) CreateRole(req domain.CreateRoleRequest) (domain.RoleResponse, error) {
	if err := validatePermissions(req.Permissions); err != nil {
		return domain.RoleResponse{}, err
	}

	if _, err := s.repo.FindByName(req.Name); err == nil {
		return domain.RoleResponse{}, rbacerrors.ErrDuplicateRoleName
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.RoleResponse{}, err
	}

	role := &CustomRole{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Permissions: pq.StringArray(req.Permissions),
	}
	if role.Permissions == nil {
		role.Permissions = pq.StringArray{}
	}

	if err := s.repo.Create(role); err != nil {
		return domain.RoleResponse{}, err
	}

	s.logger.Info("create role success",
		zap.String("role_id", role.ID.String()),
		zap.String("name", role.Name),
		zap.Int("permissions", len(role.Permissions)),
	)
	return mapRoleToResponse(*role), nil
}

func (s *service) UpdateRole(id string, req domain.UpdateRoleRequest) (domain.RoleResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.RoleResponse{}, rbacerrors.ErrInvalidRoleID
	}
	if err := validatePermissions(req.Permissions); err != nil {
		return domain.RoleResponse{}, err
	}

	row, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RoleResponse{}, rbacerrors.ErrRoleNotFound
		}
		return domain.RoleResponse{}, err
	}
	if row.IsBuiltin {
		return domain.RoleResponse{}, rbacerrors.ErrBuiltinRoleImmutable
	}

	if req.Name != "" && req.Name != row.Name {
		if _, err := s.repo.FindByName(req.Name); err == nil {
			return domain.RoleResponse{}, rbacerrors.ErrDuplicateRoleName
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RoleResponse{}, err
		}
		row.Name = req.Name
	}
	if req.Description != "" {
		row.Description = req.Description
	}
	if req.Permissions != nil {
		row.Permissions = pq.StringArray(req.Permissions)
	}

	if err := s.repo.Update(row); err != nil {
		return domain.RoleResponse{}, err
	}
	return mapRoleToResponse(*row), nil
}

func (s *service) DeleteRole(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return rbacerrors.ErrInvalidRoleID
	}

	row, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rbacerrors.ErrRoleNotFound
		}
		return err
	}
	if row.IsBuiltin {
		return rbacerrors.ErrBuiltinRoleImmutable
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.logger.Info("delete role success", zap.String("role_id", id), zap.String("name", row.Name))
	return nil
}

func normalizeRole(role string) string {
	if alias, ok := legacyRoleAliases[role]; ok {
		return alias
	}
	return role
}

func validatePermissions(perms []string) error {
	for _, p := range perms {
		if !permissionPattern.MatchString(p) {
			return rbacerrors.ErrInvalidPermission
		}
	}
	return nil
}

func mapRoleToResponse(r CustomRole) domain.RoleResponse {
	return domain.RoleResponse{
		ID:          r.ID.String(),
		Name:        r.Name,
		Description: r.Description,
		Permissions: []string(r.Permissions),
	}
}
