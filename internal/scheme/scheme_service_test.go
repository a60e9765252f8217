package scheme_test

import (
	"context"
	"database/sql"
	"testing"

	"go-backoffice/internal/scheme"
	schemeerrors "go-backoffice/internal/scheme/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeSchemeRepository struct {
	withTxFn           func(tx *sql.Tx) scheme.Repository
	createFn           func(ctx context.Context, s *scheme.LeaveScheme) error
	findAllFn          func(ctx context.Context) ([]scheme.LeaveScheme, error)
	findByIDFn         func(ctx context.Context, id string) (*scheme.LeaveScheme, error)
	findByNameFn       func(ctx context.Context, name string) (*scheme.LeaveScheme, error)
	updateFn           func(ctx context.Context, s *scheme.LeaveScheme) error
	deleteFn           func(ctx context.Context, id string) error
	countAttachmentsFn func(ctx context.Context, schemeID string) (int64, error)
	createAttachmentFn func(ctx context.Context, a *scheme.SchemeLeaveType) error
	findAttachmentFn   func(ctx context.Context, schemeID, leaveTypeID string) (*scheme.SchemeLeaveType, error)
	deleteAttachmentFn func(ctx context.Context, schemeID, leaveTypeID string) (int64, error)
}

func (f *fakeSchemeRepository) WithTx(tx *sql.Tx) scheme.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeSchemeRepository) Create(ctx context.Context, s *scheme.LeaveScheme) error {
	if f.createFn != nil {
		return f.createFn(ctx, s)
	}
	return nil
}

func (f *fakeSchemeRepository) FindAll(ctx context.Context) ([]scheme.LeaveScheme, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeSchemeRepository) FindByID(ctx context.Context, id string) (*scheme.LeaveScheme, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSchemeRepository) FindByName(ctx context.Context, name string) (*scheme.LeaveScheme, error) {
	if f.findByNameFn != nil {
		return f.findByNameFn(ctx, name)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSchemeRepository) Update(ctx context.Context, s *scheme.LeaveScheme) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, s)
	}
	return nil
}

func (f *fakeSchemeRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeSchemeRepository) CountAttachments(ctx context.Context, schemeID string) (int64, error) {
	if f.countAttachmentsFn != nil {
		return f.countAttachmentsFn(ctx, schemeID)
	}
	return 0, nil
}

func (f *fakeSchemeRepository) CreateAttachment(ctx context.Context, a *scheme.SchemeLeaveType) error {
	if f.createAttachmentFn != nil {
		return f.createAttachmentFn(ctx, a)
	}
	return nil
}

func (f *fakeSchemeRepository) FindAttachment(ctx context.Context, schemeID, leaveTypeID string) (*scheme.SchemeLeaveType, error) {
	if f.findAttachmentFn != nil {
		return f.findAttachmentFn(ctx, schemeID, leaveTypeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSchemeRepository) DeleteAttachment(ctx context.Context, schemeID, leaveTypeID string) (int64, error) {
	if f.deleteAttachmentFn != nil {
		return f.deleteAttachmentFn(ctx, schemeID, leaveTypeID)
	}
	return 0, nil
}

func setupSchemeServiceTest(t *testing.T) (scheme.Service, *fakeSchemeRepository) {
	t.Helper()
	repo := &fakeSchemeRepository{}
	return scheme.NewService(nil, repo), repo
}

func TestSchemeService_Create(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()

	t.Run("success defaults to active", func(t *testing.T) {
		svc, repo := setupSchemeServiceTest(t)

		var created *scheme.LeaveScheme
		repo.createFn = func(ctx context.Context, s *scheme.LeaveScheme) error {
			created = s
			return nil
		}

		resp, err := svc.Create(ctx, actorID, scheme.CreateSchemeRequest{Name: "Standard"})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.True(t, created.IsActive)
		assert.Equal(t, "Standard", resp.Name)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		svc, repo := setupSchemeServiceTest(t)

		repo.findByNameFn = func(ctx context.Context, name string) (*scheme.LeaveScheme, error) {
			return &scheme.LeaveScheme{ID: uuid.New(), Name: name}, nil
		}

		_, err := svc.Create(ctx, actorID, scheme.CreateSchemeRequest{Name: "Standard"})
		assert.ErrorIs(t, err, schemeerrors.ErrDuplicateName)
	})
}

func TestSchemeService_AttachLeaveType(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	schemeID := uuid.New()
	leaveTypeID := uuid.New()

	t.Run("attach then re-attach same pair conflicts", func(t *testing.T) {
		svc, repo := setupSchemeServiceTest(t)

		repo.findByIDFn = func(ctx context.Context, id string) (*scheme.LeaveScheme, error) {
			return &scheme.LeaveScheme{ID: schemeID, Name: "Standard", IsActive: true}, nil
		}

		var attached *scheme.SchemeLeaveType
		repo.createAttachmentFn = func(ctx context.Context, a *scheme.SchemeLeaveType) error {
			attached = a
			return nil
		}

		_, err := svc.AttachLeaveType(ctx, actorID, schemeID.String(), scheme.AttachLeaveTypeRequest{
			LeaveTypeID: leaveTypeID.String(),
			DaysAllowed: 12,
		})
		assert.NoError(t, err)
		assert.NotNil(t, attached)
		assert.Equal(t, 12, attached.DaysAllowed)
		assert.True(t, attached.IsPaid)

		// Pasangan yang sama kedua kali harus konflik, bukan duplikat baris.
		repo.findAttachmentFn = func(ctx context.Context, sid, ltid string) (*scheme.SchemeLeaveType, error) {
			return attached, nil
		}

		_, err = svc.AttachLeaveType(ctx, actorID, schemeID.String(), scheme.AttachLeaveTypeRequest{
			LeaveTypeID: leaveTypeID.String(),
			DaysAllowed: 12,
		})
		assert.ErrorIs(t, err, schemeerrors.ErrDuplicateAttachment)
	})

	t.Run("missing scheme", func(t *testing.T) {
		svc, _ := setupSchemeServiceTest(t)

		_, err := svc.AttachLeaveType(ctx, actorID, schemeID.String(), scheme.AttachLeaveTypeRequest{
			LeaveTypeID: leaveTypeID.String(),
			DaysAllowed: 5,
		})
		assert.ErrorIs(t, err, schemeerrors.ErrSchemeNotFound)
	})

	t.Run("unpaid attachment", func(t *testing.T) {
		svc, repo := setupSchemeServiceTest(t)

		repo.findByIDFn = func(ctx context.Context, id string) (*scheme.LeaveScheme, error) {
			return &scheme.LeaveScheme{ID: schemeID, Name: "Standard", IsActive: true}, nil
		}

		var attached *scheme.SchemeLeaveType
		repo.createAttachmentFn = func(ctx context.Context, a *scheme.SchemeLeaveType) error {
			attached = a
			return nil
		}

		unpaid := false
		_, err := svc.AttachLeaveType(ctx, actorID, schemeID.String(), scheme.AttachLeaveTypeRequest{
			LeaveTypeID: leaveTypeID.String(),
			DaysAllowed: 30,
			IsPaid:      &unpaid,
		})

		assert.NoError(t, err)
		assert.False(t, attached.IsPaid)
	})
}

func TestSchemeService_DetachLeaveType(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	schemeID := uuid.New().String()
	leaveTypeID := uuid.New().String()

	t.Run("detach removes pair", func(t *testing.T) {
		svc, repo := setupSchemeServiceTest(t)

		repo.deleteAttachmentFn = func(ctx context.Context, sid, ltid string) (int64, error) {
			return 1, nil
		}

		assert.NoError(t, svc.DetachLeaveType(ctx, actorID, schemeID, leaveTypeID))
	})

	t.Run("second detach reports missing attachment", func(t *testing.T) {
		svc, repo := setupSchemeServiceTest(t)

		repo.deleteAttachmentFn = func(ctx context.Context, sid, ltid string) (int64, error) {
			return 0, nil
		}

		err := svc.DetachLeaveType(ctx, actorID, schemeID, leaveTypeID)
		assert.ErrorIs(t, err, schemeerrors.ErrAttachmentNotFound)
	})
}

func TestSchemeService_Delete(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	schemeID := uuid.New()

	t.Run("scheme with attachments cannot be deleted", func(t *testing.T) {
		svc, repo := setupSchemeServiceTest(t)

		repo.findByIDFn = func(ctx context.Context, id string) (*scheme.LeaveScheme, error) {
			return &scheme.LeaveScheme{ID: schemeID, Name: "Standard"}, nil
		}
		repo.countAttachmentsFn = func(ctx context.Context, sid string) (int64, error) {
			return 2, nil
		}

		err := svc.Delete(ctx, actorID, schemeID.String())
		assert.ErrorIs(t, err, schemeerrors.ErrSchemeInUse)
	})

	t.Run("empty scheme deleted", func(t *testing.T) {
		svc, repo := setupSchemeServiceTest(t)

		repo.findByIDFn = func(ctx context.Context, id string) (*scheme.LeaveScheme, error) {
			return &scheme.LeaveScheme{ID: schemeID, Name: "Standard"}, nil
		}

		deleted := false
		repo.deleteFn = func(ctx context.Context, id string) error {
			deleted = true
			return nil
		}

		assert.NoError(t, svc.Delete(ctx, actorID, schemeID.String()))
		assert.True(t, deleted)
	})
}
