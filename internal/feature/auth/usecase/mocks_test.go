package usecase

import (
	"context"

	"lodging_backend/internal/feature/auth/domain/entity"
	"lodging_backend/internal/shared/pagination"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
type mockUserRepository struct {
	CreateFunc        func(ctx context.Context, user *entity.User) error
	UpdateProfileFunc func(ctx context.Context, user *entity.User) error
	EnableFunc        func(ctx context.Context, id uint) error
	FindByEmailFunc   func(ctx context.Context, email string) (*entity.User, error)
	FindByIDFunc      func(ctx context.Context, id uint) (*entity.User, error)
	SearchFunc        func(ctx context.Context, keyword string, p pagination.Pageable) ([]entity.User, int64, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	user.ID = 1
	return nil
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, user *entity.User) error {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) Enable(ctx context.Context, id uint) error {
	if m.EnableFunc != nil {
		return m.EnableFunc(ctx, id)
	}
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default: no such user
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) Search(ctx context.Context, keyword string, p pagination.Pageable) ([]entity.User, int64, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, keyword, p)
	}
	return nil, 0, nil
}

type mockRoleRepository struct {
	FindByNameFunc func(ctx context.Context, name string) (*entity.Role, error)
}

func (m *mockRoleRepository) FindByName(ctx context.Context, name string) (*entity.Role, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return &entity.Role{ID: 2, Name: name}, nil
}

type mockTokenRepository struct {
	CreateFunc      func(ctx context.Context, token *entity.VerificationToken) error
	FindByTokenFunc func(ctx context.Context, token string) (*entity.VerificationToken, error)
	DeleteFunc      func(ctx context.Context, id uint) error
}

func (m *mockTokenRepository) Create(ctx context.Context, token *entity.VerificationToken) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, token)
	}
	return nil
}

func (m *mockTokenRepository) FindByToken(ctx context.Context, token string) (*entity.VerificationToken, error) {
	if m.FindByTokenFunc != nil {
		return m.FindByTokenFunc(ctx, token)
	}
	return nil, ErrTokenNotFound
}

func (m *mockTokenRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// passthroughTx runs the function directly and reports whether it was rolled back.
type passthroughTx struct {
	rolledBack bool
}

func (p *passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	p.rolledBack = err != nil
	return err
}

type mockJWTGenerator struct {
	GenerateTokenFunc func(p entity.Principal) (string, error)
}

func (m *mockJWTGenerator) GenerateToken(p entity.Principal) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(p)
	}
	return "mock-jwt-token", nil
}

type mockMailer struct {
	SendFunc func(ctx context.Context, to, link string) error
	sentTo   []string
	links    []string
}

func (m *mockMailer) SendVerificationMail(ctx context.Context, to, link string) error {
	m.sentTo = append(m.sentTo, to)
	m.links = append(m.links, link)
	if m.SendFunc != nil {
		return m.SendFunc(ctx, to, link)
	}
	return nil
}

type mockMetrics struct {
	signups       int
	verifications []string
}

func (m *mockMetrics) RecordSignup() { m.signups++ }
func (m *mockMetrics) RecordVerification(reason string) {
	m.verifications = append(m.verifications, reason)
}
