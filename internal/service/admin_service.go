package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/IJTechs/namedu-backend/internal/domain"
	"github.com/IJTechs/namedu-backend/internal/repository"
	"github.com/IJTechs/namedu-backend/internal/validator"
)

// AdminService manages operator accounts. Token issuance and login live
// outside this service; it only provisions accounts with properly hashed
// credentials.
type AdminService struct {
	adminRepo repository.AdminRepository
	validator *validator.Validator
}

// NewAdminService creates an AdminService.
func NewAdminService(adminRepo repository.AdminRepository, v *validator.Validator) *AdminService {
	return &AdminService{adminRepo: adminRepo, validator: v}
}

// Create validates and stores a new admin account. The plaintext password
// is bcrypt-hashed and never stored or returned.
func (s *AdminService) Create(ctx context.Context, admin *domain.Admin, password string) error {
	if err := s.validator.ValidateAdmin(admin, password); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	admin.PasswordHash = string(hash)
	admin.IsActive = true

	return s.adminRepo.Create(ctx, admin)
}

// Get fetches one admin account.
func (s *AdminService) Get(ctx context.Context, id string) (*domain.Admin, error) {
	return s.adminRepo.GetByID(ctx, id)
}

// ListActive returns all active admin accounts.
func (s *AdminService) ListActive(ctx context.Context) ([]domain.Admin, error) {
	return s.adminRepo.ListActive(ctx)
}

// VerifyPassword checks a plaintext password against an admin's stored
// hash.
func (s *AdminService) VerifyPassword(admin *domain.Admin, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) == nil
}
