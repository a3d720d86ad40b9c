package service

import (
	"context"

	"github.com/IJTechs/namedu-backend/internal/domain"
	"github.com/IJTechs/namedu-backend/internal/repository"
	"github.com/IJTechs/namedu-backend/internal/validator"
)

// ChannelService manages channel bindings (bot token + channel per admin).
type ChannelService struct {
	channelRepo repository.ChannelRepository
	validator   *validator.Validator
}

// NewChannelService creates a ChannelService.
func NewChannelService(channelRepo repository.ChannelRepository, v *validator.Validator) *ChannelService {
	return &ChannelService{channelRepo: channelRepo, validator: v}
}

// Create validates and stores a new channel binding.
func (s *ChannelService) Create(ctx context.Context, binding *domain.ChannelBinding) error {
	if err := s.validator.ValidateChannelBinding(binding); err != nil {
		return err
	}
	return s.channelRepo.Create(ctx, binding)
}

// Get fetches one channel binding.
func (s *ChannelService) Get(ctx context.Context, id string) (*domain.ChannelBinding, error) {
	return s.channelRepo.GetByID(ctx, id)
}

// GetByAdmin fetches the binding owned by an admin.
func (s *ChannelService) GetByAdmin(ctx context.Context, adminID string) (*domain.ChannelBinding, error) {
	return s.channelRepo.GetByAdminID(ctx, adminID)
}

// List returns all channel bindings.
func (s *ChannelService) List(ctx context.Context) ([]domain.ChannelBinding, error) {
	return s.channelRepo.List(ctx)
}

// Update validates and overwrites a channel binding.
func (s *ChannelService) Update(ctx context.Context, binding *domain.ChannelBinding) error {
	if err := s.validator.ValidateChannelBinding(binding); err != nil {
		return err
	}
	return s.channelRepo.Update(ctx, binding)
}

// Delete removes a channel binding.
func (s *ChannelService) Delete(ctx context.Context, id string) error {
	return s.channelRepo.Delete(ctx, id)
}
