package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/IJTechs/namedu-backend/internal/domain"
	"github.com/IJTechs/namedu-backend/internal/repository"
	"github.com/IJTechs/namedu-backend/internal/telegram"
)

// fakeNewsRepo is an in-memory NewsRepository that enforces the same
// paired channel-state rules as the Postgres implementation.
type fakeNewsRepo struct {
	byID map[string]*domain.News

	createErr error
	updateErr error
	setErr    error
	viewsErr  error
}

func newFakeNewsRepo() *fakeNewsRepo {
	return &fakeNewsRepo{byID: make(map[string]*domain.News)}
}

func (r *fakeNewsRepo) Create(ctx context.Context, news *domain.News) error {
	if r.createErr != nil {
		return r.createErr
	}
	if news.ID == "" {
		news.ID = uuid.NewString()
	}
	news.CreatedAt = time.Now()
	news.UpdatedAt = news.CreatedAt
	copied := *news
	r.byID[news.ID] = &copied
	return nil
}

func (r *fakeNewsRepo) GetByID(ctx context.Context, id string) (*domain.News, error) {
	news, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *news
	return &copied, nil
}

func (r *fakeNewsRepo) List(ctx context.Context) ([]domain.News, error) {
	out := make([]domain.News, 0, len(r.byID))
	for _, n := range r.byID {
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeNewsRepo) Update(ctx context.Context, id string, upd domain.NewsUpdate) (*domain.News, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	news, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if upd.Title != nil {
		news.Title = *upd.Title
	}
	if upd.Body != nil {
		news.Body = *upd.Body
	}
	if upd.Images != nil {
		news.Images = upd.Images
	}
	if upd.ReadTime != nil {
		news.ReadTime = *upd.ReadTime
	}
	news.UpdatedAt = time.Now()
	copied := *news
	// The channel pair is owned by Set/ClearChannelMessages only.
	copied.TelegramMessageIDs = nil
	copied.TelegramChatID = nil
	return &copied, nil
}

func (r *fakeNewsRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeNewsRepo) IncrementViews(ctx context.Context, id string) error {
	if r.viewsErr != nil {
		return r.viewsErr
	}
	news, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	news.Views++
	return nil
}

func (r *fakeNewsRepo) SetChannelMessages(ctx context.Context, id string, messageIDs []int, chatID int64) error {
	if r.setErr != nil {
		return r.setErr
	}
	if len(messageIDs) == 0 {
		return errors.New("empty message id set")
	}
	news, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	news.TelegramMessageIDs = append([]int(nil), messageIDs...)
	news.TelegramChatID = &chatID
	return nil
}

func (r *fakeNewsRepo) ClearChannelMessages(ctx context.Context, id string) error {
	news, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	news.TelegramMessageIDs = nil
	news.TelegramChatID = nil
	return nil
}

// fakeChannelRepo serves at most one binding per admin.
type fakeChannelRepo struct {
	byAdmin map[string]*domain.ChannelBinding
}

func newFakeChannelRepo() *fakeChannelRepo {
	return &fakeChannelRepo{byAdmin: make(map[string]*domain.ChannelBinding)}
}

func (r *fakeChannelRepo) Create(ctx context.Context, b *domain.ChannelBinding) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	r.byAdmin[b.AdminID] = b
	return nil
}

func (r *fakeChannelRepo) GetByID(ctx context.Context, id string) (*domain.ChannelBinding, error) {
	for _, b := range r.byAdmin {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeChannelRepo) GetByAdminID(ctx context.Context, adminID string) (*domain.ChannelBinding, error) {
	b, ok := r.byAdmin[adminID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return b, nil
}

func (r *fakeChannelRepo) List(ctx context.Context) ([]domain.ChannelBinding, error) {
	out := make([]domain.ChannelBinding, 0, len(r.byAdmin))
	for _, b := range r.byAdmin {
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeChannelRepo) Update(ctx context.Context, b *domain.ChannelBinding) error {
	r.byAdmin[b.AdminID] = b
	return nil
}

func (r *fakeChannelRepo) Delete(ctx context.Context, id string) error {
	for admin, b := range r.byAdmin {
		if b.ID == id {
			delete(r.byAdmin, admin)
			return nil
		}
	}
	return repository.ErrNotFound
}

// fakeAdminRepo is an in-memory AdminRepository.
type fakeAdminRepo struct {
	byID map[string]*domain.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{byID: make(map[string]*domain.Admin)}
}

func (r *fakeAdminRepo) Create(ctx context.Context, admin *domain.Admin) error {
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	admin.CreatedAt = time.Now()
	admin.UpdatedAt = admin.CreatedAt
	copied := *admin
	r.byID[admin.ID] = &copied
	return nil
}

func (r *fakeAdminRepo) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	admin, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *admin
	return &copied, nil
}

func (r *fakeAdminRepo) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	for _, a := range r.byID {
		if a.Username == username {
			copied := *a
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeAdminRepo) ListActive(ctx context.Context) ([]domain.Admin, error) {
	var out []domain.Admin
	for _, a := range r.byID {
		if a.IsActive {
			out = append(out, *a)
		}
	}
	return out, nil
}

// fakeSender records channel sends and hands out increasing message ids.
type fakeSender struct {
	chatID int64
	nextID int

	sendErr   error
	deleteErr error

	captions   []string
	photos     []string
	groups     [][]string
	deletedIDs []int
}

func newFakeSender(chatID int64) *fakeSender {
	return &fakeSender{chatID: chatID, nextID: 1000}
}

func (s *fakeSender) next() telegram.SentMessage {
	s.nextID++
	return telegram.SentMessage{MessageID: s.nextID, ChatID: s.chatID}
}

func (s *fakeSender) SendChannelMessage(ctx context.Context, channel, text string) (telegram.SentMessage, error) {
	if s.sendErr != nil {
		return telegram.SentMessage{}, s.sendErr
	}
	s.captions = append(s.captions, text)
	return s.next(), nil
}

func (s *fakeSender) SendChannelPhoto(ctx context.Context, channel, photoURL, caption string) (telegram.SentMessage, error) {
	if s.sendErr != nil {
		return telegram.SentMessage{}, s.sendErr
	}
	s.captions = append(s.captions, caption)
	s.photos = append(s.photos, photoURL)
	return s.next(), nil
}

func (s *fakeSender) SendChannelMediaGroup(ctx context.Context, channel string, photoURLs []string, caption string) ([]telegram.SentMessage, error) {
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	s.captions = append(s.captions, caption)
	s.groups = append(s.groups, photoURLs)
	out := make([]telegram.SentMessage, len(photoURLs))
	for i := range photoURLs {
		out[i] = s.next()
	}
	return out, nil
}

func (s *fakeSender) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deletedIDs = append(s.deletedIDs, messageID)
	return nil
}

func senderFactory(s *fakeSender) SenderFactory {
	return func(botToken string) (ChannelSender, error) { return s, nil }
}
