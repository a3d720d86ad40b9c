package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IJTechs/namedu-backend/internal/domain"
	"github.com/IJTechs/namedu-backend/internal/validator"
)

func newTestNewsService() (*NewsService, *fakeNewsRepo, *fakeChannelRepo, *fakeSender) {
	newsRepo := newFakeNewsRepo()
	channelRepo := newFakeChannelRepo()
	sender := newFakeSender(-100500)
	publisher := NewPublisher(newsRepo, channelRepo, senderFactory(sender), "https://namedu.uz")
	svc := NewNewsService(newsRepo, publisher, validator.NewValidator())
	return svc, newsRepo, channelRepo, sender
}

func TestCreateAndPublish(t *testing.T) {
	svc, newsRepo, channelRepo, sender := newTestNewsService()
	bindChannel(channelRepo)

	news := &domain.News{
		Title:    "Yangi maktab ochildi",
		Body:     "Poytaxtda yangi zamonaviy maktab ochildi.",
		Images:   []string{"https://cdn.example/school.jpg"},
		AuthorID: testAuthorID,
	}
	outcome, err := svc.CreateAndPublish(context.Background(), news)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, outcome.Status)
	assert.NotEmpty(t, news.ID)
	assert.Len(t, sender.photos, 1)

	stored, err := newsRepo.GetByID(context.Background(), news.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsPublished())
}

func TestCreateAndPublishRejectsInvalid(t *testing.T) {
	svc, newsRepo, _, sender := newTestNewsService()

	news := &domain.News{
		Title:    "Hi", // below the minimum length
		Body:     "Short body that is long enough.",
		AuthorID: testAuthorID,
	}
	_, err := svc.CreateAndPublish(context.Background(), news)
	require.Error(t, err)
	assert.Empty(t, newsRepo.byID, "invalid article must not be stored")
	assert.Empty(t, sender.captions)
}

func TestSubmitFromDialogue(t *testing.T) {
	svc, newsRepo, channelRepo, _ := newTestNewsService()
	bindChannel(channelRepo)

	session := &domain.Session{
		ChatID: 42,
		Step:   domain.StepConfirm,
		Title:  "Transport tariflari o'zgardi",
		Body:   "Jamoat transporti tariflari yangilandi.",
		Images: []string{"https://cdn.example/bus.jpg"},
	}
	session.SetSocialLink("telegram", "https://t.me/namedu")

	outcome, err := svc.SubmitFromDialogue(context.Background(), testAuthorID, session)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPublished, outcome.Status)

	stored, err := newsRepo.GetByID(context.Background(), outcome.News.ID)
	require.NoError(t, err)
	assert.Equal(t, testAuthorID, stored.AuthorID)
	assert.Equal(t, DefaultReadTime, stored.ReadTime)
	require.Len(t, stored.SocialLinks, 1)
	assert.Equal(t, "telegram", stored.SocialLinks[0].Platform)
}

func TestGetNewsCountsView(t *testing.T) {
	svc, newsRepo, _, _ := newTestNewsService()
	news := seedNews(t, newsRepo)

	got, err := svc.GetNews(context.Background(), news.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Views)

	got, err = svc.GetNews(context.Background(), news.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Views)
}

func TestGetNewsViewBumpIsBestEffort(t *testing.T) {
	svc, newsRepo, _, _ := newTestNewsService()
	news := seedNews(t, newsRepo)
	newsRepo.viewsErr = errors.New("deadlock detected")

	got, err := svc.GetNews(context.Background(), news.ID)
	require.NoError(t, err, "a failed counter bump must not fail the read")
	assert.Equal(t, 0, got.Views)
}

func TestUpdateAndRepublishRejectsInvalid(t *testing.T) {
	svc, newsRepo, _, _ := newTestNewsService()
	news := seedNews(t, newsRepo)

	bad := "Hi"
	_, err := svc.UpdateAndRepublish(context.Background(), news.ID, domain.NewsUpdate{Title: &bad})
	require.Error(t, err)

	stored, getErr := newsRepo.GetByID(context.Background(), news.ID)
	require.NoError(t, getErr)
	assert.NotEqual(t, bad, stored.Title)
}

func TestDeleteAndRetract(t *testing.T) {
	svc, newsRepo, channelRepo, sender := newTestNewsService()
	bindChannel(channelRepo)

	news := &domain.News{
		Title:    "Eskirgan e'lon",
		Body:     "Bu e'lon endi dolzarb emas.",
		Images:   []string{"https://cdn.example/old.jpg"},
		AuthorID: testAuthorID,
	}
	_, err := svc.CreateAndPublish(context.Background(), news)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAndRetract(context.Background(), news.ID))
	assert.Empty(t, newsRepo.byID)
	assert.Len(t, sender.deletedIDs, 1)
}

func TestListNews(t *testing.T) {
	svc, newsRepo, _, _ := newTestNewsService()
	seedNews(t, newsRepo)
	seedNews(t, newsRepo)

	list, err := svc.ListNews(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
