package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IJTechs/namedu-backend/internal/domain"
)

type fakeTransport struct {
	messages  []string
	keyboards []tgbotapi.InlineKeyboardMarkup
	previews  []string
	edits     int
	callbacks int

	fileURL string
	fileErr error
	sendErr error
}

func (f *fakeTransport) SendMessage(chatID int64, text string) error {
	f.messages = append(f.messages, text)
	return f.sendErr
}

func (f *fakeTransport) SendMessageWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) error {
	f.messages = append(f.messages, text)
	f.keyboards = append(f.keyboards, kb)
	return f.sendErr
}

func (f *fakeTransport) SendPhotoPreview(chatID int64, photoURL, caption string, kb tgbotapi.InlineKeyboardMarkup) error {
	f.previews = append(f.previews, caption)
	f.keyboards = append(f.keyboards, kb)
	return f.sendErr
}

func (f *fakeTransport) EditReplyMarkup(chatID int64, messageID int, kb tgbotapi.InlineKeyboardMarkup) error {
	f.edits++
	return nil
}

func (f *fakeTransport) AnswerCallback(callbackID string) error {
	f.callbacks++
	return nil
}

func (f *fakeTransport) FileURL(fileID string) (string, error) {
	if f.fileErr != nil {
		return "", f.fileErr
	}
	if f.fileURL != "" {
		return f.fileURL, nil
	}
	return "https://files.example/" + fileID, nil
}

func (f *fakeTransport) lastMessage() string {
	if len(f.messages) == 0 {
		return ""
	}
	return f.messages[len(f.messages)-1]
}

type fakeUploader struct {
	hostedURL string
	err       error
	calls     int
}

func (f *fakeUploader) Upload(ctx context.Context, sourceURL string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.hostedURL, nil
}

type fakeSubmitter struct {
	authorID string
	session  *domain.Session
	outcome  *domain.PublishOutcome
	err      error
	calls    int
}

func (f *fakeSubmitter) SubmitFromDialogue(ctx context.Context, authorID string, session *domain.Session) (*domain.PublishOutcome, error) {
	f.calls++
	f.authorID = authorID
	copied := *session
	f.session = &copied
	if f.err != nil {
		return nil, f.err
	}
	if f.outcome != nil {
		return f.outcome, nil
	}
	return &domain.PublishOutcome{Status: domain.StatusPublished}, nil
}

func newTestDialogue() (*Dialogue, *fakeTransport, *fakeUploader, *fakeSubmitter, *SessionStore) {
	transport := &fakeTransport{}
	uploader := &fakeUploader{hostedURL: "https://cdn.example/img-1.jpg"}
	submitter := &fakeSubmitter{}
	sessions := NewSessionStore(30 * time.Minute)
	d := NewDialogue(transport, uploader, submitter, sessions, "admin-1")
	return d, transport, uploader, submitter, sessions
}

func TestDialogueCleanRun(t *testing.T) {
	ctx := context.Background()
	d, transport, uploader, submitter, sessions := newTestDialogue()
	chatID := int64(100)

	require.NoError(t, d.HandleCommand(ctx, chatID, "postnews"))
	assert.Equal(t, msgAskTitle, transport.lastMessage())

	require.NoError(t, d.HandleText(ctx, chatID, "Budget update"))
	assert.Equal(t, msgAskBody, transport.lastMessage())

	require.NoError(t, d.HandleText(ctx, chatID, "The council approved the plan."))
	assert.Equal(t, msgAskImage, transport.lastMessage())

	require.NoError(t, d.HandlePhoto(ctx, chatID, "file-abc"))
	assert.Equal(t, 1, uploader.calls)
	assert.Equal(t, msgAskSocial, transport.lastMessage())

	require.NoError(t, d.HandleCallback(ctx, chatID, 7, "cb-1", actionSkipSocial))
	require.Len(t, transport.previews, 1)
	assert.Contains(t, transport.previews[0], "Budget update")

	require.NoError(t, d.HandleCallback(ctx, chatID, 7, "cb-2", actionConfirmPost))

	assert.Equal(t, 1, submitter.calls)
	assert.Equal(t, "admin-1", submitter.authorID)
	require.NotNil(t, submitter.session)
	assert.Equal(t, "Budget update", submitter.session.Title)
	assert.Equal(t, []string{"https://cdn.example/img-1.jpg"}, submitter.session.Images)
	assert.Empty(t, submitter.session.SocialLinks)

	assert.Equal(t, msgPosted, transport.lastMessage())
	assert.Equal(t, 1, transport.edits)
	_, ok := sessions.Get(chatID)
	assert.False(t, ok, "session should be gone after submit")
}

func TestDialogueCancel(t *testing.T) {
	ctx := context.Background()
	d, transport, _, submitter, sessions := newTestDialogue()
	chatID := int64(101)

	require.NoError(t, d.HandleCommand(ctx, chatID, "postnews"))
	require.NoError(t, d.HandleText(ctx, chatID, "Title"))
	require.NoError(t, d.HandleText(ctx, chatID, "Body"))
	require.NoError(t, d.HandlePhoto(ctx, chatID, "file-abc"))
	require.NoError(t, d.HandleCallback(ctx, chatID, 7, "cb-1", actionFinishSocial))
	require.NoError(t, d.HandleCallback(ctx, chatID, 7, "cb-2", actionCancelPost))

	assert.Zero(t, submitter.calls, "cancel must not submit")
	assert.Equal(t, msgCanceled, transport.lastMessage())
	_, ok := sessions.Get(chatID)
	assert.False(t, ok)
}

func TestDialogueUploadFailureKeepsSession(t *testing.T) {
	ctx := context.Background()
	d, transport, uploader, _, sessions := newTestDialogue()
	uploader.err = errors.New("cloudinary unreachable")
	chatID := int64(102)

	require.NoError(t, d.HandleCommand(ctx, chatID, "postnews"))
	require.NoError(t, d.HandleText(ctx, chatID, "Title"))
	require.NoError(t, d.HandleText(ctx, chatID, "Body"))
	require.NoError(t, d.HandlePhoto(ctx, chatID, "file-abc"))

	assert.Equal(t, msgUploadError, transport.lastMessage())
	session, ok := sessions.Get(chatID)
	require.True(t, ok, "session survives a failed upload")
	assert.Equal(t, domain.StepImage, session.Step)
	assert.Empty(t, session.Images)

	// Retry succeeds and the flow continues.
	uploader.err = nil
	require.NoError(t, d.HandlePhoto(ctx, chatID, "file-abc"))
	assert.Equal(t, domain.StepSocial, session.Step)
	assert.Len(t, session.Images, 1)
}

func TestDialogueAlbumPhotosJoinArticle(t *testing.T) {
	ctx := context.Background()
	d, _, _, _, sessions := newTestDialogue()
	chatID := int64(103)

	require.NoError(t, d.HandleCommand(ctx, chatID, "postnews"))
	require.NoError(t, d.HandleText(ctx, chatID, "Title"))
	require.NoError(t, d.HandleText(ctx, chatID, "Body"))
	require.NoError(t, d.HandlePhoto(ctx, chatID, "file-1"))
	require.NoError(t, d.HandlePhoto(ctx, chatID, "file-2"))
	require.NoError(t, d.HandlePhoto(ctx, chatID, "file-3"))

	session, ok := sessions.Get(chatID)
	require.True(t, ok)
	assert.Equal(t, domain.StepSocial, session.Step)
	assert.Len(t, session.Images, 3)
}

func TestDialogueSocialLinkFlow(t *testing.T) {
	ctx := context.Background()
	d, transport, _, submitter, _ := newTestDialogue()
	chatID := int64(104)

	require.NoError(t, d.HandleCommand(ctx, chatID, "postnews"))
	require.NoError(t, d.HandleText(ctx, chatID, "Title"))
	require.NoError(t, d.HandleText(ctx, chatID, "Body"))
	require.NoError(t, d.HandlePhoto(ctx, chatID, "file-1"))

	require.NoError(t, d.HandleCallback(ctx, chatID, 7, "cb-1", actionAddPrefix+"telegram"))
	assert.Equal(t, askPlatformURL("telegram"), transport.lastMessage())

	require.NoError(t, d.HandleText(ctx, chatID, "https://t.me/namedu"))
	assert.Equal(t, msgAskMore, transport.lastMessage())

	require.NoError(t, d.HandleCallback(ctx, chatID, 7, "cb-2", actionFinishSocial))
	require.NoError(t, d.HandleCallback(ctx, chatID, 7, "cb-3", actionConfirmPost))

	require.NotNil(t, submitter.session)
	require.Len(t, submitter.session.SocialLinks, 1)
	assert.Equal(t, "telegram", submitter.session.SocialLinks[0].Platform)
	assert.Equal(t, "https://t.me/namedu", submitter.session.SocialLinks[0].URL)
}

func TestDialogueInputOutsideSessionIsNoise(t *testing.T) {
	ctx := context.Background()
	d, transport, uploader, submitter, _ := newTestDialogue()

	require.NoError(t, d.HandleText(ctx, 105, "hello"))
	require.NoError(t, d.HandlePhoto(ctx, 105, "file-x"))

	assert.Empty(t, transport.messages, "stray input gets no reply")
	assert.Zero(t, uploader.calls)
	assert.Zero(t, submitter.calls)
}

func TestDialogueStartResetsSession(t *testing.T) {
	ctx := context.Background()
	d, _, _, _, sessions := newTestDialogue()
	chatID := int64(106)

	require.NoError(t, d.HandleCommand(ctx, chatID, "postnews"))
	require.NoError(t, d.HandleText(ctx, chatID, "Half done"))
	require.NoError(t, d.HandleCommand(ctx, chatID, "start"))

	_, ok := sessions.Get(chatID)
	assert.False(t, ok, "/start discards the dialogue")
}

func TestDialogueConfirmIncomplete(t *testing.T) {
	ctx := context.Background()
	d, transport, _, submitter, sessions := newTestDialogue()
	chatID := int64(107)

	session := sessions.Begin(chatID)
	session.Title = "Title"
	session.Step = domain.StepConfirm

	require.NoError(t, d.HandleCallback(ctx, chatID, 7, "cb-1", actionConfirmPost))
	assert.Zero(t, submitter.calls)
	assert.Equal(t, msgIncomplete, transport.lastMessage())
	_, ok := sessions.Get(chatID)
	assert.False(t, ok)
}

func TestDialogueDegradedPublishNotice(t *testing.T) {
	ctx := context.Background()
	d, transport, _, submitter, sessions := newTestDialogue()
	submitter.outcome = &domain.PublishOutcome{Status: domain.StatusFailedChannelSend}
	chatID := int64(108)

	session := sessions.Begin(chatID)
	session.Title = "Title"
	session.Body = "Body"
	session.Images = []string{"https://cdn.example/a.jpg"}
	session.Step = domain.StepConfirm

	require.NoError(t, d.HandleCallback(ctx, chatID, 7, "cb-1", actionConfirmPost))
	assert.Equal(t, msgPostedNoChannel, transport.lastMessage())
}

func TestDialogueUnknownStepDestroysSession(t *testing.T) {
	ctx := context.Background()
	d, transport, _, _, sessions := newTestDialogue()
	chatID := int64(109)

	session := sessions.Begin(chatID)
	session.Step = domain.Step(99)

	require.NoError(t, d.HandleText(ctx, chatID, "anything"))
	assert.Equal(t, msgErrorRestart, transport.lastMessage())
	_, ok := sessions.Get(chatID)
	assert.False(t, ok)
}

func TestSessionStoreExpiry(t *testing.T) {
	store := NewSessionStore(time.Minute)
	current := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return current }

	store.Begin(1)
	_, ok := store.Get(1)
	assert.True(t, ok)

	current = current.Add(2 * time.Minute)
	_, ok = store.Get(1)
	assert.False(t, ok, "idle session expires")
	assert.Zero(t, store.Len())
}

func TestSessionStoreBeginOverwrites(t *testing.T) {
	store := NewSessionStore(0)
	first := store.Begin(1)
	first.Title = "old"

	second := store.Begin(1)
	assert.Empty(t, second.Title)
	assert.Equal(t, domain.StepTitle, second.Step)
	assert.Equal(t, 1, store.Len())
}

func TestSocialKeyboardOmitsCollectedPlatforms(t *testing.T) {
	session := &domain.Session{ChatID: 1, Step: domain.StepSocial}
	session.SetSocialLink("telegram", "https://t.me/x")

	kb := socialKeyboard(session)
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			require.NotNil(t, btn.CallbackData)
			assert.NotEqual(t, actionAddPrefix+"telegram", *btn.CallbackData)
		}
	}
	// With one link collected the bottom button finishes instead of skipping.
	last := kb.InlineKeyboard[len(kb.InlineKeyboard)-1]
	assert.Equal(t, actionFinishSocial, *last[0].CallbackData)
}
