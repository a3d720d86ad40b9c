package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/IJTechs/namedu-backend/internal/logger"
	"github.com/IJTechs/namedu-backend/internal/media"
	"github.com/IJTechs/namedu-backend/internal/repository"
	"github.com/IJTechs/namedu-backend/internal/telegram"
)

// Manager starts one polling bot per active admin with a channel binding
// and tears them all down on shutdown. Admins without a binding, or whose
// token fails to authenticate, are skipped with a log line; one broken
// token never blocks the rest.
type Manager struct {
	admins     repository.AdminRepository
	channels   repository.ChannelRepository
	uploader   media.Uploader
	submitter  Submitter
	sessionTTL time.Duration

	mu      sync.Mutex
	clients []*telegram.Client
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewManager wires a bot manager.
func NewManager(admins repository.AdminRepository, channels repository.ChannelRepository, uploader media.Uploader, submitter Submitter, sessionTTL time.Duration) *Manager {
	return &Manager{
		admins:     admins,
		channels:   channels,
		uploader:   uploader,
		submitter:  submitter,
		sessionTTL: sessionTTL,
	}
}

// Start launches a polling goroutine per bindable admin. It returns an
// error only when the admin list itself cannot be loaded; per-admin
// failures are logged and skipped.
func (m *Manager) Start(ctx context.Context) error {
	admins, err := m.admins.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list active admins: %w", err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	m.mu.Lock()
	m.cancel = cancel
	m.mu.Unlock()

	started := 0
	for _, admin := range admins {
		binding, err := m.channels.GetByAdminID(ctx, admin.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				logger.Info("admin has no channel binding, skipping bot", "admin", admin.Username)
			} else {
				logger.Error("load channel binding failed, skipping bot", "admin", admin.Username, "error", err)
			}
			continue
		}

		client, err := telegram.NewClient(binding.BotToken)
		if err != nil {
			logger.Error("bot authentication failed, skipping", "admin", admin.Username, "error", err)
			continue
		}

		if err := client.SetCommands(
			tgbotapi.BotCommand{Command: "postnews", Description: "Yangilik qo'shish"},
			tgbotapi.BotCommand{Command: "help", Description: "Yordam olish"},
		); err != nil {
			logger.Warn("set bot commands failed", "bot", client.Username(), "error", err)
		}

		dialogue := NewDialogue(client, m.uploader, m.submitter, NewSessionStore(m.sessionTTL), admin.ID)
		runner := NewRunner(client, dialogue, client.Username())

		m.mu.Lock()
		m.clients = append(m.clients, client)
		m.mu.Unlock()

		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			runner.Run(runCtx)
		}()
		started++
	}

	logger.Info("bot manager started", "bots", started, "admins", len(admins))
	return nil
}

// Stop halts polling on every bot and waits for the runners to drain.
func (m *Manager) Stop() {
	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
	}
	clients := m.clients
	m.mu.Unlock()

	for _, client := range clients {
		client.StopPolling()
	}
	m.wg.Wait()
	logger.Info("bot manager stopped")
}
