package services

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/example/scentquiz/internal/catalogsync"
	"github.com/example/scentquiz/internal/logging"
	"github.com/example/scentquiz/internal/models"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramService handles sending notifications to Telegram.
type TelegramService struct {
	botToken    string
	adminChatID string
	apiBase     string
	client      *http.Client
}

// NewTelegramService creates a new TelegramService.
func NewTelegramService(botToken, adminChatID string) *TelegramService {
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
		apiBase:     telegramAPIBase,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends a message to specified chat.
func (s *TelegramService) SendMessage(ctx context.Context, chatID, text string) error {
	log := logging.With("telegram")
	if s.botToken == "" {
		log.Debug().Msg("bot token not configured, skipping message")
		return nil
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, s.botToken)

	body, err := json.Marshal(telegramMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("failed to send message")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Msg("unexpected telegram status")
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}

	return nil
}

// SendToAdmin sends a message to the admin chat.
func (s *TelegramService) SendToAdmin(ctx context.Context, text string) error {
	if s.adminChatID == "" {
		l := logging.With("telegram")
		l.Debug().Msg("admin chat ID not configured, skipping message")
		return nil
	}
	return s.SendMessage(ctx, s.adminChatID, text)
}

var genderNames = map[models.Gender]string{
	models.GenderMale:   "Masculino",
	models.GenderFemale: "Feminino",
	models.GenderUnisex: "Unissex",
}

// NotifyCatalogSync reports a finished catalog sync to the admin chat.
func (s *TelegramService) NotifyCatalogSync(ctx context.Context, summary *catalogsync.Summary) error {
	if s.adminChatID == "" || summary == nil {
		return nil
	}

	var genders strings.Builder
	for _, g := range sortedKeys(summary.ByGender) {
		name, ok := genderNames[g]
		if !ok {
			name = string(g)
		}
		fmt.Fprintf(&genders, "   • %s: %d\n", name, summary.ByGender[g])
	}

	var families strings.Builder
	for _, f := range sortedKeys(summary.ByFamily) {
		fmt.Fprintf(&families, "   • %s: %d\n", html.EscapeString(string(f)), summary.ByFamily[f])
	}

	message := fmt.Sprintf(`<b>✅ CATÁLOGO ATUALIZADO</b>
<b>🔄 Modo:</b> %s
<b>📊 Produtos:</b> %d
<b>♻️ Duplicados ignorados:</b> %d
<b>📈 Por gênero:</b>
%s<b>🌸 Por família olfativa:</b>
%s<b>⏱ Duração:</b> %s
━━━━━━━━━━━━━━━━━━`,
		summary.Mode,
		summary.Total,
		summary.Duplicates,
		genders.String(),
		families.String(),
		summary.Duration.Round(time.Millisecond),
	)

	return s.SendToAdmin(ctx, strings.TrimSpace(message))
}

// NotifyCatalogSyncFailure reports an aborted catalog sync.
func (s *TelegramService) NotifyCatalogSyncFailure(ctx context.Context, mode string, syncErr error) error {
	if s.adminChatID == "" || syncErr == nil {
		return nil
	}

	message := fmt.Sprintf(`<b>❌ FALHA NA SINCRONIZAÇÃO</b>
<b>🔄 Modo:</b> %s
<b>⚠️ Erro:</b> %s
<i>O catálogo anterior foi mantido.</i>`,
		html.EscapeString(mode),
		html.EscapeString(syncErr.Error()),
	)

	return s.SendToAdmin(ctx, message)
}

func sortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
