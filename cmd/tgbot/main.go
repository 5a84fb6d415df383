package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"HDDPull/internal/calc/hdd"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type botConfig struct {
	Token       string        `env:"TOKEN_BOT,required,notEmpty"`
	PollTimeout int           `env:"POLL_TIMEOUT" envDefault:"20"`
	Backoff     time.Duration `env:"POLL_BACKOFF" envDefault:"2s"`
	Engine      hdd.Constants `envPrefix:"HDD_"`
}

type Update struct {
	UpdateID int      `json:"update_id"`
	Message  *Message `json:"message"`
}

type Message struct {
	MessageID int    `json:"message_id"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

type Chat struct {
	ID int64 `json:"id"`
}

type UpdateResponse struct {
	OK          bool     `json:"ok"`
	Description string   `json:"description"`
	Result      []Update `json:"result"`
}

type bot struct {
	token   string
	timeout int
	client  *http.Client
	log     *zap.Logger
}

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal("load .env", zap.Error(err))
	}
	cfg := botConfig{Engine: hdd.DefaultConstants()}
	if err := env.Parse(&cfg); err != nil {
		log.Fatal("parse config", zap.Error(err))
	}
	calc, err := hdd.NewCalculator(cfg.Engine)
	if err != nil {
		log.Fatal("engine constants", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := &bot{
		token:   cfg.Token,
		timeout: cfg.PollTimeout,
		client:  &http.Client{Timeout: time.Duration(cfg.PollTimeout+10) * time.Second},
		log:     log,
	}
	log.Info("bot started")

	offset := 0
	for ctx.Err() == nil {
		updates, err := b.getUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			log.Warn("getUpdates", zap.Error(err))
			time.Sleep(cfg.Backoff)
			continue
		}
		for _, u := range updates {
			offset = u.UpdateID + 1
			if u.Message == nil || !strings.HasPrefix(u.Message.Text, "/") {
				continue
			}
			text := reply(calc, u.Message.Text)
			if err := b.sendMessage(ctx, u.Message.Chat.ID, text); err != nil {
				log.Warn("sendMessage", zap.Int64("chat_id", u.Message.Chat.ID), zap.Error(err))
			}
		}
	}
	log.Info("bot stopped")
}

func (b *bot) getUpdates(ctx context.Context, offset int) ([]Update, error) {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/getUpdates?timeout=%d&offset=%d", b.token, b.timeout, offset)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	var out UpdateResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	if !out.OK {
		return nil, fmt.Errorf("telegram: %s", out.Description)
	}
	return out.Result, nil
}

func (b *bot) sendMessage(ctx context.Context, chatID int64, text string) error {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", b.token)
	payload, err := json.Marshal(map[string]any{"chat_id": chatID, "text": text})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(payload)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := b.client.Do(req)
	if err != nil {
		return err
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram: status %d", res.StatusCode)
	}
	return nil
}
