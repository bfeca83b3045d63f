package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/LazarenkoA/jvm_process_exporter/logger"
)

type EventKind string

const (
	EventRefreshed   EventKind = "refreshed"
	EventRefreshFail EventKind = "refreshFailed"
	EventTerminated  EventKind = "terminated"
	EventTermFail    EventKind = "terminateFailed"
)

type Event struct {
	Kind      EventKind `json:"kind"`
	Host      string    `json:"host"`
	Time      time.Time `json:"time"`
	PID       string    `json:"pid,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Processes int       `json:"processes,omitempty"`
}

//go:generate mockgen -source=$GOFILE -package=mock_notify -destination=./mock/mockNotify.go
type INotifier interface {
	Notify(ctx context.Context, ev Event) error
}

type Webhook struct {
	url    string
	host   string
	client *http.Client
	logger *zap.SugaredLogger
}

type Nop struct{}

// New если url не задан уведомления никуда не уходят
func New(url string, timeout time.Duration) INotifier {
	if url == "" {
		return Nop{}
	}

	host, _ := os.Hostname()
	return &Webhook{
		url:    url,
		host:   host,
		client: &http.Client{Timeout: timeout},
		logger: logger.DefaultLogger.Named("notify"),
	}
}

func (Nop) Notify(context.Context, Event) error { return nil }

func (w *Webhook) Notify(ctx context.Context, ev Event) error {
	if ev.Host == "" {
		ev.Host = w.host
	}
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return errors.Wrap(err, "marshal error")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "new request error")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		w.logger.With("kind", ev.Kind).Error(errors.Wrap(err, "ошибка отправки уведомления"))
		return errors.Wrapf(err, "произошла ошибка при обращении к %s", w.url)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if !(resp.StatusCode >= http.StatusOK && resp.StatusCode <= http.StatusIMUsed) {
		w.logger.With("kind", ev.Kind, "status", resp.StatusCode).Warn("получатель уведомления вернул ошибку")
		return errors.Errorf("получатель уведомления вернул код возврата %d", resp.StatusCode)
	}

	w.logger.With("kind", ev.Kind).Debug("уведомление отправлено")
	return nil
}
