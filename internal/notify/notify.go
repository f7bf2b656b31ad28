// Package notify отправляет техникам уведомления о назначениях.
// Доставка не гарантируется: ошибки только логируются и не откатывают назначение.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

//go:generate mockgen -source=notify.go -destination=mock/mock_notify.go

// Notice — что произошло: техник назначен на работу с ролью.
type Notice struct {
	JobID        uuid.UUID
	TechnicianID uuid.UUID
	Role         string
}

type Notifier interface {
	NotifyAssignment(ctx context.Context, n Notice) error
}

// LogNotifier только пишет в лог. Используется, когда SMTP не настроен.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (l *LogNotifier) NotifyAssignment(_ context.Context, n Notice) error {
	l.log.Info().
		Str("job_id", n.JobID.String()).
		Str("technician_id", n.TechnicianID.String()).
		Str("role", n.Role).
		Msg("assignment notice (smtp disabled)")
	return nil
}

// Dispatcher отправляет уведомления фиксированным числом воркеров из
// ограниченной очереди. Переполненная очередь отбрасывает уведомление.
type Dispatcher struct {
	notifier Notifier
	log      zerolog.Logger
	timeout  time.Duration
	queue    chan Notice

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// На каждого воркера приходится столько мест в очереди.
const queuePerWorker = 64

func NewDispatcher(n Notifier, log zerolog.Logger, timeout time.Duration, workers int) *Dispatcher {
	if workers <= 0 {
		workers = 4
	}
	return newDispatcher(n, log, timeout, workers, workers*queuePerWorker)
}

func newDispatcher(n Notifier, log zerolog.Logger, timeout time.Duration, workers, queue int) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	d := &Dispatcher{
		notifier: n,
		log:      log,
		timeout:  timeout,
		queue:    make(chan Notice, queue),
	}
	d.wg.Add(workers)
	for range workers {
		go d.work()
	}
	return d
}

// Dispatch не ждёт отправки. После Close уведомления отбрасываются.
func (d *Dispatcher) Dispatch(n Notice) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		d.log.Warn().Str("job_id", n.JobID.String()).Msg("dispatcher closed, notice dropped")
		return
	}
	select {
	case d.queue <- n:
	default:
		d.log.Warn().
			Str("job_id", n.JobID.String()).
			Str("technician_id", n.TechnicianID.String()).
			Msg("notice queue full, notice dropped")
	}
}

func (d *Dispatcher) work() {
	defer d.wg.Done()
	for n := range d.queue {
		d.send(n)
	}
}

func (d *Dispatcher) send(n Notice) {
	// Контекст запроса сюда не передаётся: отправка переживает ответ клиенту.
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.notifier.NotifyAssignment(ctx, n); err != nil {
		d.log.Warn().Err(err).
			Str("job_id", n.JobID.String()).
			Str("technician_id", n.TechnicianID.String()).
			Msg("assignment notice failed")
	}
}

// Close дожидается отправки всего, что уже в очереди. Повторный вызов безопасен.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	d.wg.Wait()
}
