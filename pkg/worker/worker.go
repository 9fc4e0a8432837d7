package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ujjwalpandey922/meeting-schedular/pkg/memstore"
)

const (
	defaultInterval = 30 * time.Second
	defaultWindow   = 15 * time.Minute
)

type Notifier interface {
	Notify(ctx context.Context, message, user string) error
}

// Worker reminds users about scheduled meetings shortly before they start.
type Worker struct {
	log      *logrus.Entry
	stores   *memstore.SessionStores
	notifier Notifier
	interval time.Duration
	window   time.Duration
	now      func() time.Time

	notified map[string]struct{}
}

func New(log *logrus.Logger, stores *memstore.SessionStores, notifier Notifier) *Worker {
	return &Worker{
		log:      log.WithField("component", "worker"),
		stores:   stores,
		notifier: notifier,
		interval: defaultInterval,
		window:   defaultWindow,
		now:      time.Now,
		notified: make(map[string]struct{}),
	}
}

func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.remind(ctx)
		}
	}
}

func (w *Worker) remind(ctx context.Context) {
	now := w.now()
	for _, owner := range w.stores.Owners() {
		for _, meeting := range w.stores.For(owner).List() {
			if meeting.IsInstant {
				continue
			}
			if _, done := w.notified[meeting.ID]; done {
				continue
			}
			until := meeting.StartTime.Sub(now)
			if until <= 0 || until > w.window {
				continue
			}
			msg := fmt.Sprintf("Your meeting starts at %s: %s", meeting.StartTime.Format(time.RFC3339), meeting.MeetLink)
			if err := w.notifier.Notify(ctx, msg, owner); err != nil {
				w.log.Errorf("err notifying %s: %v", owner, err)
				continue
			}
			w.notified[meeting.ID] = struct{}{}
		}
	}
}
