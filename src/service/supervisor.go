package service

import (
	"context"
	"sync"
	"time"

	"github.com/joshuakessell/club-ops-deploy-sub001/src/rabbitmq"
	"github.com/joshuakessell/club-ops-deploy-sub001/src/schemas"

	"github.com/sirupsen/logrus"
)

// SnapshotFetcher is the slice of the backend client the supervisor needs
// for the polling fallback and the inventory refresh.
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context) (*schemas.SessionSnapshot, bool, error)
	WaitlistInfo(ctx context.Context) (*schemas.WaitlistInfo, error)
}

// SupervisorConfig carries the supervisor's timing knobs.
type SupervisorConfig struct {
	GracePeriod      time.Duration
	PollInterval     time.Duration
	ReconnectDelay   time.Duration
	InventoryRefresh time.Duration
}

// Supervisor owns the push-channel lifecycle and the delayed polling
// fallback. While the channel is down, snapshots are polled through the same
// reconciler path as push updates; on reconnect the fallback is torn down so
// an update is never delivered twice. All timers live here and cancel
// idempotently.
type Supervisor struct {
	cfg        SupervisorConfig
	source     rabbitmq.Source
	fetcher    SnapshotFetcher
	reconciler *Reconciler
	state      *State
	logger     *logrus.Logger

	mu         sync.Mutex
	graceTimer *time.Timer
	// fallbackGen invalidates a grace timer that already fired but has not
	// taken the lock yet when cancelFallback runs in between.
	fallbackGen uint64
	pollStop    chan struct{}
	polling     bool
	started     bool
	stopped     bool

	quit chan struct{}
	wg   sync.WaitGroup
}

func NewSupervisor(cfg SupervisorConfig, source rabbitmq.Source, fetcher SnapshotFetcher, reconciler *Reconciler, state *State, log *logrus.Logger) *Supervisor {
	return &Supervisor{
		cfg:        cfg,
		source:     source,
		fetcher:    fetcher,
		reconciler: reconciler,
		state:      state,
		logger:     log,
		quit:       make(chan struct{}),
	}
}

// Start launches the push loop and the inventory refresh loop.
func (s *Supervisor) Start() {
	s.mu.Lock()
	if s.started || s.stopped {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	s.wg.Add(2)
	go s.runPush()
	go s.runInventory()
}

// Stop tears everything down: subscription, fallback timers, loops. Safe to
// call more than once.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()

	close(s.quit)
	s.cancelFallback()
	s.source.Close()
	s.wg.Wait()
}

func (s *Supervisor) runPush() {
	defer s.wg.Done()

	for {
		select {
		case <-s.quit:
			return
		default:
		}

		sub, err := s.source.Subscribe()
		if err != nil {
			s.logger.WithField("error", err.Error()).Warn("Push channel unavailable")
			s.armFallback()
			if !s.sleep(s.cfg.ReconnectDelay) {
				return
			}
			continue
		}

		s.cancelFallback()
		s.logger.Info("Push channel connected")

		if !s.consume(sub) {
			return
		}

		s.logger.Warn("Push channel disconnected")
		s.armFallback()
		if !s.sleep(s.cfg.ReconnectDelay) {
			return
		}
	}
}

// consume drains one subscription. Returns false when the supervisor is
// shutting down.
func (s *Supervisor) consume(sub *rabbitmq.Subscription) bool {
	for {
		select {
		case body, ok := <-sub.Deliveries:
			if !ok {
				return true
			}
			s.reconciler.HandleMessage(body)
		case <-sub.Closed:
			return true
		case <-s.quit:
			return false
		}
	}
}

// armFallback starts the grace timer unless polling is already active or
// armed. The grace delay keeps a normal broker reconnect from flapping the
// kiosk into fallback mode.
func (s *Supervisor) armFallback() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || s.polling || s.graceTimer != nil {
		return
	}
	gen := s.fallbackGen
	s.graceTimer = time.AfterFunc(s.cfg.GracePeriod, func() { s.beginPolling(gen) })
}

func (s *Supervisor) beginPolling(gen uint64) {
	s.mu.Lock()
	s.graceTimer = nil
	if s.stopped || s.polling || gen != s.fallbackGen {
		s.mu.Unlock()
		return
	}
	s.polling = true
	stop := make(chan struct{})
	s.pollStop = stop
	s.wg.Add(1)
	s.mu.Unlock()

	s.logger.Info("Starting snapshot polling fallback")
	go s.pollLoop(stop)
}

// cancelFallback disarms the grace timer and stops the polling loop.
// Cancel-if-armed: calling it with nothing running is a no-op.
func (s *Supervisor) cancelFallback() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelFallbackLocked()
}

// cancelFallbackLocked requires s.mu held. Bumping the generation defeats a
// timer that fired before the cancel but has not run yet.
func (s *Supervisor) cancelFallbackLocked() {
	s.fallbackGen++
	if s.graceTimer != nil {
		s.graceTimer.Stop()
		s.graceTimer = nil
	}
	if s.polling {
		close(s.pollStop)
		s.polling = false
		s.logger.Info("Stopped snapshot polling fallback")
	}
}

func (s *Supervisor) pollLoop(stop chan struct{}) {
	defer s.wg.Done()

	s.pollOnce()
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.pollOnce()
		case <-stop:
			return
		case <-s.quit:
			return
		}
	}
}

func (s *Supervisor) pollOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	snap, active, err := s.fetcher.FetchSnapshot(ctx)
	if err != nil {
		s.logger.WithField("error", err.Error()).Warn("Snapshot poll failed")
		return
	}
	s.reconciler.ApplyPolledSnapshot(snap, active)
}

func (s *Supervisor) runInventory() {
	defer s.wg.Done()

	s.refreshInventory()
	ticker := time.NewTicker(s.cfg.InventoryRefresh)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.refreshInventory()
		case <-s.quit:
			return
		}
	}
}

func (s *Supervisor) refreshInventory() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	info, err := s.fetcher.WaitlistInfo(ctx)
	if err != nil {
		s.logger.WithField("error", err.Error()).Debug("Inventory refresh failed")
		return
	}
	s.state.SetInventory(inventoryFromCounts(info.Rooms, info.Lockers, s.state.Now()))
}

// sleep waits d or returns false on shutdown.
func (s *Supervisor) sleep(d time.Duration) bool {
	select {
	case <-time.After(d):
		return true
	case <-s.quit:
		return false
	}
}
