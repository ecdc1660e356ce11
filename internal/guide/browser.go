package guide

import (
	"context"
	"log/slog"
	"sync"

	"github.com/albapepper/pokestory-guide/internal/metrics"
	"github.com/albapepper/pokestory-guide/internal/model"
)

// Browser drives a State from a single event loop goroutine. Selections and
// fetch results are both events on that loop, so state is never touched
// concurrently, while fetches run in their own goroutines and the loop stays
// free to accept a new selection at any time.
type Browser struct {
	loader  *Loader
	metrics *metrics.Metrics
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	events  chan event
	results chan Result
	done    chan struct{}
	fetches sync.WaitGroup
}

type event struct {
	apply func(State) (State, []Fetch, error)
	reply chan reply
	// waitIdle parks the reply until no fetch is outstanding.
	waitIdle bool
}

type reply struct {
	state State
	err   error
}

// NewBrowser starts a session on region. Call Close to stop it.
func NewBrowser(loader *Loader, region model.RegionID, m *metrics.Metrics, logger *slog.Logger) *Browser {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	b := &Browser{
		loader:  loader,
		metrics: m,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		events:  make(chan event),
		results: make(chan Result),
		done:    make(chan struct{}),
	}
	state, fetches := Init(region)
	go b.loop(state, fetches)
	return b
}

// SelectRegion switches region. It returns immediately; trainers load in
// the background.
func (b *Browser) SelectRegion(region model.RegionID) (State, error) {
	return b.send(event{apply: func(s State) (State, []Fetch, error) {
		next, fetches := s.SelectRegion(region)
		return next, fetches, nil
	}})
}

// SelectTrainer opens a trainer from the loaded list.
func (b *Browser) SelectTrainer(trainerID string) (State, error) {
	return b.send(event{apply: func(s State) (State, []Fetch, error) {
		return s.SelectTrainer(trainerID)
	}})
}

// SelectTeam picks one of the loaded teams.
func (b *Browser) SelectTeam(index int) (State, error) {
	return b.send(event{apply: func(s State) (State, []Fetch, error) {
		return s.SelectTeam(index)
	}})
}

// State returns a snapshot of the current state.
func (b *Browser) State() (State, error) {
	return b.send(event{})
}

// WaitIdle blocks until every outstanding fetch has completed and returns
// the resulting state.
func (b *Browser) WaitIdle(ctx context.Context) (State, error) {
	ev := event{reply: make(chan reply, 1), waitIdle: true}
	select {
	case b.events <- ev:
	case <-b.done:
		return State{}, context.Canceled
	case <-ctx.Done():
		return State{}, ctx.Err()
	}
	select {
	case r := <-ev.reply:
		return r.state, r.err
	case <-b.done:
		return State{}, context.Canceled
	case <-ctx.Done():
		return State{}, ctx.Err()
	}
}

// Close stops the loop and waits for in-flight fetches to finish.
func (b *Browser) Close() {
	b.cancel()
	<-b.done
	b.fetches.Wait()
}

func (b *Browser) send(ev event) (State, error) {
	ev.reply = make(chan reply, 1)
	select {
	case b.events <- ev:
	case <-b.done:
		return State{}, context.Canceled
	}
	r := <-ev.reply
	return r.state, r.err
}

func (b *Browser) loop(state State, initial []Fetch) {
	defer close(b.done)

	inflight := 0
	var idleWaiters []chan reply
	dispatch := func(fetches []Fetch) {
		for _, f := range fetches {
			inflight++
			b.fetches.Add(1)
			go func(f Fetch) {
				defer b.fetches.Done()
				res := b.loader.Run(b.ctx, f)
				select {
				case b.results <- res:
				case <-b.ctx.Done():
				}
			}(f)
		}
	}
	dispatch(initial)

	for {
		select {
		case <-b.ctx.Done():
			return

		case ev := <-b.events:
			if ev.waitIdle {
				if inflight == 0 {
					ev.reply <- reply{state: state}
				} else {
					idleWaiters = append(idleWaiters, ev.reply)
				}
				continue
			}
			if ev.apply == nil {
				ev.reply <- reply{state: state}
				continue
			}
			next, fetches, err := ev.apply(state)
			if err != nil {
				ev.reply <- reply{state: state, err: err}
				continue
			}
			state = next
			dispatch(fetches)
			ev.reply <- reply{state: state}

		case res := <-b.results:
			inflight--
			next, fetches, applied := state.Apply(res)
			if !applied {
				b.metrics.RecordStale(res.Fetch.Kind.String())
				b.logger.Debug("Discarding stale result",
					"kind", res.Fetch.Kind.String(),
					"region", res.Fetch.Key.Region,
					"trainer_id", res.Fetch.Key.TrainerID,
					"team_id", res.Fetch.Key.TeamID)
			} else {
				state = next
				dispatch(fetches)
			}
			if inflight == 0 {
				for _, w := range idleWaiters {
					w <- reply{state: state}
				}
				idleWaiters = nil
			}
		}
	}
}
