// ABOUTME: Debounced address search driving a suggestion callback
// ABOUTME: Last input wins, failures clear suggestions silently

package geocode

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// debounceDelay is how long input must stay quiet before a query fires.
const debounceDelay = 300 * time.Millisecond

// minQueryLength is the shortest input worth sending to the service.
const minQueryLength = 3

// Searcher turns a stream of keystrokes into at most one in-flight
// search. Each input resets the debounce timer; when it expires, the
// latest text is queried and the suggestions delivered to the
// callback. Stale responses are dropped, and failures deliver an
// empty list rather than an error: suggestions are best-effort.
type Searcher struct {
	client   *Client
	log      zerolog.Logger
	onResult func([]Address)

	mu     sync.Mutex
	timer  *time.Timer
	gen    uint64
	cancel context.CancelFunc
}

// NewSearcher builds a searcher delivering suggestions to onResult.
// The callback runs on the searcher's goroutine.
func NewSearcher(client *Client, log zerolog.Logger, onResult func([]Address)) *Searcher {
	return &Searcher{client: client, log: log, onResult: onResult}
}

// Input feeds the current text of the search box. Inputs shorter than
// three characters clear the suggestions immediately.
func (s *Searcher) Input(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	query := strings.TrimSpace(text)
	if len(query) < minQueryLength {
		go s.onResult(nil)
		return
	}

	gen := s.gen
	s.timer = time.AfterFunc(debounceDelay, func() {
		s.fire(gen, query)
	})
}

// fire runs the query if no newer input has arrived meanwhile.
func (s *Searcher) fire(gen uint64, query string) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()

	results, err := s.client.Search(ctx, query)

	s.mu.Lock()
	stale := gen != s.gen
	s.mu.Unlock()
	if stale {
		return
	}

	if err != nil {
		s.log.Debug().Err(err).Str("query", query).Msg("address search failed")
		s.onResult(nil)
		return
	}
	s.onResult(results)
}

// Stop cancels any pending or in-flight query.
func (s *Searcher) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
