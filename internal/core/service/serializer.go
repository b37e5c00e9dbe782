package service

import (
	"pixbot/internal/core/domain"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
)

// Serializer runs submitted work in order per key and concurrently across keys.
// A key has a running drain goroutine exactly while it is present in queues.
type Serializer struct {
	queues map[domain.SessionKey][]func()
	mutex  sync.Mutex
	wg     conc.WaitGroup
}

func NewSerializer() *Serializer {
	return &Serializer{queues: make(map[domain.SessionKey][]func())}
}

func (s *Serializer) Submit(key domain.SessionKey, fn func()) {
	s.mutex.Lock()
	queue, running := s.queues[key]
	s.queues[key] = append(queue, fn)
	s.mutex.Unlock()

	if running {
		return
	}

	s.wg.Go(func() { s.drain(key) })
}

// Wait blocks until every queue submitted so far is empty.
func (s *Serializer) Wait() {
	s.wg.Wait()
}

func (s *Serializer) drain(key domain.SessionKey) {
	for {
		s.mutex.Lock()
		queue := s.queues[key]
		if len(queue) == 0 {
			delete(s.queues, key)
			s.mutex.Unlock()
			return
		}
		fn := queue[0]
		s.queues[key] = queue[1:]
		s.mutex.Unlock()

		var catcher panics.Catcher
		catcher.Try(fn)
		if r := catcher.Recovered(); r != nil {
			log.Error().Err(r.AsError()).Int64("chatId", int64(key)).Msg("recovered panic while handling event")
		}
	}
}
