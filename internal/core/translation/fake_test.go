package translation

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// fakeClient records calls and answers from a fixed table.
type fakeClient struct {
	mu        sync.Mutex
	calls     []string
	count     atomic.Int32
	inFlight  atomic.Int32
	maxFlight atomic.Int32
	answers   map[string]string
	fail      bool
	delay     func(text string) time.Duration
}

func (f *fakeClient) Translate(ctx context.Context, text, source, target string) (string, error) {
	f.count.Add(1)
	f.mu.Lock()
	f.calls = append(f.calls, text)
	f.mu.Unlock()

	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		peak := f.maxFlight.Load()
		if n <= peak || f.maxFlight.CompareAndSwap(peak, n) {
			break
		}
	}

	if f.delay != nil {
		time.Sleep(f.delay(text))
	}
	if f.fail {
		return "", errors.New("network unreachable")
	}
	if answer, ok := f.answers[text]; ok {
		return answer, nil
	}
	return text + "-en", nil
}
