package client

import (
	"net/http"
	"sync"
)

// UnauthorizedInterceptor calls its hook once for every 401 response that passes through it.
type UnauthorizedInterceptor struct {
	next http.RoundTripper

	mu   sync.RWMutex
	hook func()
}

func NewUnauthorizedInterceptor(next http.RoundTripper) *UnauthorizedInterceptor {
	if next == nil {
		next = http.DefaultTransport
	}
	return &UnauthorizedInterceptor{next: next}
}

func (i *UnauthorizedInterceptor) SetHook(fn func()) {
	i.mu.Lock()
	i.hook = fn
	i.mu.Unlock()
}

func (i *UnauthorizedInterceptor) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := i.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		i.mu.RLock()
		hook := i.hook
		i.mu.RUnlock()
		if hook != nil {
			hook()
		}
	}
	return resp, nil
}
