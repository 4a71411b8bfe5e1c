// Package preferences stores display preferences, currently the colour
// theme, and notifies subscribers when they change. It is independent of
// the prediction data.
package preferences

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Theme is the colour scheme of the display layer.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// KeyTheme is the store key of the theme flag.
const KeyTheme = "theme"

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	default:
		return "", fmt.Errorf("unknown theme %q", s)
	}
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Store persists preference values by key.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Change describes an applied theme update.
type Change struct {
	Previous Theme `json:"previous"`
	Theme    Theme `json:"theme"`
}

// Service reads and writes preferences and fans changes out to
// subscribers. Delivery is non-blocking; a slow subscriber misses events.
type Service struct {
	store Store
	def   Theme

	// writeMu serialises read-modify-write updates of the theme.
	writeMu sync.Mutex

	mu     sync.RWMutex
	subs   []chan Change
	closed bool
}

// NewService wraps store. def is returned while no theme is stored.
func NewService(store Store, def Theme) *Service {
	if def == "" {
		def = ThemeLight
	}
	return &Service{store: store, def: def}
}

// Theme returns the stored theme or the default. An unreadable stored
// value resolves to the default.
func (s *Service) Theme(ctx context.Context) (Theme, error) {
	v, ok, err := s.store.Get(ctx, KeyTheme)
	if err != nil {
		return "", fmt.Errorf("get theme: %w", err)
	}
	if !ok {
		return s.def, nil
	}
	t, err := ParseTheme(v)
	if err != nil {
		return s.def, nil
	}
	return t, nil
}

// SetTheme stores t and notifies subscribers when the value changed.
func (s *Service) SetTheme(ctx context.Context, t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.setTheme(ctx, t)
}

// setTheme requires writeMu to be held.
func (s *Service) setTheme(ctx context.Context, t Theme) error {
	prev, err := s.Theme(ctx)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, KeyTheme, string(t)); err != nil {
		return fmt.Errorf("set theme: %w", err)
	}
	if prev != t {
		s.publish(Change{Previous: prev, Theme: t})
	}
	return nil
}

// Toggle flips the theme and returns the new value.
func (s *Service) Toggle(ctx context.Context) (Theme, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	cur, err := s.Theme(ctx)
	if err != nil {
		return "", err
	}
	next := cur.Opposite()
	if err := s.setTheme(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

func (s *Service) publish(c Change) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}
	for _, ch := range s.subs {
		select {
		case ch <- c:
		default:
		}
	}
}

// Subscribe returns a channel receiving every subsequent change.
func (s *Service) Subscribe() <-chan Change {
	ch := make(chan Change, 8)
	s.mu.Lock()
	if s.closed {
		close(ch)
	} else {
		s.subs = append(s.subs, ch)
	}
	s.mu.Unlock()
	return ch
}

// Unsubscribe removes sub and closes it.
func (s *Service) Unsubscribe(sub <-chan Change) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, ch := range s.subs {
		if ch == sub {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			if !s.closed {
				close(ch)
			}
			return
		}
	}
}

// Watch calls fn for each change until ctx is done or the service is
// closed. The returned channel is closed once the watcher has stopped.
func (s *Service) Watch(ctx context.Context, fn func(Change)) <-chan struct{} {
	sub := s.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				s.Unsubscribe(sub)
				return
			case c, ok := <-sub:
				if !ok {
					return
				}
				fn(c)
			}
		}
	}()
	return done
}

// Close closes all subscriptions and the underlying store.
func (s *Service) Close() error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		for _, ch := range s.subs {
			close(ch)
		}
		s.subs = nil
	}
	s.mu.Unlock()
	return s.store.Close()
}
