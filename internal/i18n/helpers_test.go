package i18n

import (
	"context"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

const enBundle = `
[NavItems]
dashboard = "Dashboard"
kyc = "KYC Review"

[Common]
welcome = "Welcome back, {{.Name}}"
`

const hiBundle = `
[NavItems]
dashboard = "डैशबोर्ड"
kyc = "केवाईसी समीक्षा"

[Common]
welcome = "वापसी पर स्वागत है, {{.Name}}"
`

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry([]string{"en", "hi"}, "en")
	require.NoError(t, err)
	return r
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"en.toml": {Data: []byte(enBundle)},
		"hi.toml": {Data: []byte(hiBundle)},
	}
}

// countingLoader records the locales it was asked for.
type countingLoader struct {
	mu      sync.Mutex
	next    Loader
	calls   []string
	failErr error
}

func (l *countingLoader) Load(ctx context.Context, locale string) (MessageBundle, error) {
	l.mu.Lock()
	l.calls = append(l.calls, locale)
	l.mu.Unlock()

	if l.failErr != nil {
		return MessageBundle{}, l.failErr
	}
	return l.next.Load(ctx, locale)
}

func (l *countingLoader) Calls() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type mapStore struct {
	data map[string]map[string]string
	err  error
}

func (s *mapStore) ListByLocale(_ context.Context, locale string) (map[string]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[string]string)
	for k, v := range s.data[locale] {
		out[k] = v
	}
	return out, nil
}
