package site

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"microarchive/internal/storage"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	goleak.VerifyTestMain(m)
}

func newHost(t *testing.T) (*RegistryHost, *storage.DirStore) {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "sites.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, storage.Migrate(db))

	objects, err := storage.NewDirStore(t.TempDir(), "https://images.example.org/")
	require.NoError(t, err)

	h := NewRegistryHost(storage.NewSiteRepo(db), objects, "scans/", "%s.sites.localhost")
	h.suffix = func() string { return "abcde" }
	return h, objects
}

func TestRegistryHost_CreateSite(t *testing.T) {
	ctx := context.Background()
	h, _ := newHost(t)

	info, err := h.CreateOrUpdateSite(ctx, "family-papers", "")
	require.NoError(t, err)

	assert.NotEmpty(t, info.ID)
	assert.Equal(t, info.ID+".sites.localhost", info.Domain)
	assert.Equal(t, "scans_webdata_abcde", info.Origin)
	assert.Equal(t, StatusInProgress, info.Status)

	got, err := h.CreateOrUpdateSite(ctx, "ignored", info.ID)
	require.NoError(t, err)
	assert.Equal(t, info, got)
}

func TestRegistryHost_DeployedOnceIndexExists(t *testing.T) {
	ctx := context.Background()
	h, objects := newHost(t)

	info, err := h.CreateOrUpdateSite(ctx, "family-papers", "")
	require.NoError(t, err)

	require.NoError(t, objects.Upload(ctx, "family-papers", info.Origin, storage.SiteFiles{Index: "<html/>"}, nil))

	got, err := h.GetSite(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusDeployed, got.Status)

	// The status is persisted
	rec, err := h.sites.Get(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, string(StatusDeployed), rec.Status)
}

func TestRegistryHost_UnknownSite(t *testing.T) {
	h, _ := newHost(t)

	_, err := h.GetSite(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = h.CreateOrUpdateSite(context.Background(), "name", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRandomLetters(t *testing.T) {
	s := randomLetters(5)
	assert.Len(t, s, 5)
	assert.Empty(t, strings.Trim(s, "abcdefghijklmnopqrstuvwxyz"))
}

type fakeHost struct {
	mu      sync.Mutex
	calls   int
	readyAt int
	err     error
}

func (f *fakeHost) CreateOrUpdateSite(ctx context.Context, name, existingID string) (Info, error) {
	return f.GetSite(ctx, existingID)
}

func (f *fakeHost) GetSite(_ context.Context, id string) (Info, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return Info{}, f.err
	}
	status := StatusInProgress
	if f.readyAt > 0 && f.calls >= f.readyAt {
		status = StatusDeployed
	}
	return Info{ID: id, Status: status}, nil
}

func TestWaitDeployed(t *testing.T) {
	tests := []struct {
		name      string
		host      *fakeHost
		timeout   time.Duration
		wantErr   error
		wantCalls int
	}{
		{
			name:      "already deployed",
			host:      &fakeHost{readyAt: 1},
			timeout:   time.Second,
			wantCalls: 1,
		},
		{
			name:      "deployed after polling",
			host:      &fakeHost{readyAt: 3},
			timeout:   time.Second,
			wantCalls: 3,
		},
		{
			name:    "timeout",
			host:    &fakeHost{},
			timeout: 30 * time.Millisecond,
			wantErr: context.DeadlineExceeded,
		},
		{
			name:      "host error",
			host:      &fakeHost{err: ErrNotFound},
			timeout:   time.Second,
			wantErr:   ErrNotFound,
			wantCalls: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := WaitDeployed(context.Background(), tt.host, "site-1", time.Millisecond, tt.timeout)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StatusDeployed, info.Status)
			assert.Equal(t, tt.wantCalls, tt.host.calls)
		})
	}
}

func TestWaitDeployed_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	host := &fakeHost{}

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := WaitDeployed(ctx, host, "site-1", time.Millisecond, time.Minute)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWaitDeployed_Registry(t *testing.T) {
	ctx := context.Background()
	h, objects := newHost(t)

	info, err := h.CreateOrUpdateSite(ctx, "family-papers", "")
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		time.Sleep(20 * time.Millisecond)
		_ = objects.Upload(ctx, "family-papers", info.Origin, storage.SiteFiles{Index: "<html/>"}, nil)
	}()

	got, err := WaitDeployed(ctx, h, info.ID, 5*time.Millisecond, 5*time.Second)
	wg.Wait()
	require.NoError(t, err)
	assert.Equal(t, StatusDeployed, got.Status)
}
