package syncer

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"

	"github.com/tie/modsync/modsync"
)

// fakeRemote serves collections and versions from memory and
// records every call.
type fakeRemote struct {
	collections map[string]*modsync.Collection
	versions    map[string][]modsync.Version
	files       map[string]string

	// versionsErr fails Versions for the given projects.
	versionsErr map[string]error
	// delay is spent inside every call to make overlap observable.
	delay time.Duration

	mu           sync.Mutex
	versionCalls map[string]int
	downloads    []string

	inflight    int32
	maxInflight int32
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		collections:  make(map[string]*modsync.Collection),
		versions:     make(map[string][]modsync.Version),
		files:        make(map[string]string),
		versionsErr:  make(map[string]error),
		versionCalls: make(map[string]int),
	}
}

// addMod registers a project with a single fabric 1.20.4 version.
func (f *fakeRemote) addMod(id, filename string) {
	url := "https://cdn.modrinth.com/data/" + id + "/" + filename
	f.versions[id] = append(f.versions[id], modsync.Version{
		ID:           id + "-" + filename,
		GameVersions: []string{"1.20.4"},
		Loaders:      []string{"fabric"},
		Files: []modsync.File{
			{URL: url, Filename: filename, Primary: true},
		},
	})
	f.files[url] = "contents of " + filename
}

func (f *fakeRemote) enter() func() {
	n := atomic.AddInt32(&f.inflight, 1)
	for {
		max := atomic.LoadInt32(&f.maxInflight)
		if n <= max || atomic.CompareAndSwapInt32(&f.maxInflight, max, n) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return func() { atomic.AddInt32(&f.inflight, -1) }
}

func (f *fakeRemote) Collection(ctx context.Context, id string) (*modsync.Collection, error) {
	c, ok := f.collections[id]
	if !ok {
		return nil, &modsync.NetworkError{Op: "GET", URL: "/v3/collection/" + id, StatusCode: 404}
	}
	return c, nil
}

func (f *fakeRemote) Versions(ctx context.Context, projectID string) ([]modsync.Version, error) {
	defer f.enter()()
	f.mu.Lock()
	f.versionCalls[projectID]++
	f.mu.Unlock()
	if err := f.versionsErr[projectID]; err != nil {
		return nil, err
	}
	return f.versions[projectID], nil
}

func (f *fakeRemote) Download(ctx context.Context, rawurl string, w io.Writer) error {
	defer f.enter()()
	f.mu.Lock()
	f.downloads = append(f.downloads, rawurl)
	f.mu.Unlock()
	s, ok := f.files[rawurl]
	if !ok {
		return &modsync.NetworkError{Op: "GET", URL: rawurl, StatusCode: 404}
	}
	_, err := io.WriteString(w, s)
	return err
}

func (f *fakeRemote) downloadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.downloads)
}

func newLogger() (*log.Logger, *memory.Handler) {
	h := memory.New()
	return &log.Logger{Handler: h, Level: log.DebugLevel}, h
}

func hasMessage(h *memory.Handler, mod, msg string) bool {
	for _, e := range h.Entries {
		if e.Message == msg && e.Fields.Get("mod") == mod {
			return true
		}
	}
	return false
}
