package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prismplane/api"
	"prismplane/generator"
	"prismplane/model"
	"prismplane/storage"
)

type fixture struct {
	store *storage.Store
	srv   *httptest.Server
}

func newFixture(t *testing.T, regen api.RegenerateFunc) *fixture {
	t.Helper()

	cat := model.DefaultCatalog()
	store := storage.New(t.TempDir())
	if regen == nil {
		gen := generator.New(cat, store, generator.Options{PNG: true, PreviewScale: 0.1})
		regen = func(ctx context.Context) ([]generator.Result, error) {
			return gen.Run(ctx, &bytes.Buffer{})
		}
	}

	mux := http.NewServeMux()
	api.NewServer(cat, store, regen).Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return &fixture{store: store, srv: srv}
}

func (f *fixture) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(f.srv.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (f *fixture) generate(t *testing.T) []generator.Result {
	t.Helper()
	resp, err := http.Post(f.srv.URL+"/api/generate", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var results []generator.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&results))
	return results
}

func TestHealth(t *testing.T) {
	f := newFixture(t, nil)

	resp := f.get(t, "/api/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 3, body["variants"])
	assert.EqualValues(t, 0, body["clients"])
}

func TestVariants_BeforeAndAfterGenerate(t *testing.T) {
	f := newFixture(t, nil)

	var before []map[string]any
	require.NoError(t, json.NewDecoder(f.get(t, "/api/variants").Body).Decode(&before))
	require.Len(t, before, 3)
	assert.Equal(t, "catl", before[0]["key"])
	assert.Equal(t, false, before[0]["exists"])
	assert.Equal(t, "/assets/prismatic-cell-catl.svg", before[0]["url"])

	results := f.generate(t)
	require.Len(t, results, 3)

	var after []map[string]any
	require.NoError(t, json.NewDecoder(f.get(t, "/api/variants").Body).Decode(&after))
	assert.Equal(t, true, after[2]["exists"])
	assert.Equal(t, results[2].Digest, after[2]["digest"])
}

func TestVariantByKey(t *testing.T) {
	f := newFixture(t, nil)

	resp := f.get(t, "/api/variants/byd")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail struct {
		Key     string        `json:"key"`
		Title   string        `json:"title"`
		Palette model.Palette `json:"palette"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&detail))
	assert.Equal(t, "byd", detail.Key)
	assert.Equal(t, "BYD inspired", detail.Title)
	assert.Equal(t, "#1270ff", detail.Palette.Accent)

	assert.Equal(t, http.StatusNotFound, f.get(t, "/api/variants/unknown").StatusCode)
}

func TestGenerate_MethodNotAllowed(t *testing.T) {
	f := newFixture(t, nil)

	resp := f.get(t, "/api/generate")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, http.MethodPost, resp.Header.Get("Allow"))
}

func TestGenerate_Failure(t *testing.T) {
	f := newFixture(t, func(context.Context) ([]generator.Result, error) {
		return nil, errors.New("boom")
	})

	resp, err := http.Post(f.srv.URL+"/api/generate", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestAssets_ServeWithETag(t *testing.T) {
	f := newFixture(t, nil)

	assert.Equal(t, http.StatusNotFound, f.get(t, "/assets/prismatic-cell-catl.svg").StatusCode)

	f.generate(t)

	resp := f.get(t, "/assets/prismatic-cell-catl.svg")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))

	var body bytes.Buffer
	_, err := body.ReadFrom(resp.Body)
	require.NoError(t, err)
	want, err := f.store.ReadAsset("catl", storage.ExtSVG)
	require.NoError(t, err)
	assert.Equal(t, want, body.Bytes())

	etag := resp.Header.Get("ETag")
	assert.Equal(t, `"`+storage.Digest(want)+`"`, etag)

	req, err := http.NewRequest(http.MethodGet, f.srv.URL+"/assets/prismatic-cell-catl.svg", nil)
	require.NoError(t, err)
	req.Header.Set("If-None-Match", etag)
	cached, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer cached.Body.Close()
	assert.Equal(t, http.StatusNotModified, cached.StatusCode)

	png := f.get(t, "/assets/prismatic-cell-byd.png")
	require.Equal(t, http.StatusOK, png.StatusCode)
	assert.Equal(t, "image/png", png.Header.Get("Content-Type"))
}

func TestAssets_RejectsUnknownNames(t *testing.T) {
	f := newFixture(t, nil)
	f.generate(t)

	for _, path := range []string{
		"/assets/prismatic-cell-tesla.svg",
		"/assets/prismatic-cell-catl.txt",
		"/assets/other-catl.svg",
		"/assets/prismatic-cell-.svg",
	} {
		assert.Equal(t, http.StatusNotFound, f.get(t, path).StatusCode, path)
	}
}

func TestWebsocket_BroadcastsGeneration(t *testing.T) {
	f := newFixture(t, nil)

	wsURL := "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var hello api.Event
	require.NoError(t, conn.ReadJSON(&hello))
	assert.Equal(t, api.EventHello, hello.Type)

	var health map[string]any
	require.NoError(t, json.NewDecoder(f.get(t, "/api/health").Body).Decode(&health))
	assert.EqualValues(t, 1, health["clients"])

	f.generate(t)

	var ev api.Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, api.EventGenerated, ev.Type)
	require.Len(t, ev.Results, 3)
	assert.Equal(t, "catl", ev.Results[0].Key)
}
