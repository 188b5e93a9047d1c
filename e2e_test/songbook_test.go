//go:build e2e
// +build e2e

package e2e_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsphweid/leadsheet/midi"
	"github.com/jsphweid/leadsheet/model"
	"github.com/jsphweid/leadsheet/render"
	"github.com/jsphweid/leadsheet/server"
	"github.com/jsphweid/leadsheet/song"
)

const demoTuneDoc = `
title: Demo Tune
key: G
time: 4/4
progressions:
  - name: verse
    chords: "{2[G][Em]}[C:2b][D:2b](1.[G])(2.[D:2b][G:2b])"
  - name: bridge
    chords: "[riff:1m][C][D]/[G]"
form:
  - progression: verse
    lyrics: |
      First verse starts right here
      and keeps on going
  - progression: bridge
`

const nightTrainDoc = `
title: Night Train
key: Am
progressions:
  - name: head
    chords: "[Am][Dm][E7][Am]"
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeSongs(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "demo_tune.yaml"), []byte(demoTuneDoc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "night_train.yaml"), []byte(nightTrainDoc), 0o644))
	return dir
}

func TestGenerateBookE2E(t *testing.T) {
	assert := assert.New(t)
	songsDir := writeSongs(t)
	outDir := t.TempDir()

	songs, err := song.LoadDir(songsDir)
	require.NoError(t, err)
	require.Len(t, songs, 2)

	renderer := render.New(outDir, discardLogger())
	require.NoError(t, renderer.RenderBook(songs, false))

	index, err := os.ReadFile(filepath.Join(outDir, "html", "index.html"))
	require.NoError(t, err)
	assert.Contains(string(index), "Demo Tune")
	assert.Contains(string(index), "Night Train")

	page, err := os.ReadFile(filepath.Join(outDir, "html", "demo_tune_leadsheet.html"))
	require.NoError(t, err)
	assert.Contains(string(page), "\U0001d106")
	assert.Contains(string(page), "\U0001d107")
	assert.Contains(string(page), "1.")
	assert.Contains(string(page), "First verse starts right here...")

	var summaries model.SongsByLetter
	data, err := os.ReadFile(filepath.Join(outDir, "html", "index.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &summaries))
	assert.Len(summaries["D"], 1)
	assert.Len(summaries["N"], 1)

	conv := render.NewPDFConverter(outDir, discardLogger())
	conv.Command = "true"
	require.NoError(t, conv.ConvertSongs())
}

func TestExportMIDIE2E(t *testing.T) {
	assert := assert.New(t)
	songsDir := writeSongs(t)
	outDir := t.TempDir()

	songs, err := song.LoadDir(songsDir)
	require.NoError(t, err)
	path := filepath.Join(outDir, songs[0].Slug()+".mid")
	require.NoError(t, midi.WriteFile(songs[0], 120, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(strings.HasPrefix(string(data), "MThd"))
}

func TestServeSongbookE2E(t *testing.T) {
	assert := assert.New(t)
	songsDir := writeSongs(t)

	ts := httptest.NewServer(server.New(songsDir, discardLogger()).Handler())
	defer ts.Close()

	res, err := http.Get(ts.URL + "/song/demo_tune/complete?transpose_root=D")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(string(body), "key of D")
	assert.Contains(string(body), "Bm")

	req, err := http.NewRequest("POST", ts.URL+"/api/songs/night_train/transpose", strings.NewReader(`{"root": "D"}`))
	require.NoError(t, err)
	res2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res2.Body.Close()
	require.Equal(t, http.StatusOK, res2.StatusCode)

	var tr model.TransposeResponse
	require.NoError(t, json.NewDecoder(res2.Body).Decode(&tr))
	assert.Equal("D-", tr.Key)
	require.Len(t, tr.Progressions, 1)
	assert.Equal("[Dm][Gm][A7][Dm]", tr.Progressions[0].Chords)
}
