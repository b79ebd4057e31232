package play

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BVSTSirop/pokeguess/internal/engine"
	"github.com/BVSTSirop/pokeguess/internal/hint"
	"github.com/BVSTSirop/pokeguess/internal/ledger"
	"github.com/BVSTSirop/pokeguess/internal/names"
	"github.com/BVSTSirop/pokeguess/internal/obfuscate"
)

// gameAPI fakes the server side: one sprite round whose answer is Pikachu.
func gameAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/round/sprite", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"mode":"sprite","token":"tok-25","name":"Pikachu",
			"meta":{"color":"yellow","generation":1,"sprite":"https://img/25.png"},
			"media":{"sprite":"https://img/25.png"}}`))
	})
	mux.HandleFunc("/api/check-guess", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Token string `json:"token"`
			Guess string `json:"guess"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "tok-25", req.Token)
		if names.Normalize(req.Guess) == "pikachu" {
			w.Write([]byte(`{"correct":true,"name":"Pikachu"}`))
			return
		}
		w.Write([]byte(`{"correct":false}`))
	})
	mux.HandleFunc("/api/all-names", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["Pidgey","Pikachu","Pinsir"]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testSession(t *testing.T) *Session {
	t.Helper()
	srv := gameAPI(t)
	c := NewClient(srv.URL, "sprite", "en", "", zerolog.Nop())
	led := ledger.New(ledger.NewMemoryStore(), "local", "sprite", ledger.DefaultPolicy)
	return NewSession(c, led, obfuscate.ForMode("sprite"), Options{
		Thresholds: [4]int{1, 2, 3, 4},
		Debounce:   time.Millisecond,
	})
}

func TestSessionPlaysARound(t *testing.T) {
	ctx := context.Background()
	s := testSession(t)
	require.NoError(t, s.LoadCorpus(ctx))

	var loaded []engine.RoundLoadedEvent
	var wrongs []engine.WrongEvent
	var corrects []engine.CorrectEvent
	cb := engine.Callbacks{
		OnRoundLoaded: func(ev engine.RoundLoadedEvent) { loaded = append(loaded, ev) },
		OnWrong:       func(ev engine.WrongEvent) { wrongs = append(wrongs, ev) },
		OnCorrect:     func(ev engine.CorrectEvent) { corrects = append(corrects, ev) },
	}
	require.NoError(t, s.Engine.Start(ctx, cb))
	require.Len(t, loaded, 1)
	assert.Equal(t, "Pikachu", loaded[0].Round.Answer)
	assert.Equal(t, "https://img/25.png", loaded[0].Round.Payload["sprite"])

	// The first wrong guess crosses the configured letter threshold.
	require.NoError(t, s.Engine.SubmitGuess(ctx, "Pidgey"))
	require.Len(t, wrongs, 1)
	require.Len(t, wrongs[0].NewHints, 1)
	assert.Equal(t, hint.LevelLetter, wrongs[0].NewHints[0].Level)
	assert.Equal(t, "P", wrongs[0].NewHints[0].Letter)
	assert.Equal(t, 0, wrongs[0].Stats.Streak)

	require.NoError(t, s.Engine.SubmitGuess(ctx, "Pikachu"))
	require.Len(t, corrects, 1)
	assert.Equal(t, "Pikachu", corrects[0].Name)
	assert.Equal(t, 75, corrects[0].Stats.Score)
	assert.Equal(t, engine.StateSolved, s.Engine.State())
}

func TestSessionSuggestionsExcludeGuessed(t *testing.T) {
	ctx := context.Background()
	s := testSession(t)
	require.NoError(t, s.LoadCorpus(ctx))
	require.NoError(t, s.Engine.Start(ctx, engine.Callbacks{}))

	// Burn one name on a wrong guess.
	require.NoError(t, s.Engine.SubmitGuess(ctx, "Pidgey"))

	s.Suggest("pi")
	require.Eventually(t, func() bool {
		return len(s.Suggestions()) > 0
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"Pikachu", "Pinsir"}, s.Suggestions())

	s.Down()
	name, ok := s.Pick()
	require.True(t, ok)
	assert.Equal(t, "Pikachu", name)
	assert.Empty(t, s.Suggestions(), "picking dismisses the list")
}
