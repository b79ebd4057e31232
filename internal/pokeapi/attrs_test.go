package pokeapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BVSTSirop/pokeguess/internal/pokeapi"
)

func familyServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/pokemon/26", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"name":"raichu","height":8,"weight":300,
			"species":{"name":"raichu","url":"https://pokeapi.co/api/v2/pokemon-species/26/"},
			"types":[{"slot":2,"type":{"name":"psychic"}},{"slot":1,"type":{"name":"electric"}}],
			"sprites":{"front_default":""}
		}`))
	})
	mux.HandleFunc("/pokemon-species/26", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"color":{"name":"yellow"},
			"generation":{"name":"generation-i","url":"https://pokeapi.co/api/v2/generation/1/"},
			"evolution_chain":{"url":"` + chainURL + `"},
			"varieties":[{"is_default":true,"pokemon":{"name":"raichu","url":"https://pokeapi.co/api/v2/pokemon/26/"}}]
		}`))
	})
	mux.HandleFunc("/evolution-chain/10", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chain":{
			"species":{"name":"pichu"},
			"evolves_to":[{"species":{"name":"pikachu"},
				"evolves_to":[{"species":{"name":"raichu"},"evolves_to":[]}]}]
		}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

var chainURL string

func TestAttrsAssembly(t *testing.T) {
	srv := familyServer(t)
	chainURL = srv.URL + "/evolution-chain/10"
	// The chain URL inside the species doc is read at request time, so the
	// handler above interpolates the live server address.
	c := pokeapi.New(srv.URL, zerolog.Nop())

	a, err := c.Attrs(context.Background(), 26)
	require.NoError(t, err)

	assert.Equal(t, 26, a.SpeciesID)
	assert.Equal(t, "raichu", a.SpeciesSlug)
	assert.Equal(t, []string{"electric", "psychic"}, a.Types, "types ordered by slot")
	assert.Equal(t, 8, a.Height)
	assert.Equal(t, 300, a.Weight)
	assert.Equal(t, "yellow", a.Color)
	assert.Equal(t, 1, a.Generation)
	assert.Equal(t, 3, a.Stage)
	assert.Equal(t, 3, a.StageTotal)
	assert.Contains(t, a.Family, "pichu")
	assert.Contains(t, a.Family, "pikachu")
	assert.Equal(t, 0, a.StageOf["pichu"])
	assert.Equal(t, 2, a.StageOf["raichu"])
}
