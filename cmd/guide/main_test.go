package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gopkg.in/yaml.v3"

	"github.com/albapepper/pokestory-guide/internal/guide"
	"github.com/albapepper/pokestory-guide/internal/model"
	"github.com/albapepper/pokestory-guide/internal/preview"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PREVIEW_MODE", "true")
	t.Setenv("SUPABASE_DB_URL", "")
	t.Setenv("DATABASE_URL", "")

	var out bytes.Buffer
	root := rootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--preview"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestRegionsText(t *testing.T) {
	out, err := run(t, "regions")
	require.NoError(t, err)
	assert.Contains(t, out, "kanto    Kanto")
	assert.Contains(t, out, "paldea   Paldea")
}

func TestTrainersText(t *testing.T) {
	out, err := run(t, "trainers", "--region", "kanto")
	require.NoError(t, err)
	assert.Contains(t, out, "Gym Leaders")
	assert.Contains(t, out, "kanto-brock-rb  Brock  Badge #1")
	assert.Contains(t, out, "Rivals")
}

func TestTrainersRoleJSON(t *testing.T) {
	out, err := run(t, "trainers", "--region", "kanto", "--role", "gym", "-o", "json")
	require.NoError(t, err)

	var buckets []guide.Bucket
	require.NoError(t, json.Unmarshal([]byte(out), &buckets))
	require.Len(t, buckets, 1)
	assert.Equal(t, model.RoleGym, buckets[0].Role)
	assert.Len(t, buckets[0].Trainers, 2)
}

func TestTrainersEmptyRegion(t *testing.T) {
	out, err := run(t, "trainers", "--region", "galar")
	require.NoError(t, err)
	assert.Contains(t, out, guide.MsgNoTrainers)
}

func TestTeamText(t *testing.T) {
	out, err := run(t, "team", "--trainer", "kanto-brock-rb")
	require.NoError(t, err)
	assert.Contains(t, out, "Brock\nPewter City Gym • Red/Blue • singles\nPrereqs: Reach Pewter City")
	assert.Contains(t, out, "[First battle (RB)]")
	assert.Contains(t, out, "#1 send-out • Lv.12  Geodude (Rock/Ground)")
	assert.Contains(t, out, "#2 send-out • Lv.14  Onix")
	assert.Contains(t, out, "S Tier")
	assert.Contains(t, out, "Squirtle  Lv. 12  Starter • gift")
	assert.Less(t, bytes.Index([]byte(out), []byte("S Tier")), bytes.Index([]byte(out), []byte("B Tier")))
}

func TestTeamYAML(t *testing.T) {
	out, err := run(t, "team", "--trainer", "kanto-brock-rb", "-o", "yaml")
	require.NoError(t, err)

	var team model.TeamWithParty
	require.NoError(t, yaml.Unmarshal([]byte(out), &team))
	assert.Equal(t, "kanto-brock-rb:rb-first", team.ID)
	assert.Len(t, team.Party, 2)
}

func TestTeamErrors(t *testing.T) {
	_, err := run(t, "team", "--trainer", "kanto-brock-rb", "--index", "4")
	assert.ErrorIs(t, err, guide.ErrInvalidSelection)

	_, err = run(t, "team", "--trainer", "nobody")
	assert.ErrorIs(t, err, guide.ErrInvalidSelection)

	// Brock is only loaded when his region is the one being browsed.
	_, err = run(t, "team", "--region", "johto", "--trainer", "kanto-brock-rb")
	assert.ErrorIs(t, err, guide.ErrInvalidSelection)

	_, err = run(t, "trainers", "--region", "atlantis")
	assert.Error(t, err)

	_, err = run(t, "regions", "-o", "xml")
	assert.Error(t, err)
}

func TestWalkToTeamClosesSession(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("os/signal.signal_recv"))

	mem, err := preview.Store()
	require.NoError(t, err)
	b := guide.NewBrowser(guide.NewLoader(mem, nil), model.Kanto, nil, nil)

	st, err := walkToTeam(context.Background(), b, "kanto-misty-rb", 0)
	require.NoError(t, err)
	require.NotNil(t, st.Team())
	assert.Equal(t, "kanto-misty-rb", st.Team().TrainerID)
	assert.NotEmpty(t, st.Party)
	assert.True(t, st.Idle())

	_, err = b.State()
	assert.ErrorIs(t, err, context.Canceled)
}
