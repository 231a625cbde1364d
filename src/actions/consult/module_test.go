package consult

import (
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stake-plus/expertdesk/src/config"
	consultsvc "github.com/stake-plus/expertdesk/src/consult"
	"github.com/stake-plus/expertdesk/src/persona"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepare(t *testing.T) {
	registry := persona.New()

	p, warning := prepare(registry, "health", "頭が痛い")
	assert.Empty(t, warning)
	assert.Equal(t, persona.Health, p.ID)

	_, warning = prepare(registry, "health", "   ")
	assert.Equal(t, consultsvc.EmptyQuestionWarning, warning)

	_, warning = prepare(registry, "chef", "Dinner?")
	assert.NotEmpty(t, warning)
}

func TestRenderReply(t *testing.T) {
	p, err := persona.New().Lookup(persona.Programming)
	require.NoError(t, err)

	chunks := renderReply(p, consultsvc.Succeeded("Use open()."), "7")
	require.Len(t, chunks, 1)
	assert.True(t, strings.HasPrefix(chunks[0], "<@7> "))
	assert.True(t, strings.HasSuffix(chunks[0], "\n\nUse open()."))
	assert.Contains(t, chunks[0], persona.Programming)

	chunks = renderReply(p, consultsvc.Failed(consultsvc.ErrorPrefix+"rate limit"), "")
	assert.Equal(t, []string{consultsvc.ErrorPrefix + "rate limit"}, chunks)
}

func TestPersonaListing(t *testing.T) {
	out := personaListing(persona.New())
	for _, p := range persona.New().All() {
		assert.Contains(t, out, p.ID)
		assert.Contains(t, out, p.Caution)
	}
}

func TestInteractionUserID(t *testing.T) {
	assert.Equal(t, "m", interactionUserID(&discordgo.Interaction{Member: &discordgo.Member{User: &discordgo.User{ID: "m"}}}))
	assert.Equal(t, "u", interactionUserID(&discordgo.Interaction{User: &discordgo.User{ID: "u"}}))
	assert.Equal(t, "", interactionUserID(&discordgo.Interaction{}))
}

func TestNewModule_Validation(t *testing.T) {
	_, err := NewModule(config.DiscordConfig{}, nil, nil)
	assert.Error(t, err)
	_, err = NewModule(config.DiscordConfig{Token: "t"}, nil, nil)
	assert.Error(t, err)
}
