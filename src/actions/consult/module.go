package consult

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stake-plus/expertdesk/src/actions/core"
	"github.com/stake-plus/expertdesk/src/config"
	consultsvc "github.com/stake-plus/expertdesk/src/consult"
	shareddiscord "github.com/stake-plus/expertdesk/src/discord"
	"github.com/stake-plus/expertdesk/src/events"
	"github.com/stake-plus/expertdesk/src/persona"
)

var _ core.Module = (*Module)(nil)

// Module owns the Discord session serving the /consult command.
type Module struct {
	cfg     config.DiscordConfig
	svc     *consultsvc.Service
	pub     events.Publisher
	session *discordgo.Session
	cancel  context.CancelFunc
}

// NewModule wires the Discord session for the consult action.
func NewModule(cfg config.DiscordConfig, svc *consultsvc.Service, pub events.Publisher) (*Module, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("consult: discord token not configured")
	}
	if svc == nil {
		return nil, fmt.Errorf("consult: service is nil")
	}
	if pub == nil {
		pub = events.Nop{}
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("consult: discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	return &Module{cfg: cfg, svc: svc, pub: pub, session: session}, nil
}

// Name implements actions.Module.
func (m *Module) Name() string { return "discord" }

// Start boots the Discord session and registers handlers.
func (m *Module) Start(ctx context.Context) error {
	if m.session == nil {
		return fmt.Errorf("consult: session not initialized")
	}

	m.initHandlers()
	if err := m.session.Open(); err != nil {
		return fmt.Errorf("consult: discord open: %w", err)
	}

	sessionCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	go func() {
		<-sessionCtx.Done()
		m.session.Close()
	}()

	return nil
}

// Stop closes the Discord session.
func (m *Module) Stop(ctx context.Context) {
	if m.cancel != nil {
		m.cancel()
	}
	if m.session != nil {
		m.session.Close()
	}
}

func (m *Module) initHandlers() {
	m.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("consult: logged in as %s", s.State.User.Username)
		if err := shareddiscord.RegisterSlashCommands(s, m.cfg.GuildID, m.svc.Registry()); err != nil {
			log.Printf("consult: register commands failed: %v", err)
		}
	})

	m.session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}
		switch i.ApplicationCommandData().Name {
		case shareddiscord.CommandConsult:
			m.handleConsultSlash(s, i)
		case shareddiscord.CommandPersonas:
			m.handlePersonasSlash(s, i)
		}
	})
}

func (m *Module) handleConsultSlash(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	p, warning := prepare(m.svc.Registry(),
		shareddiscord.StringOption(data, shareddiscord.OptionPersona),
		shareddiscord.StringOption(data, shareddiscord.OptionQuestion))
	if warning != "" {
		respondEphemeral(s, i.Interaction, "⚠️ "+warning)
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		log.Printf("consult: slash ack failed: %v", err)
		return
	}

	question := shareddiscord.StringOption(data, shareddiscord.OptionQuestion)
	start := time.Now()
	res := m.svc.Consult(context.Background(), p.ID, question)
	events.PublishAsync(m.pub, events.Consultation{
		Channel:  "discord",
		Persona:  p.Alias,
		Outcome:  res.Outcome().String(),
		Duration: time.Since(start),
	})

	m.sendChunks(s, i.Interaction, renderReply(p, res, interactionUserID(i.Interaction)))
}

func (m *Module) handlePersonasSlash(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respondEphemeral(s, i.Interaction, personaListing(m.svc.Registry()))
}

func (m *Module) sendChunks(s *discordgo.Session, interaction *discordgo.Interaction, chunks []string) {
	if len(chunks) == 0 {
		return
	}

	first := chunks[0]
	if _, err := s.InteractionResponseEdit(interaction, &discordgo.WebhookEdit{
		Content: &first,
	}); err != nil {
		log.Printf("consult: response send failed: %v", err)
		return
	}

	for idx := 1; idx < len(chunks); idx++ {
		if _, err := s.ChannelMessageSend(interaction.ChannelID, chunks[idx]); err != nil {
			log.Printf("consult: follow-up send failed: %v", err)
			return
		}
	}
}

func respondEphemeral(s *discordgo.Session, interaction *discordgo.Interaction, content string) {
	if err := s.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}); err != nil {
		log.Printf("consult: ephemeral reply failed: %v", err)
	}
}

func interactionUserID(interaction *discordgo.Interaction) string {
	if interaction.Member != nil && interaction.Member.User != nil {
		return interaction.Member.User.ID
	}
	if interaction.User != nil {
		return interaction.User.ID
	}
	return ""
}

// prepare resolves the persona option and checks the question. A non-empty
// warning means the provider must not be called.
func prepare(registry *persona.Registry, personaKey, question string) (persona.Persona, string) {
	p, err := registry.Resolve(personaKey)
	if err != nil {
		return persona.Persona{}, "相談したい専門家を選択してください。"
	}
	if err := consultsvc.ValidateQuestion(question); err != nil {
		return persona.Persona{}, consultsvc.EmptyQuestionWarning
	}
	return p, ""
}

func renderReply(p persona.Persona, res consultsvc.Result, userID string) []string {
	if !res.OK() {
		return shareddiscord.BuildLongMessages(res.Message(), userID)
	}
	header := fmt.Sprintf("📝 **%s** からの回答:\n\n", p.ID)
	return shareddiscord.BuildLongMessages(header+res.Answer(), userID)
}

func personaListing(registry *persona.Registry) string {
	all := registry.All()
	lines := make([][2]string, 0, len(all))
	cautions := make([]string, 0, len(all))
	for _, p := range all {
		lines = append(lines, [2]string{p.ID, p.Description})
		cautions = append(cautions, p.Caution)
	}
	return shareddiscord.PersonaListing(lines, cautions)
}
