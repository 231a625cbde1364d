package discord

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/stake-plus/expertdesk/src/persona"
)

const (
	CommandConsult  = "consult"
	CommandPersonas = "personas"

	OptionPersona  = "persona"
	OptionQuestion = "question"
)

// CommandDefinitions builds the slash commands for the given registry; the
// persona option offers one choice per registered persona.
func CommandDefinitions(registry *persona.Registry) map[string]*discordgo.ApplicationCommand {
	all := registry.All()
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(all))
	for _, p := range all {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  p.ID,
			Value: p.Alias,
		})
	}

	return map[string]*discordgo.ApplicationCommand{
		CommandConsult: {
			Name:        CommandConsult,
			Description: "Ask one of the expert personas a question",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        OptionPersona,
					Description: "The expert to consult",
					Required:    true,
					Choices:     choices,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        OptionQuestion,
					Description: "Your question",
					Required:    true,
				},
			},
		},
		CommandPersonas: {
			Name:        CommandPersonas,
			Description: "List the available experts and usage cautions",
		},
	}
}

var defaultCommandOrder = []string{
	CommandConsult,
	CommandPersonas,
}

// RegisterSlashCommands registers the requested slash commands for a guild.
// When no command names are provided, all known commands are registered.
func RegisterSlashCommands(s *discordgo.Session, guildID string, registry *persona.Registry, names ...string) error {
	if guildID == "" {
		return fmt.Errorf("discord: guildID is required to register slash commands")
	}

	if len(names) == 0 {
		names = defaultCommandOrder
	}

	definitions := CommandDefinitions(registry)
	var failures []string
	for _, name := range names {
		definition, ok := definitions[name]
		if !ok {
			log.Printf("discord: unknown slash command %q", name)
			continue
		}

		_, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, definition)
		if err != nil {
			if isDuplicateCommandError(err) {
				log.Printf("discord: slash command %q already registered", name)
				continue
			}
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			log.Printf("discord: failed to register command %q: %v", name, err)
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("discord: slash command registration errors: %s", strings.Join(failures, "; "))
	}

	return nil
}

// StringOption returns the named string option of an application command.
func StringOption(data discordgo.ApplicationCommandInteractionData, name string) string {
	for _, opt := range data.Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue()
		}
	}
	return ""
}

func isDuplicateCommandError(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Message != nil {
			msg := strings.ToLower(restErr.Message.Message)
			if strings.Contains(msg, "already exists") {
				return true
			}
		}
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "50035") && strings.Contains(msg, "already exists")
}
