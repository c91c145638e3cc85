package interaction

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

var (
	// ErrMalformedPayload means the request body is not a Discord interaction.
	ErrMalformedPayload = errors.New("malformed interaction payload")
	// ErrMalformedInteraction means a supported interaction is missing fields or carries an
	// operation that does not apply to it.
	ErrMalformedInteraction = errors.New("malformed interaction")
	// ErrUnknownInteraction means the interaction or component type is not handled.
	ErrUnknownInteraction = errors.New("unknown interaction")
)

// Event is one of Ping, ButtonPress or MenuSelect.
type Event interface {
	isEvent()
}

type Ping struct{}

// Invoker is the guild member that triggered a component interaction.
type Invoker struct {
	GuildId string
	UserId  string
	Roles   []string
}

func (i Invoker) HasRole(roleId string) bool {
	for _, r := range i.Roles {
		if r == roleId {
			return true
		}
	}
	return false
}

type ButtonPress struct {
	Invoker
	Action Action
}

type MenuSelect struct {
	Invoker
	Action Action
	// Values are the option values picked by the member, never nil.
	Values []string
}

func (Ping) isEvent()        {}
func (ButtonPress) isEvent() {}
func (MenuSelect) isEvent()  {}

// Decode parses a raw interaction body.
func Decode(body []byte) (Event, error) {
	var i discordgo.Interaction
	if err := json.Unmarshal(body, &i); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	return FromDiscord(&i)
}

// FromDiscord classifies an interaction into an Event.
func FromDiscord(i *discordgo.Interaction) (Event, error) {
	switch i.Type {
	case discordgo.InteractionPing:
		return Ping{}, nil
	case discordgo.InteractionMessageComponent:
		return fromComponent(i)
	default:
		return nil, fmt.Errorf("%w: interaction type %d", ErrUnknownInteraction, i.Type)
	}
}

func fromComponent(i *discordgo.Interaction) (Event, error) {
	data, ok := i.Data.(discordgo.MessageComponentInteractionData)
	if !ok || data.CustomID == "" {
		return nil, fmt.Errorf("%w: component interaction has no custom id", ErrMalformedInteraction)
	}
	if i.GuildID == "" || i.Member == nil || i.Member.User == nil {
		return nil, fmt.Errorf("%w: component interaction was not sent from a guild", ErrMalformedInteraction)
	}

	invoker := Invoker{
		GuildId: i.GuildID,
		UserId:  i.Member.User.ID,
		Roles:   i.Member.Roles,
	}

	switch data.ComponentType {
	case discordgo.ButtonComponent:
		action, err := ParseCustomID(data.CustomID)
		if err != nil {
			return nil, err
		}
		return ButtonPress{Invoker: invoker, Action: action}, nil
	case discordgo.SelectMenuComponent:
		action, err := ParseCustomID(data.CustomID)
		if err != nil {
			return nil, err
		}

		values := data.Values
		if values == nil {
			values = []string{}
		}
		return MenuSelect{Invoker: invoker, Action: action, Values: values}, nil
	default:
		return nil, fmt.Errorf("%w: component type %d", ErrUnknownInteraction, data.ComponentType)
	}
}
