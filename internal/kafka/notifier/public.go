package notifier

import "context"

//go:generate mockgen -source=public.go -destination=mock_notifier.go -package=notifier

type Notifier interface {
	// MemberRolesUpdate announces that the member's roles changed. Empty diffs are not published.
	MemberRolesUpdate(ctx context.Context, guildId string, userId string, added []string, removed []string) error
}

// MemberRolesUpdateMessage is the JSON document written to the member roles topic.
type MemberRolesUpdateMessage struct {
	GuildId string   `json:"guildId"`
	UserId  string   `json:"userId"`
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
}

type noopNotifier struct{}

// NewNoopNotifier returns a Notifier that drops every update. It is used when Kafka is disabled.
func NewNoopNotifier() Notifier {
	return noopNotifier{}
}

func (noopNotifier) MemberRolesUpdate(context.Context, string, string, []string, []string) error {
	return nil
}
