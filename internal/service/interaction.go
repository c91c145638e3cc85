package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
	"rolemenu-service/internal/discord"
	"rolemenu-service/internal/interaction"
	"rolemenu-service/internal/kafka/notifier"
	"rolemenu-service/internal/repository"
)

type InteractionService interface {
	// Handle produces the response for a decoded interaction. Errors wrapping
	// interaction.ErrMalformedInteraction or repository.ErrGroupNotFound are request errors; any
	// other error is a store failure.
	Handle(ctx context.Context, event interaction.Event) (*discordgo.InteractionResponse, error)
}

type interactionService struct {
	logger *zap.SugaredLogger

	repo  repository.Repository
	roles discord.RoleClient
	notif notifier.Notifier
}

func NewInteractionService(logger *zap.SugaredLogger, repo repository.Repository, roles discord.RoleClient,
	notif notifier.Notifier) InteractionService {

	return &interactionService{
		logger: logger,
		repo:   repo,
		roles:  roles,
		notif:  notif,
	}
}

func (s *interactionService) Handle(ctx context.Context, event interaction.Event) (*discordgo.InteractionResponse, error) {
	switch e := event.(type) {
	case interaction.Ping:
		return pongResponse, nil
	case interaction.ButtonPress:
		switch a := e.Action.(type) {
		case interaction.ApplyRole:
			return s.applyRole(ctx, e.Invoker, a), nil
		case interaction.ViewGroup:
			return s.viewGroup(ctx, e.Invoker, a)
		}
		return nil, fmt.Errorf("%w: operation %s is not a button", interaction.ErrMalformedInteraction, e.Action.Operation())
	case interaction.MenuSelect:
		if a, ok := e.Action.(interaction.EditGroup); ok {
			return s.editGroup(ctx, e.Invoker, a, e.Values)
		}
		return nil, fmt.Errorf("%w: operation %s is not a menu", interaction.ErrMalformedInteraction, e.Action.Operation())
	default:
		return nil, fmt.Errorf("%w: %T", interaction.ErrUnknownInteraction, event)
	}
}

// applyRole toggles a single role: it is added when the member lacks it and removed otherwise.
func (s *interactionService) applyRole(ctx context.Context, invoker interaction.Invoker, a interaction.ApplyRole) *discordgo.InteractionResponse {
	adding := !invoker.HasRole(a.RoleId)

	var err error
	if adding {
		err = s.roles.AddMemberRole(ctx, invoker.GuildId, invoker.UserId, a.RoleId)
	} else {
		err = s.roles.RemoveMemberRole(ctx, invoker.GuildId, invoker.UserId, a.RoleId)
	}
	if err != nil {
		s.logger.Warnw("failed to toggle member role", "guildId", invoker.GuildId, "userId", invoker.UserId,
			"roleId", a.RoleId, "adding", adding, "error", err)
		return failureResponse(err)
	}

	if adding {
		s.notify(ctx, invoker, []string{a.RoleId}, nil)
		return ephemeral(gaveRoleContent(a.RoleId))
	}

	s.notify(ctx, invoker, nil, []string{a.RoleId})
	return ephemeral(removedRoleContent(a.RoleId))
}

func (s *interactionService) viewGroup(ctx context.Context, invoker interaction.Invoker, a interaction.ViewGroup) (*discordgo.InteractionResponse, error) {
	group, err := s.repo.GetGroup(ctx, invoker.GuildId, a.Index)
	if err != nil {
		return nil, fmt.Errorf("failed to get group %d of guild %s: %w", a.Index, invoker.GuildId, err)
	}

	if group.RequiredRole != nil && !invoker.HasRole(*group.RequiredRole) {
		return ephemeral(requiredRoleContent(*group.RequiredRole)), nil
	}

	return ephemeral(selectRolesContent, roleMenu(a.Index, group, invoker)), nil
}

func (s *interactionService) editGroup(ctx context.Context, invoker interaction.Invoker, a interaction.EditGroup,
	chosen []string) (*discordgo.InteractionResponse, error) {

	group, err := s.repo.GetGroup(ctx, invoker.GuildId, a.Index)
	if err != nil {
		return nil, fmt.Errorf("failed to get group %d of guild %s: %w", a.Index, invoker.GuildId, err)
	}

	newRoles := computeMemberRoles(invoker.Roles, group.HasRole, chosen)
	if err := s.roles.SetMemberRoles(ctx, invoker.GuildId, invoker.UserId, newRoles); err != nil {
		s.logger.Warnw("failed to set member roles", "guildId", invoker.GuildId, "userId", invoker.UserId,
			"group", a.Index, "error", err)
		return failureResponse(err), nil
	}

	added, removed := diffRoles(invoker.Roles, newRoles)
	s.notify(ctx, invoker, added, removed)

	return ephemeral(savedContent), nil
}

func (s *interactionService) notify(ctx context.Context, invoker interaction.Invoker, added []string, removed []string) {
	if err := s.notif.MemberRolesUpdate(ctx, invoker.GuildId, invoker.UserId, added, removed); err != nil {
		s.logger.Errorw("failed to notify member roles update", "guildId", invoker.GuildId, "userId", invoker.UserId,
			"error", err)
	}
}

// failureResponse maps a failed Discord call to the message shown to the member.
func failureResponse(err error) *discordgo.InteractionResponse {
	switch status := discord.StatusCode(err); status {
	case http.StatusForbidden:
		return ephemeral(noPermissionContent)
	case http.StatusTooManyRequests:
		return ephemeral(rateLimitedContent)
	default:
		return ephemeral(unknownErrorContent(status))
	}
}

// computeMemberRoles keeps the member's roles outside the group, keeps group roles only when they
// were chosen, then adds the chosen roles. The result has no duplicates and keeps current order first.
func computeMemberRoles(current []string, inGroup func(roleId string) bool, chosen []string) []string {
	isChosen := make(map[string]struct{}, len(chosen))
	for _, r := range chosen {
		isChosen[r] = struct{}{}
	}

	seen := make(map[string]struct{}, len(current)+len(chosen))
	roles := make([]string, 0, len(current)+len(chosen))
	add := func(roleId string) {
		if _, ok := seen[roleId]; ok {
			return
		}
		seen[roleId] = struct{}{}
		roles = append(roles, roleId)
	}

	for _, r := range current {
		if _, ok := isChosen[r]; !ok && inGroup(r) {
			continue
		}
		add(r)
	}
	for _, r := range chosen {
		add(r)
	}

	return roles
}

func diffRoles(before []string, after []string) (added []string, removed []string) {
	beforeSet := make(map[string]struct{}, len(before))
	for _, r := range before {
		beforeSet[r] = struct{}{}
	}
	afterSet := make(map[string]struct{}, len(after))
	for _, r := range after {
		afterSet[r] = struct{}{}
		if _, ok := beforeSet[r]; !ok {
			added = append(added, r)
		}
	}
	for _, r := range before {
		if _, ok := afterSet[r]; !ok {
			removed = append(removed, r)
		}
	}
	return added, removed
}
