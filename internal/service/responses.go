package service

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/bwmarrin/discordgo"
	"rolemenu-service/internal/interaction"
	"rolemenu-service/internal/repository/model"
)

const (
	errorEmoji = "<:error:839325739136712725>"
	savedEmoji = "<:saved:553825818384531456>"

	selectRolesContent   = "Select your desired roles:"
	savedContent         = savedEmoji + " Saved your changes! You can now go back and select different roles if you wish."
	noPermissionContent  = errorEmoji + " I don't seem to have permissions to make these changes."
	rateLimitedContent   = errorEmoji + " I seem to be getting rate limited, please try again later."
	unknownErrorTemplate = errorEmoji + " An unknown error occurred (%s)"
)

var pongResponse = &discordgo.InteractionResponse{Type: discordgo.InteractionResponsePong}

func roleMention(roleId string) string {
	return (&discordgo.Role{ID: roleId}).Mention()
}

func gaveRoleContent(roleId string) string {
	return fmt.Sprintf("Gave you the %s role.", roleMention(roleId))
}

func removedRoleContent(roleId string) string {
	return fmt.Sprintf("Removed the %s role.", roleMention(roleId))
}

func requiredRoleContent(roleId string) string {
	return fmt.Sprintf("%s You must have the %s role to open this category!", errorEmoji, roleMention(roleId))
}

// unknownErrorContent names the upstream status, e.g. "(500 Internal Server Error)". A status of 0
// means the call failed before Discord answered.
func unknownErrorContent(status int) string {
	return fmt.Sprintf(unknownErrorTemplate, strings.TrimSpace(fmt.Sprintf("%d %s", status, http.StatusText(status))))
}

func ephemeral(content string, components ...discordgo.MessageComponent) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: components,
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	}
}

// roleMenu renders the picker for a group. Options are preselected for roles the member holds.
func roleMenu(index int, group *model.RoleGroup, invoker interaction.Invoker) discordgo.MessageComponent {
	options := make([]discordgo.SelectMenuOption, len(group.Roles))
	for i, role := range group.Roles {
		options[i] = discordgo.SelectMenuOption{
			Label:   role.Label,
			Value:   role.Role,
			Emoji:   componentEmoji(role.Emoji),
			Default: invoker.HasRole(role.Role),
		}
	}

	minValues := group.MinValues()
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				CustomID:  interaction.EditGroup{Index: index}.CustomID(),
				MinValues: &minValues,
				MaxValues: group.MaxValues(),
				Options:   options,
			},
		},
	}
}

// componentEmoji treats an all-digit emoji as a custom emoji id and anything else as a unicode emoji.
func componentEmoji(emoji *string) *discordgo.ComponentEmoji {
	if emoji == nil || *emoji == "" {
		return nil
	}
	if isSnowflake(*emoji) {
		return &discordgo.ComponentEmoji{ID: *emoji}
	}
	return &discordgo.ComponentEmoji{Name: *emoji}
}

func isSnowflake(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}
