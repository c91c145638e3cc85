package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"rolemenu-service/internal/repository"
	"rolemenu-service/internal/repository/model"
)

var ErrInvalidDocument = errors.New("invalid seed document")

// Document lists the role groups of each guild, in display order.
//
//	guilds:
//	  "123456789012345678":
//	    - requiredRole: "223456789012345678"
//	      max: 1
//	      roles:
//	        - label: Red
//	          emoji: "🟥"
//	          role: "323456789012345678"
type Document struct {
	Guilds map[string][]*model.RoleGroup `yaml:"guilds"`
}

func Load(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *Document) validate() error {
	for guildId, groups := range d.Guilds {
		if guildId == "" {
			return fmt.Errorf("%w: empty guild id", ErrInvalidDocument)
		}

		for i, group := range groups {
			if group == nil || len(group.Roles) == 0 {
				return fmt.Errorf("%w: group %d of guild %s has no roles", ErrInvalidDocument, i, guildId)
			}
			for _, role := range group.Roles {
				if role.Role == "" {
					return fmt.Errorf("%w: group %d of guild %s has a role without an id", ErrInvalidDocument, i, guildId)
				}
			}
			if group.Min != nil && group.Max != nil && *group.Min > *group.Max {
				return fmt.Errorf("%w: group %d of guild %s has min above max", ErrInvalidDocument, i, guildId)
			}
		}
	}
	return nil
}

// Apply replaces the stored groups of every guild in the document. Guilds are written in id order
// and the first failure stops the run.
func Apply(ctx context.Context, logger *zap.SugaredLogger, repo repository.Repository, doc *Document) error {
	guildIds := make([]string, 0, len(doc.Guilds))
	for guildId := range doc.Guilds {
		guildIds = append(guildIds, guildId)
	}
	sort.Strings(guildIds)

	for _, guildId := range guildIds {
		groups := doc.Guilds[guildId]
		if err := repo.SetGroups(ctx, guildId, groups); err != nil {
			return fmt.Errorf("failed to set groups of guild %s: %w", guildId, err)
		}
		logger.Infow("seeded guild", "guildId", guildId, "groups", len(groups))
	}

	return nil
}
