package model

// RoleGroup is one selectable category of roles in a guild. Its identity is its position in the
// guild's group list.
type RoleGroup struct {
	Min          *int        `bson:"min,omitempty" json:"min,omitempty" yaml:"min,omitempty"`
	Max          *int        `bson:"max,omitempty" json:"max,omitempty" yaml:"max,omitempty"`
	Roles        []GroupRole `bson:"roles" json:"roles" yaml:"roles"`
	RequiredRole *string     `bson:"requiredRole,omitempty" json:"requiredRole,omitempty" yaml:"requiredRole,omitempty"`
}

// MinValues is the minimum number of roles a member must pick from the group.
func (g *RoleGroup) MinValues() int {
	if g.Min == nil {
		return 0
	}
	return *g.Min
}

// MaxValues is the maximum number of roles a member may pick, defaulting to every role. A max of
// 0 is treated as unset.
func (g *RoleGroup) MaxValues() int {
	if g.Max == nil || *g.Max == 0 {
		return len(g.Roles)
	}
	return *g.Max
}

func (g *RoleGroup) HasRole(roleId string) bool {
	for _, r := range g.Roles {
		if r.Role == roleId {
			return true
		}
	}
	return false
}

type GroupRole struct {
	Label string  `bson:"label" json:"label" yaml:"label"`
	Emoji *string `bson:"emoji,omitempty" json:"emoji,omitempty" yaml:"emoji,omitempty"`
	Role  string  `bson:"role" json:"role" yaml:"role"`
}

// Guild is the stored document holding every role group of a guild.
type Guild struct {
	Id     string      `bson:"_id" json:"id"`
	Groups []RoleGroup `bson:"groups" json:"groups"`
}
