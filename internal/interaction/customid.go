package interaction

import (
	"fmt"
	"strconv"
	"strings"
)

// Operations encoded as the first segment of a component custom id. Components rendered by older
// releases carry the same strings, so they must not change.
const (
	OpApply = "apply"
	OpView  = "view"
	OpEdit  = "edit"
)

const customIDSeparator = ":"

// Action is the decoded form of a component custom id ("<operation>:<arg0>:<arg1>...").
type Action interface {
	Operation() string
	CustomID() string

	isAction()
}

// ApplyRole toggles a single role on the invoking member.
type ApplyRole struct {
	RoleId string
}

// ViewGroup opens the role picker of the group at Index.
type ViewGroup struct {
	Index int
}

// EditGroup commits the roles picked from the group at Index.
type EditGroup struct {
	Index int
}

func (ApplyRole) Operation() string { return OpApply }
func (ViewGroup) Operation() string { return OpView }
func (EditGroup) Operation() string { return OpEdit }

func (a ApplyRole) CustomID() string { return encodeCustomID(OpApply, a.RoleId) }
func (a ViewGroup) CustomID() string { return encodeCustomID(OpView, strconv.Itoa(a.Index)) }
func (a EditGroup) CustomID() string { return encodeCustomID(OpEdit, strconv.Itoa(a.Index)) }

func (ApplyRole) isAction() {}
func (ViewGroup) isAction() {}
func (EditGroup) isAction() {}

// ParseCustomID decodes a component custom id. Trailing arguments beyond the ones an operation
// uses are ignored.
func ParseCustomID(customID string) (Action, error) {
	operation, args, _ := strings.Cut(customID, customIDSeparator)

	var arg0 string
	if args != "" {
		arg0, _, _ = strings.Cut(args, customIDSeparator)
	}

	switch operation {
	case OpApply:
		if arg0 == "" {
			return nil, fmt.Errorf("%w: custom id %q has no role", ErrMalformedInteraction, customID)
		}
		return ApplyRole{RoleId: arg0}, nil
	case OpView:
		index, err := parseIndex(customID, arg0)
		if err != nil {
			return nil, err
		}
		return ViewGroup{Index: index}, nil
	case OpEdit:
		index, err := parseIndex(customID, arg0)
		if err != nil {
			return nil, err
		}
		return EditGroup{Index: index}, nil
	default:
		return nil, fmt.Errorf("%w: unknown operation %q", ErrMalformedInteraction, operation)
	}
}

func parseIndex(customID string, s string) (int, error) {
	index, err := strconv.Atoi(s)
	if err != nil || index < 0 {
		return 0, fmt.Errorf("%w: custom id %q has no valid group index", ErrMalformedInteraction, customID)
	}
	return index, nil
}

func encodeCustomID(operation string, args ...string) string {
	return strings.Join(append([]string{operation}, args...), customIDSeparator)
}
