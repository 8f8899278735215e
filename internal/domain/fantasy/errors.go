package fantasy

import (
	"errors"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
)

// Kind names one class of roster rule violation.
type Kind string

const (
	KindSquadSizeInvalid        Kind = "SquadSizeInvalid"
	KindPositionCountInvalid    Kind = "PositionCountInvalid"
	KindBudgetExceeded          Kind = "BudgetExceeded"
	KindGoalkeeperMismatch      Kind = "GoalkeeperMismatch"
	KindFormationBoundViolated  Kind = "FormationBoundViolated"
	KindRoleRequiresStarter     Kind = "RoleRequiresStarter"
	KindRoleNotExclusive        Kind = "RoleNotExclusive"
	KindPlayerNotInSquad        Kind = "PlayerNotInSquad"
	KindPositionMismatch        Kind = "PositionMismatch"
	KindTransferLimitReached    Kind = "TransferLimitReached"
	KindDuplicatePlayer         Kind = "DuplicatePlayer"
	KindUnknownPosition         Kind = "UnknownPosition"
	KindInvalidPlayer           Kind = "InvalidPlayer"
	KindInvalidRole             Kind = "InvalidRole"
	KindSubstitutionSideInvalid Kind = "SubstitutionSideInvalid"
	KindLineupMembership        Kind = "LineupMembership"
)

var (
	ErrSquadSizeInvalid        = crerr.New("invalid squad size")
	ErrPositionCountInvalid    = crerr.New("invalid squad position count")
	ErrBudgetExceeded          = crerr.New("budget cap exceeded")
	ErrGoalkeeperMismatch      = crerr.New("goalkeeper can only be swapped with goalkeeper")
	ErrFormationBoundViolated  = crerr.New("formation bound violated")
	ErrRoleRequiresStarter     = crerr.New("role requires a starting player")
	ErrRoleNotExclusive        = crerr.New("role held by more than one player")
	ErrPlayerNotInSquad        = crerr.New("player not in squad")
	ErrPositionMismatch        = crerr.New("transfer position mismatch")
	ErrTransferLimitReached    = crerr.New("transfer limit reached")
	ErrDuplicatePlayer         = crerr.New("duplicate player in squad")
	ErrUnknownPosition         = crerr.New("unknown player position")
	ErrInvalidPlayer           = crerr.New("invalid player")
	ErrInvalidRole             = crerr.New("invalid role")
	ErrSubstitutionSideInvalid = crerr.New("substitution needs one starter and one bench player")
	ErrLineupMembership        = crerr.New("lineup does not match squad")
)

var sentinelByKind = map[Kind]error{
	KindSquadSizeInvalid:        ErrSquadSizeInvalid,
	KindPositionCountInvalid:    ErrPositionCountInvalid,
	KindBudgetExceeded:          ErrBudgetExceeded,
	KindGoalkeeperMismatch:      ErrGoalkeeperMismatch,
	KindFormationBoundViolated:  ErrFormationBoundViolated,
	KindRoleRequiresStarter:     ErrRoleRequiresStarter,
	KindRoleNotExclusive:        ErrRoleNotExclusive,
	KindPlayerNotInSquad:        ErrPlayerNotInSquad,
	KindPositionMismatch:        ErrPositionMismatch,
	KindTransferLimitReached:    ErrTransferLimitReached,
	KindDuplicatePlayer:         ErrDuplicatePlayer,
	KindUnknownPosition:         ErrUnknownPosition,
	KindInvalidPlayer:           ErrInvalidPlayer,
	KindInvalidRole:             ErrInvalidRole,
	KindSubstitutionSideInvalid: ErrSubstitutionSideInvalid,
	KindLineupMembership:        ErrLineupMembership,
}

// ValidationError is one caller-correctable rule violation. Context carries the
// numbers and ids needed to render the problem without further lookups.
type ValidationError struct {
	Kind    Kind
	Message string
	Context map[string]any
}

func (e ValidationError) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// Unwrap exposes the kind sentinel so errors.Is(err, ErrBudgetExceeded) works.
func (e ValidationError) Unwrap() error {
	return sentinelByKind[e.Kind]
}

// ValidationErrors is the ordered list returned by every rejecting operation.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "no validation errors"
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for i, item := range v {
		if i > 0 {
			_, _ = buf.WriteString("; ")
		}
		_, _ = buf.WriteString(item.Error())
	}
	return buf.String()
}

func (v ValidationErrors) Unwrap() []error {
	out := make([]error, 0, len(v))
	for _, item := range v {
		out = append(out, item)
	}
	return out
}

func (v ValidationErrors) Has(kind Kind) bool {
	for _, item := range v {
		if item.Kind == kind {
			return true
		}
	}
	return false
}

func (v ValidationErrors) Kinds() []Kind {
	out := make([]Kind, 0, len(v))
	for _, item := range v {
		out = append(out, item.Kind)
	}
	return out
}

// AsValidationErrors extracts the validation list from a possibly wrapped error.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var list ValidationErrors
	if errors.As(err, &list) {
		return list, true
	}
	var single ValidationError
	if errors.As(err, &single) {
		return ValidationErrors{single}, true
	}
	return nil, false
}

type collector struct {
	items ValidationErrors
}

func (c *collector) add(kind Kind, context map[string]any, format string, args ...any) {
	c.items = append(c.items, ValidationError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Context: context,
	})
}

func (c *collector) err() error {
	if len(c.items) == 0 {
		return nil
	}
	return c.items
}

func reject(kind Kind, context map[string]any, format string, args ...any) error {
	var c collector
	c.add(kind, context, format, args...)
	return c.err()
}
