package logging

import (
	"fmt"

	"github.com/Station-Manager/errors"
)

// ConflictResolver looks for a destination the host already holds under the
// sink's name before the registry builds one of its own.
type ConflictResolver struct {
	host   Host
	policy ReusePolicy
}

func NewConflictResolver(host Host, policy ReusePolicy) *ConflictResolver {
	return &ConflictResolver{host: host, policy: policy}
}

// Resolve returns the existing destination called name and true, or nil and
// false when there is none. Under ReuseCompatible an existing destination
// that is not a rotating file is an error and is left untouched.
func (c *ConflictResolver) Resolve(name string) (Destination, bool, error) {
	const op errors.Op = "logging.ConflictResolver.Resolve"
	if c == nil || c.host == nil {
		return nil, false, errors.New(op).Msg(errMsgNilHost)
	}

	d, ok := c.host.FindDestination(name)
	if !ok || d == nil {
		return nil, false, nil
	}
	if c.policy == ReuseCompatible && !Compatible(d) {
		return nil, false, configError("SinkName",
			fmt.Errorf("%w: %q is a %s destination", ErrIncompatibleDestination, name, d.Kind()))
	}
	return d, true, nil
}
