package iqm

import "fmt"

// ConfigurationError reports an invalid or untimely precision setting.
type ConfigurationError struct {
	// Parameter names the offending setting, if there is one.
	Parameter string
	Reason    string
}

func (e ConfigurationError) Error() string {
	if e.Parameter == "" {
		return fmt.Sprintf("invalid configuration: %s", e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Parameter, e.Reason)
}

// MissingKindError is returned when a variable is referenced for the
// first time without a kind.
type MissingKindError Identifier

func (e MissingKindError) Error() string {
	return fmt.Sprintf("variable %q is not defined and no kind was given", Identifier(e))
}

// KindConflictError is returned when a registered variable is
// referenced with a kind other than the one it was registered with.
type KindConflictError struct {
	Identifier Identifier
	Registered Kind
	Requested  Kind
}

func (e KindConflictError) Error() string {
	return fmt.Sprintf("variable %q is %s, not %s", e.Identifier, e.Registered, e.Requested)
}

// UnknownVariableError is returned when a variable is used before it
// has been added to the model.
type UnknownVariableError Identifier

func (e UnknownVariableError) Error() string {
	return fmt.Sprintf("variable %q is not defined, add it with AddVariable first", Identifier(e))
}

// UnknownKindError is returned for kind values outside the supported
// set.
type UnknownKindError Kind

func (e UnknownKindError) Error() string {
	return fmt.Sprintf("unknown variable kind %d", int(e))
}
