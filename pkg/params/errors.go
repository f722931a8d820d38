package params

import (
	"errors"

	"github.com/dmitrymomot/apikit/pkg/apierror"
)

// Error classes raised by validation. All of them render as 400 responses.
var (
	PresenceError = apierror.MustRegister("presence",
		apierror.WithBase(apierror.BadRequest), apierror.WithNamespace("params"))
	RegexpError = apierror.MustRegister("regexp",
		apierror.WithBase(apierror.BadRequest), apierror.WithNamespace("params"))
	CoerceError = apierror.MustRegister("coerce",
		apierror.WithBase(apierror.BadRequest), apierror.WithNamespace("params"))

	// UnknownValidator and UnknownOptions signal declaration mistakes.
	UnknownValidator = apierror.MustRegister("unknown_validator", apierror.WithNamespace("params"))
	UnknownOptions   = apierror.MustRegister("unknown_options", apierror.WithNamespace("params"))
)

var (
	// ErrNoAttributes is returned when a declaration names no attribute.
	ErrNoAttributes = errors.New("params: declaration has no attributes")

	// ErrInvalidDeclaration is returned for declaration arguments that are
	// neither attribute names nor rules.
	ErrInvalidDeclaration = errors.New("params: invalid declaration argument")

	// ErrInvalidPattern is returned when a regexp option does not compile.
	ErrInvalidPattern = errors.New("params: invalid regexp option")

	// ErrUnknownKind is returned when coercing to an unsupported kind.
	ErrUnknownKind = errors.New("params: unknown coercion kind")

	// ErrEmptyValidatorName is returned when registering a validator without a name.
	ErrEmptyValidatorName = errors.New("params: validator name is empty")

	// ErrNilFactory is returned when registering a nil factory.
	ErrNilFactory = errors.New("params: validator factory is nil")

	// ErrNilBlock is returned when defining a schema without a declaration block.
	ErrNilBlock = errors.New("params: declaration block is nil")
)
