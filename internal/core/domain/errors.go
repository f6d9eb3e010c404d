package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidOption is returned when a user override cannot be applied to the schema.
	// Both ErrUnknownOption and ErrOptionOutOfDomain wrap it.
	ErrInvalidOption = zerr.New("invalid option")

	// ErrUnknownOption is returned when an override names an option the schema does not declare.
	ErrUnknownOption = zerr.Wrap(ErrInvalidOption, "unknown option")

	// ErrOptionOutOfDomain is returned when an override value lies outside the option's domain.
	ErrOptionOutOfDomain = zerr.Wrap(ErrInvalidOption, "option value outside its domain")

	// ErrInvalidSchema is returned when a schema declares a duplicate option or an invalid default.
	ErrInvalidSchema = zerr.New("invalid option schema")

	// ErrInvalidToolchain is returned when toolchain facts are missing required fields.
	ErrInvalidToolchain = zerr.New("invalid toolchain")

	// ErrInvalidAssignment is returned when a command line assignment is not of the form key=value.
	ErrInvalidAssignment = zerr.New("invalid assignment, expected key=value")

	// ErrDuplicateRequirement is returned when a dependency is declared twice.
	ErrDuplicateRequirement = zerr.New("duplicate requirement")

	// ErrInvalidRequirement is returned when a requirement rule is missing its name or version.
	ErrInvalidRequirement = zerr.New("invalid requirement")

	// ErrRecipeReadFailed is returned when the recipe file cannot be read.
	ErrRecipeReadFailed = zerr.New("failed to read recipe file")

	// ErrRecipeParseFailed is returned when the recipe file cannot be parsed.
	ErrRecipeParseFailed = zerr.New("failed to parse recipe file")

	// ErrProfileReadFailed is returned when the toolchain profile cannot be read.
	ErrProfileReadFailed = zerr.New("failed to read toolchain profile")

	// ErrProfileParseFailed is returned when the toolchain profile cannot be parsed.
	ErrProfileParseFailed = zerr.New("failed to parse toolchain profile")

	// ErrStoreCreateFailed is returned when the package store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create package store directory")

	// ErrStoreReadFailed is returned when a package record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read package record")

	// ErrStoreUnmarshalFailed is returned when a package record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal package record")

	// ErrStoreMarshalFailed is returned when a package record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal package record")

	// ErrStoreWriteFailed is returned when a package record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write package record")

	// ErrBuildExecutionFailed is returned when the external build fails.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrMatrixPlanFailed is returned when an entry of the build matrix cannot be resolved.
	ErrMatrixPlanFailed = zerr.New("failed to plan build matrix")
)
