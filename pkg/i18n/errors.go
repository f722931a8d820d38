package i18n

import "errors"

var (
	ErrNilAdapter = errors.New("i18n: adapter is nil")
	ErrNilParser  = errors.New("i18n: parser is nil")

	ErrFailedToParseJSON = errors.New("i18n: failed to parse JSON content")
	ErrFailedToParseYAML = errors.New("i18n: failed to parse YAML content")

	ErrLoadingCancelled = errors.New("i18n: loading translations cancelled")
	ErrFailedToReadFile = errors.New("i18n: failed to read translation file")
	ErrFailedToReadDir  = errors.New("i18n: failed to read translation directory")
	ErrNoTranslations   = errors.New("i18n: no translations found")
	ErrInvalidStructure = errors.New("i18n: invalid translation structure")
)
