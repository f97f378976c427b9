package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyText           = errors.New("sentence text is required")
	ErrTextTooLong         = errors.New("sentence text is too long")
	ErrEmptyTagName        = errors.New("tag name is required")
	ErrInvalidTagColor     = errors.New("tag color must be in #RRGGBB form")
	ErrInvalidDailyGoal    = errors.New("daily goal must be positive")
	ErrInvalidPlaybackRate = errors.New("playback rate must be between 0.5 and 2.0")
	ErrInvalidLocale       = errors.New("invalid locale tag")
)
