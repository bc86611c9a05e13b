package journal

import "errors"

var (
	ErrEmptyName            = errors.New("journal: name is required")
	ErrEmptyLabel           = errors.New("journal: preference label is required")
	ErrEmptyTitle           = errors.New("journal: event title is required")
	ErrEmptyMemory          = errors.New("journal: memory text is required")
	ErrEmptyURL             = errors.New("journal: link url is required")
	ErrMissingTime          = errors.New("journal: event time is required")
	ErrImportanceOutOfRange = errors.New("journal: importance must be between 1 and 5")
	ErrUnknownCategory      = errors.New("journal: unknown preference category")
	ErrUnknownEventType     = errors.New("journal: unknown event type")
	ErrUnknownPolarity      = errors.New("journal: unknown polarity")
	ErrInvalidDate          = errors.New("journal: invalid date")

	ErrPersonNotFound     = errors.New("journal: person not found")
	ErrPreferenceNotFound = errors.New("journal: preference not found")
	ErrEventNotFound      = errors.New("journal: event not found")
	ErrLinkNotFound       = errors.New("journal: link not found")
)
