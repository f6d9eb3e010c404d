package domain

// NoticeLevel is the severity of a resolution notice.
type NoticeLevel string

const (
	// NoticeInfo marks an advisory message, e.g. an option that does not apply.
	NoticeInfo NoticeLevel = "info"
	// NoticeWarn marks a soft constraint that downgraded a requested option.
	NoticeWarn NoticeLevel = "warn"
)

// Notice is a non-fatal message emitted while resolving options.
type Notice struct {
	Level   NoticeLevel `json:"level" yaml:"level"`
	Message string      `json:"message" yaml:"message"`
}

// InfoNotice is a shorthand for an info notice.
func InfoNotice(msg string) Notice {
	return Notice{Level: NoticeInfo, Message: msg}
}

// WarnNotice is a shorthand for a warning notice.
func WarnNotice(msg string) Notice {
	return Notice{Level: NoticeWarn, Message: msg}
}

// Resolution is the outcome of resolving user overrides against a schema.
type Resolution struct {
	// Options is the final option record.
	Options Options `json:"options" yaml:"options"`

	// Propagated holds the values forced on every transitive dependency.
	Propagated Options `json:"propagated" yaml:"propagated"`

	// Notices are the advisory messages emitted by the resolution stages, in order.
	Notices []Notice `json:"notices,omitempty" yaml:"notices,omitempty"`
}
