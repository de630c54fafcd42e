package desk

// Level says how a banner is presented.
type Level int

const (
	LevelNone Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "none"
	}
}

// Kind classifies a failure.
type Kind int

const (
	KindNone Kind = iota
	// KindValidation: the input was rejected before any network call.
	KindValidation
	// KindTransport: the backend could not be reached.
	KindTransport
	// KindServer: the backend answered with a failure.
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindServer:
		return "server"
	default:
		return "none"
	}
}

// Banner is the single user-facing message an operation produces.
type Banner struct {
	Level   Level
	Kind    Kind
	Message string
}

func (b Banner) Visible() bool {
	return b.Level != LevelNone && b.Message != ""
}

// Result is what one operation hands back to its caller. It belongs to a
// single request; front ends render it and then drop it.
type Result[T any] struct {
	Value  T
	Banner Banner

	// Err is the underlying cause, kept for logging.
	Err error
}

func (r Result[T]) Failed() bool {
	return r.Banner.Level == LevelError
}

func succeed[T any](v T, msg string) Result[T] {
	return Result[T]{Value: v, Banner: Banner{Level: LevelSuccess, Message: msg}}
}

func fail[T any](kind Kind, msg string, err error) Result[T] {
	return Result[T]{Banner: Banner{Level: LevelError, Kind: kind, Message: msg}, Err: err}
}

func invalid[T any](msg string) Result[T] {
	return fail[T](KindValidation, msg, nil)
}
