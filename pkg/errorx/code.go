package errorx

type Code int

var Unknown = Error{Code: 100000, Message: "Request failed"}

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	Internal         Code = 100007
	TooManyRequests  Code = 100010

	// Quest lifecycle codes
	InvalidState   Code = 200001
	AlreadyClaimed Code = 200002

	// Infrastructure codes
	Storage Code = 300001
)
