package errors

// ErrorCode is the machine readable code carried by AppError
type ErrorCode int32

const (
	ErrorCode_HTTP_OK          ErrorCode = 0
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1003
	ErrorCode_UNAUTHENTICATED  ErrorCode = 1004

	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = 2001

	ErrorCode_VALIDATION           ErrorCode = 3000
	ErrorCode_CONFLICTS_UNRESOLVED ErrorCode = 3001
	ErrorCode_UNKNOWN_BATCH_KEY    ErrorCode = 3002
	ErrorCode_UNKNOWN_ENTRY        ErrorCode = 3003
	ErrorCode_NOT_UNDOABLE         ErrorCode = 3004
	ErrorCode_WORKFLOW_STEP        ErrorCode = 3005
	ErrorCode_WORKFLOW_FINISHED    ErrorCode = 3006
	ErrorCode_PROFILE_MERGED       ErrorCode = 3007
	ErrorCode_SOURCE_NOT_READY     ErrorCode = 3008

	ErrorCode_PERSISTENCE_FAILURE             ErrorCode = 4000
	ErrorCode_INTEGRATION_STORAGE_FAILED      ErrorCode = 4001
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED ErrorCode = 4003
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                         "HTTP_OK",
	ErrorCode_INTERNAL:                        "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:                "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                       "NOT_FOUND",
	ErrorCode_INVALID_PAYLOAD:                 "INVALID_PAYLOAD",
	ErrorCode_UNAUTHENTICATED:                 "UNAUTHENTICATED",
	ErrorCode_AUTH_INVALID_TOKEN:              "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:              "AUTH_TOKEN_EXPIRED",
	ErrorCode_VALIDATION:                      "VALIDATION",
	ErrorCode_CONFLICTS_UNRESOLVED:            "CONFLICTS_UNRESOLVED",
	ErrorCode_UNKNOWN_BATCH_KEY:               "UNKNOWN_BATCH_KEY",
	ErrorCode_UNKNOWN_ENTRY:                   "UNKNOWN_ENTRY",
	ErrorCode_NOT_UNDOABLE:                    "NOT_UNDOABLE",
	ErrorCode_WORKFLOW_STEP:                   "WORKFLOW_STEP",
	ErrorCode_WORKFLOW_FINISHED:               "WORKFLOW_FINISHED",
	ErrorCode_PROFILE_MERGED:                  "PROFILE_MERGED",
	ErrorCode_SOURCE_NOT_READY:                "SOURCE_NOT_READY",
	ErrorCode_PERSISTENCE_FAILURE:             "PERSISTENCE_FAILURE",
	ErrorCode_INTEGRATION_STORAGE_FAILED:      "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED: "INTEGRATION_EXTERNAL_API_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
