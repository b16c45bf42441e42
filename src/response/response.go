package response

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SuccessResponse struct {
	Data interface{} `json:"data"`
}

// NoticeResponse reports a command skipped by a no-op guard. Data carries
// the unchanged entity.
type NoticeResponse struct {
	Notice string      `json:"notice"`
	Data   interface{} `json:"data"`
}

// WarningResponse carries a soft warning alongside a successful mutation.
type WarningResponse struct {
	Warning string      `json:"warning"`
	Data    interface{} `json:"data"`
}

// PartialErrorResponse reports a saga that stopped halfway: the created
// entity exists, the follow-up step failed. Callers reconcile manually.
type PartialErrorResponse struct {
	Code  string      `json:"code"`
	Error string      `json:"error"`
	Data  interface{} `json:"data"`
}
