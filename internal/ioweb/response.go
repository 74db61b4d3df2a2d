package ioweb

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Response is the envelope of every API answer. Successful answers
// carry Data, failed ones carry Message.
type Response struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func success(data any) Response {
	return Response{Status: statusSuccess, Data: data}
}
