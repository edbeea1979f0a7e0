package handler

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

// NewMessageResponse is a success response carrying a user-facing message.
func NewMessageResponse(message string, data interface{}) *Response {
	return &Response{
		Status:  "success",
		Message: message,
		Data:    data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}
