package common

// Body models errors as JSON in the API
type Body struct {
	Message   string `json:"message" binding:"required" example:"ECMAScript does not have the edition [4]"`
	RequestId string `json:"request_id,omitempty" example:"5f0c8c2e9d4b4f6fa2b6e5f4f1e0d3c2"`
}

type ApiError struct {
	StatusCode int
	Body       Body
}

func (a *ApiError) Error() string {
	return a.Body.Message
}
