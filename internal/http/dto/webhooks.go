package dto

const StatusSuccess = "success"

type StatusResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	CodeBadRequest      = "bad_request"
	CodePayloadTooLarge = "payload_too_large"
)
