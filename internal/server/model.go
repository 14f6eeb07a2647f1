package server

import "encoding/json"

// Response is the envelope of all json responses.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Ok wraps the data into a successful response.
func Ok(data interface{}) ([]byte, int, error) {
	return Json(Response{
		Success: true,
		Data:    data,
	}, 200)
}

// Json marshals the value and returns it with the given code.
func Json(v interface{}, code int) ([]byte, int, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, 500, err
	}
	return b, code, nil
}
