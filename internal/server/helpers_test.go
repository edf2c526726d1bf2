package server

import (
	"encoding/json"
	"net/http/httptest"
)

func decodeBody(w *httptest.ResponseRecorder, dst any) error {
	return json.NewDecoder(w.Result().Body).Decode(dst)
}
