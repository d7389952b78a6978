package restapi

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Code int    `json:"code"`
	Text string `json:"text"`
}

func (api *RestAPI) sendNotFound(w http.ResponseWriter, r *http.Request) {
	setJSONResponseType(&w)
	w.WriteHeader(http.StatusNotFound)

	response := errorResponse{
		Code: http.StatusNotFound,
		Text: "resource not found",
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		api.Logger.Error("failed to encode not found response", "error", err)
	}
}

func (api *RestAPI) sendBadRequest(w http.ResponseWriter, r *http.Request, text string) {
	setJSONResponseType(&w)
	w.WriteHeader(http.StatusBadRequest)

	response := errorResponse{
		Code: http.StatusBadRequest,
		Text: text,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		api.Logger.Error("failed to encode bad request response", "error", err)
	}
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.Logger.Error("internal server error", "error", err, "path", r.URL.Path)

	setJSONResponseType(&w)
	w.WriteHeader(http.StatusInternalServerError)

	response := errorResponse{
		Code: http.StatusInternalServerError,
		Text: "internal server error",
	}

	encoderErr := json.NewEncoder(w).Encode(response)
	if encoderErr != nil {
		api.Logger.Error("failed to encode server error response", "error", encoderErr)
	}
}

func setJSONResponseType(w *http.ResponseWriter) {
	(*w).Header().Set("Content-Type", "application/json")
}
