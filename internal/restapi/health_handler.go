package restapi

import (
	"encoding/json"
	"net/http"
)

// coreDatasets are the artifacts the frontend needs at minimum. The health
// endpoint reports which of them are currently present so deploys can gate
// on a complete export.
var coreDatasets = []string{
	"routes.json",
	"isochrone_stations.arrow",
	"isochrones.arrow",
	"isochrones_meta.json",
}

type healthResponse struct {
	Status   string          `json:"status"`
	Env      string          `json:"env"`
	Datasets map[string]bool `json:"datasets"`
}

func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	datasets := make(map[string]bool, len(coreDatasets))
	complete := true
	for _, name := range coreDatasets {
		present := api.datasetExists(name)
		datasets[name] = present
		if !present {
			complete = false
		}
	}

	status := "ok"
	if !complete {
		status = "degraded"
	}

	setJSONResponseType(&w)
	err := json.NewEncoder(w).Encode(healthResponse{
		Status:   status,
		Env:      api.Config.Env,
		Datasets: datasets,
	})
	if err != nil {
		api.serverErrorResponse(w, r, err)
	}
}
