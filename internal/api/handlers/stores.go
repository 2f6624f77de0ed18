package handlers

import (
	"net/http"

	"field-ops-service/internal/api/dto"
	"field-ops-service/internal/ports"
)

const maxStoreLookup = 200

type StoreHandler struct {
	Repo ports.StoreRepository
}

// List returns details for the comma separated store ids in ?ids=.
func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	ids, err := parseIntList(r.URL.Query().Get("ids"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if len(ids) > maxStoreLookup {
		writeError(w, r, http.StatusBadRequest, "too many store ids")
		return
	}

	stores, err := h.Repo.GetStores(r.Context(), ids)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ListStoresResponse{Stores: toStoreResponses(stores)})
}
