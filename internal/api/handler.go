package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/credatlas/credatlas/internal/metrics"
	"github.com/credatlas/credatlas/internal/store"
)

// Pagination bounds enforced at the boundary. The store never sees values
// outside these ranges.
const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 100
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Handler is the HTTP handler for all endpoints. It reads from the dataset
// store and returns JSON responses.
type Handler struct {
	store *store.Store
	mux   *http.ServeMux
}

// New creates a Handler wired to the given dataset store and registers all
// routes. Responses are counted in reg per route pattern and status code.
func New(st *store.Store, reg *metrics.Registry) http.Handler {
	h := &Handler{store: st, mux: http.NewServeMux()}

	h.mux.HandleFunc("/", h.root)
	h.mux.HandleFunc("/records", h.listRecords)
	h.mux.HandleFunc("/records/", h.recordsByID) // subtree — extracts {insid}
	h.mux.HandleFunc("/stats", h.stats)
	h.mux.Handle("/metrics", reg)

	return instrument(reg, accessLog(h))
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// root returns GET / — a welcome payload with the total record count and a
// directory of the available endpoints. The "/" pattern also catches every
// unknown path, which gets a plain 404.
func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		jsonErr(w, http.StatusNotFound, "Not Found")
		return
	}
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	jsonResp(w, http.StatusOK, WelcomeResponse{
		Message:      "Welcome to the Institution Data API",
		TotalRecords: h.store.Len(),
		Endpoints: Endpoints{
			AllData:    "/records",
			SearchByID: "/records/{insid}",
			Stats:      "/stats",
			Metrics:    "/metrics",
		},
	})
}

// listRecords returns GET /records — a filtered, paginated window over the
// dataset in source row order.
func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	qs := r.URL.Query()

	page, err := intParam(qs.Get("page"), DefaultPage)
	if err != nil || page < 1 {
		jsonErr(w, http.StatusUnprocessableEntity, "page must be an integer >= 1")
		return
	}
	size, err := intParam(qs.Get("size"), DefaultSize)
	if err != nil || size < 1 || size > MaxSize {
		jsonErr(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("size must be an integer between 1 and %d", MaxSize))
		return
	}

	data, total := h.store.List(store.Query{
		InsName:  qs.Get("insname"),
		CredDesc: qs.Get("creddesc"),
		Page:     page,
		Size:     size,
	})

	jsonResp(w, http.StatusOK, RecordsResponse{
		Page:          page,
		Size:          len(data),
		TotalFiltered: total,
		Data:          data,
	})
}

// recordsByID returns GET /records/{insid} — every record for one institution
// ID. INSID is not unique, so the result may hold several records.
func (h *Handler) recordsByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	raw := strings.TrimPrefix(r.URL.Path, "/records/")
	if raw == "" {
		// Redirect bare /records/ to the list handler.
		h.listRecords(w, r)
		return
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		jsonErr(w, http.StatusUnprocessableEntity, "insid must be an integer")
		return
	}

	data, err := h.store.ByInstitution(id)
	if err != nil {
		var nf *store.NotFoundError
		if errors.As(err, &nf) {
			jsonErr(w, http.StatusNotFound,
				fmt.Sprintf("No records found for INSID %d", nf.ID))
			return
		}
		jsonErr(w, http.StatusInternalServerError, "internal error")
		return
	}

	jsonResp(w, http.StatusOK, InstitutionResponse{
		InsID: id,
		Count: len(data),
		Data:  data,
	})
}

// stats returns GET /stats — aggregate counts over the full dataset,
// independent of any filter.
func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	st := h.store.Stats()
	jsonResp(w, http.StatusOK, StatsResponse{
		UniqueInstitutions: st.UniqueInstitutions,
		UniqueCredentials:  st.UniqueCredentials,
		CredentialLevels:   st.CredentialLevels,
	})
}

// --- helpers ----------------------------------------------------------------

// intParam parses an optional integer query parameter, falling back to def
// when the parameter is absent.
func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func jsonResp(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, detailResponse{Detail: msg})
}
