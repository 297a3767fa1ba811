package metrics

import (
	"io"
	"net/http"
	"sort"
	"strconv"
	"sync"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// Metric family names.
const (
	requestsName    = "credatlas_http_requests_total"
	datasetRowsName = "credatlas_dataset_rows"
)

// requestKey identifies one requests_total series.
type requestKey struct {
	path string
	code int
}

// Registry is a minimal metrics collector: a counter per (path, code) and a
// gauge for the dataset row count. Safe for concurrent use.
type Registry struct {
	mu          sync.Mutex
	requests    map[requestKey]uint64
	datasetRows int
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{requests: make(map[requestKey]uint64)}
}

// IncRequest counts one served request for the given route pattern and
// HTTP status code.
func (r *Registry) IncRequest(path string, code int) {
	r.mu.Lock()
	r.requests[requestKey{path: path, code: code}]++
	r.mu.Unlock()
}

// SetDatasetRows records the current number of rows in the served table.
func (r *Registry) SetDatasetRows(n int) {
	r.mu.Lock()
	r.datasetRows = n
	r.mu.Unlock()
}

// ServeHTTP renders all families in Prometheus text exposition format.
func (r *Registry) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	format := expfmt.NewFormat(expfmt.TypeTextPlain)
	w.Header().Set("Content-Type", string(format))
	if err := r.Write(w); err != nil {
		// Headers are already out; nothing useful left to send.
		return
	}
}

// Write encodes all metric families to w in text exposition format.
// Series are sorted for deterministic output.
func (r *Registry) Write(w io.Writer) error {
	r.mu.Lock()
	keys := make([]requestKey, 0, len(r.requests))
	for k := range r.requests {
		keys = append(keys, k)
	}
	counts := make(map[requestKey]uint64, len(r.requests))
	for k, v := range r.requests {
		counts[k] = v
	}
	rows := r.datasetRows
	r.mu.Unlock()

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].path != keys[j].path {
			return keys[i].path < keys[j].path
		}
		return keys[i].code < keys[j].code
	})

	reqFamily := &dto.MetricFamily{
		Name: ptr(requestsName),
		Help: ptr("Total HTTP requests served, by route and status code."),
		Type: dto.MetricType_COUNTER.Enum(),
	}
	for _, k := range keys {
		reqFamily.Metric = append(reqFamily.Metric, &dto.Metric{
			Label: []*dto.LabelPair{
				{Name: ptr("code"), Value: ptr(strconv.Itoa(k.code))},
				{Name: ptr("path"), Value: ptr(k.path)},
			},
			Counter: &dto.Counter{Value: ptr(float64(counts[k]))},
		})
	}

	rowsFamily := &dto.MetricFamily{
		Name: ptr(datasetRowsName),
		Help: ptr("Number of rows in the in-memory dataset."),
		Type: dto.MetricType_GAUGE.Enum(),
		Metric: []*dto.Metric{
			{Gauge: &dto.Gauge{Value: ptr(float64(rows))}},
		},
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range []*dto.MetricFamily{rowsFamily, reqFamily} {
		if len(mf.Metric) == 0 {
			continue
		}
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

func ptr[T any](v T) *T { return &v }
