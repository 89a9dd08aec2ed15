package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/targets-navigator/internal/dossier"
	"github.com/sells-group/targets-navigator/internal/model"
	"github.com/sells-group/targets-navigator/internal/ranking"
)

var errBadRequest = eris.New("bad request")

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// multi reads a repeatable, comma-separable query parameter.
func multi(q url.Values, name string) []string {
	var out []string
	for _, raw := range q[name] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func optFloat(q url.Values, name string) (*float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, eris.Wrapf(errBadRequest, "api: %s must be a number", name)
	}
	return &v, nil
}

func optInt(q url.Values, name string) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, eris.Wrapf(errBadRequest, "api: %s must be a non-negative integer", name)
	}
	return v, nil
}

// parseFilters reads the filter dimensions shared by the list and chart
// endpoints.
func parseFilters(q url.Values) (model.CompanyFilters, error) {
	f := model.CompanyFilters{
		Countries:         multi(q, "country"),
		Tiers:             multi(q, "tier"),
		RevenueBands:      multi(q, "revenue_band"),
		RankingCategories: multi(q, "category"),
		Industries:        multi(q, "industry"),
		Tags:              multi(q, "tag"),
	}
	var err error
	if f.MinScore, err = optFloat(q, "min_score"); err != nil {
		return f, err
	}
	if f.MaxScore, err = optFloat(q, "max_score"); err != nil {
		return f, err
	}
	return f, nil
}

// parseListQuery reads filters, sort and window from the query string.
func parseListQuery(q url.Values) (dossier.ListQuery, error) {
	var (
		lq  dossier.ListQuery
		err error
	)
	if lq.Filters, err = parseFilters(q); err != nil {
		return lq, err
	}
	if s := q.Get("sort"); s != "" {
		if lq.Sort, err = ranking.ParseSortKey(s); err != nil {
			return lq, err
		}
	}
	if d := q.Get("dir"); d != "" {
		if lq.Dir, err = ranking.ParseDirection(d); err != nil {
			return lq, err
		}
	}
	if lq.Limit, err = optInt(q, "limit"); err != nil {
		return lq, err
	}
	if lq.Offset, err = optInt(q, "offset"); err != nil {
		return lq, err
	}
	return lq, nil
}

type keysRequest struct {
	Keys []string `json:"keys"`
}

// decodeKeys reads {"keys": [...]} from the body, dropping blanks.
func decodeKeys(w http.ResponseWriter, r *http.Request) ([]string, error) {
	var req keysRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(req.Keys))
	for _, k := range req.Keys {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil, eris.Wrap(errBadRequest, "api: keys are required")
	}
	return keys, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return eris.Wrapf(errBadRequest, "api: invalid request body: %v", err)
	}
	return nil
}
