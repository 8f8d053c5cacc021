package rest

import (
	"net/http"

	"github.com/heartmarshall/carbontrack-backend/internal/carbon"
	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

type factorTableResponse struct {
	Category    string             `json:"category"`
	SubTypeKey  string             `json:"subTypeKey"`
	QuantityKey string             `json:"quantityKey"`
	Unit        string             `json:"unit"`
	Factors     map[string]float64 `json:"factors"`
}

// factorTables lists the estimator's factor tables in category order.
// Categories without a table, such as "other", are omitted.
func factorTables() []factorTableResponse {
	out := make([]factorTableResponse, 0, len(domain.AllCategories()))
	for _, c := range domain.AllCategories() {
		t, ok := carbon.Table(c)
		if !ok {
			continue
		}
		factors := make(map[string]float64, len(t.Factors))
		for _, st := range carbon.SubTypes(c) {
			factors[string(st)] = t.Factors[st]
		}
		out = append(out, factorTableResponse{
			Category:    c.String(),
			SubTypeKey:  t.SubTypeKey,
			QuantityKey: t.QuantityKey,
			Unit:        t.Unit,
			Factors:     factors,
		})
	}
	return out
}

// Factors handles GET /api/factors.
func Factors(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, factorTables())
}
