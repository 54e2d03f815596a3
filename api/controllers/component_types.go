package controllers

import (
	"net/http"

	"github.com/elektrolab/stockroom-backend/api/responses"
	"github.com/elektrolab/stockroom-backend/pkg/enums"
)

type componentTypeOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Table string `json:"table"`
}

// ListComponentTypes returns the fixed component category catalog.
func ListComponentTypes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		types := enums.ComponentTypes()
		options := make([]componentTypeOption, 0, len(types))
		for _, t := range types {
			options = append(options, componentTypeOption{
				Value: t.String(),
				Label: t.Label(),
				Table: t.Table(),
			})
		}
		responses.WriteSuccess(w, options)
	}
}
