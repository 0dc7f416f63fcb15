package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/jadralna-sola/sailing-school-web/internal/catalog"
	"github.com/rs/zerolog"
)

type CatalogAPIHandler struct {
	catalog *catalog.Store
	log     zerolog.Logger
}

func NewCatalogAPIHandler(catalogStore *catalog.Store, log zerolog.Logger) *CatalogAPIHandler {
	return &CatalogAPIHandler{catalog: catalogStore, log: log}
}

type AvailableCoursesOutput struct {
	Body []catalog.Course
}

// HandleAvailableCourses returns the stored catalog verbatim. A catalog that
// has never been written is an empty array, not an error; the client does
// all presentation computation.
func (h *CatalogAPIHandler) HandleAvailableCourses(ctx context.Context, input *struct{}) (*AvailableCoursesOutput, error) {
	courses, _, err := h.catalog.Load(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to load catalog")
		return nil, huma.Error500InternalServerError("Napaka pri nalaganju tečajev")
	}

	return &AvailableCoursesOutput{Body: courses}, nil
}
