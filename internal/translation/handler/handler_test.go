package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registrar/internal/platform/config"
	"registrar/internal/translation/engine"
	"registrar/internal/translation/models"
	"registrar/internal/translation/service"
	"registrar/internal/translation/store"
	"registrar/pkg/testutil"
)

type echoProvider struct{}

func (echoProvider) DetectLanguage(context.Context, string) (string, error) {
	return "", errors.New("unused")
}

func (echoProvider) Translate(_ context.Context, text, _, to string) (string, error) {
	return "[" + to + "] " + text, nil
}

type fixedDetector struct{}

func (fixedDetector) Detect(context.Context, string) string { return "vi" }

func newRouter(t *testing.T) chi.Router {
	t.Helper()

	st := store.NewInMemory()
	eng, err := engine.New(st, echoProvider{}, fixedDetector{}, config.TranslationConfig{
		SupportedLanguages:   []string{"en", "vi"},
		FieldSizeCap:         5000,
		TranslateConcurrency: 2,
	})
	require.NoError(t, err)

	svc, err := service.New(eng, st)
	require.NoError(t, err)

	router := chi.NewRouter()
	New(svc, slog.New(slog.DiscardHandler)).Register(router)
	return router
}

func TestSaveAndList(t *testing.T) {
	router := newRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/translations/Faculty/F1",
		map[string]any{"fields": map[string]string{"title": "Khoa CNTT"}})
	rr := testutil.DoRequest(router, req)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/translations/Faculty/F1"))
	require.Equal(t, http.StatusOK, rr.Code)

	resp := testutil.UnmarshalResponse[struct {
		Translations []models.Translation `json:"translations"`
	}](t, rr)
	assert.Len(t, resp.Translations, 2)
}

func TestSaveValidation(t *testing.T) {
	router := newRouter(t)

	t.Run("empty fields map is rejected", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/translations/Faculty/F1",
			map[string]any{"fields": map[string]string{}})
		rr := testutil.DoRequest(router, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		body := testutil.UnmarshalErrorResponse(t, rr)
		assert.Equal(t, "bad_request", body["error"])
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodPost, "/translations/Faculty/F1")
		rr := testutil.DoRequest(router, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetSingleTranslation(t *testing.T) {
	router := newRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/translations/Faculty/F1",
		map[string]any{"fields": map[string]string{"title": "Khoa CNTT"}})
	require.Equal(t, http.StatusNoContent, testutil.DoRequest(router, req).Code)

	t.Run("existing row", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/translations/Faculty/F1/title/en"))
		require.Equal(t, http.StatusOK, rr.Code)

		row := testutil.UnmarshalResponse[models.Translation](t, rr)
		assert.Equal(t, "[en] Khoa CNTT", row.Value)
	})

	t.Run("missing row returns 404", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/translations/Faculty/F1/title/fr"))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListFilters(t *testing.T) {
	router := newRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/translations/Faculty/F1",
		map[string]any{"fields": map[string]string{"title": "Khoa CNTT", "description": "Mô tả"}})
	require.Equal(t, http.StatusNoContent, testutil.DoRequest(router, req).Code)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/translations/Faculty/F1?lang=en"))
	require.Equal(t, http.StatusOK, rr.Code)

	resp := testutil.UnmarshalResponse[struct {
		Translations []models.Translation `json:"translations"`
	}](t, rr)
	require.Len(t, resp.Translations, 2)
	for _, row := range resp.Translations {
		assert.Equal(t, "en", row.Lang)
	}
}

func TestReplaceAndDelete(t *testing.T) {
	router := newRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/translations/Faculty/F1",
		map[string]any{"fields": map[string]string{"title": "Khoa CNTT", "description": "Mô tả"}})
	require.Equal(t, http.StatusNoContent, testutil.DoRequest(router, req).Code)

	req = testutil.NewJSONRequest(t, http.MethodPut, "/translations/Faculty/F1",
		map[string]any{"fields": map[string]string{"title": "Khoa Công nghệ Thông tin"}})
	require.Equal(t, http.StatusNoContent, testutil.DoRequest(router, req).Code)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/translations/Faculty/F1"))
	resp := testutil.UnmarshalResponse[struct {
		Translations []models.Translation `json:"translations"`
	}](t, rr)
	assert.Len(t, resp.Translations, 2, "replace discarded the stale description rows")

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodDelete, "/translations/Faculty/F1"))
	require.Equal(t, http.StatusOK, rr.Code)
	deleted := testutil.UnmarshalResponse[map[string]int](t, rr)
	assert.Equal(t, 2, (*deleted)["deleted"])
}
