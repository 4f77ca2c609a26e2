package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"registrar/internal/audit"
	"registrar/internal/platform/config"
	"registrar/internal/translation/engine"
	"registrar/internal/translation/store"
	dErrors "registrar/pkg/domain-errors"
)

// echoProvider translates by tagging the target language, so round trips are
// assertable without a real provider.
type echoProvider struct {
	fail bool
}

func (p *echoProvider) DetectLanguage(context.Context, string) (string, error) {
	return "", errors.New("unused")
}

func (p *echoProvider) Translate(_ context.Context, text, _, to string) (string, error) {
	if p.fail {
		return "", errors.New("provider down")
	}
	return "[" + to + "] " + text, nil
}

type fixedDetector struct{ lang string }

func (d fixedDetector) Detect(context.Context, string) string { return d.lang }

type ServiceSuite struct {
	suite.Suite
	store      *store.InMemoryStore
	provider   *echoProvider
	auditStore *audit.InMemoryStore
	service    *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = store.NewInMemory()
	s.provider = &echoProvider{}
	s.auditStore = audit.NewInMemoryStore()

	eng, err := engine.New(s.store, s.provider, fixedDetector{lang: "vi"}, config.TranslationConfig{
		SupportedLanguages:   []string{"en", "vi"},
		FieldSizeCap:         5000,
		TranslateConcurrency: 2,
	})
	s.Require().NoError(err)

	s.service, err = New(eng, s.store, WithAuditPublisher(audit.NewPublisher(s.auditStore)))
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestRoundTrip() {
	ctx := context.Background()

	err := s.service.TranslateAndSave(ctx, "Faculty", "F1", map[string]string{"title": "Khoa CNTT"})
	s.Require().NoError(err)

	viRows, err := s.service.GetAllTranslations(ctx, "Faculty", "F1", "title", "vi")
	s.Require().NoError(err)
	s.Require().Len(viRows, 1)
	s.Equal("Khoa CNTT", viRows[0].Value, "source language row keeps the original text")

	enRows, err := s.service.GetAllTranslations(ctx, "Faculty", "F1", "title", "en")
	s.Require().NoError(err)
	s.Require().Len(enRows, 1)
	s.Equal("[en] Khoa CNTT", enRows[0].Value)
}

func (s *ServiceSuite) TestRoundTripUnderFailingProvider() {
	ctx := context.Background()
	s.provider.fail = true

	err := s.service.TranslateAndSave(ctx, "Faculty", "F1", map[string]string{"title": "Khoa CNTT"})
	s.Require().NoError(err)

	enRows, err := s.service.GetAllTranslations(ctx, "Faculty", "F1", "title", "en")
	s.Require().NoError(err)
	s.Empty(enRows, "no target row under a failing provider")

	viRows, err := s.service.GetAllTranslations(ctx, "Faculty", "F1", "title", "vi")
	s.Require().NoError(err)
	s.Len(viRows, 1)
}

func (s *ServiceSuite) TestGetTranslation() {
	ctx := context.Background()

	s.Run("missing row returns not found", func() {
		_, err := s.service.GetTranslation(ctx, "Faculty", "F1", "title", "en")
		s.Require().Error(err)
		s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
	})

	s.Run("missing arguments return bad request", func() {
		_, err := s.service.GetTranslation(ctx, "Faculty", "", "title", "en")
		s.Require().Error(err)
		s.Equal(dErrors.CodeBadRequest, dErrors.CodeOf(err))
	})

	s.Run("existing row is returned", func() {
		err := s.service.TranslateAndSave(ctx, "Faculty", "F1", map[string]string{"title": "Khoa CNTT"})
		s.Require().NoError(err)

		row, err := s.service.GetTranslation(ctx, "Faculty", "F1", "title", "en")
		s.Require().NoError(err)
		s.Equal("[en] Khoa CNTT", row.Value)
	})
}

func (s *ServiceSuite) TestGetAllTranslationsIsIdempotent() {
	ctx := context.Background()

	err := s.service.TranslateAndSave(ctx, "Faculty", "F1", map[string]string{"title": "Khoa CNTT", "description": "Mô tả"})
	s.Require().NoError(err)

	first, err := s.service.GetAllTranslations(ctx, "Faculty", "F1", "", "")
	s.Require().NoError(err)
	second, err := s.service.GetAllTranslations(ctx, "Faculty", "F1", "", "")
	s.Require().NoError(err)
	s.Equal(first, second)
}

func (s *ServiceSuite) TestDeleteTranslations() {
	ctx := context.Background()

	err := s.service.TranslateAndSave(ctx, "Faculty", "F1", map[string]string{"title": "Khoa CNTT"})
	s.Require().NoError(err)

	count, err := s.service.DeleteTranslations(ctx, "Faculty", "F1")
	s.Require().NoError(err)
	s.Equal(2, count)

	rows, err := s.service.GetAllTranslations(ctx, "Faculty", "F1", "", "")
	s.Require().NoError(err)
	s.Empty(rows)
}

func (s *ServiceSuite) TestReplaceTranslations() {
	ctx := context.Background()

	err := s.service.TranslateAndSave(ctx, "Faculty", "F1", map[string]string{"title": "Khoa CNTT", "description": "Mô tả"})
	s.Require().NoError(err)

	err = s.service.ReplaceTranslations(ctx, "Faculty", "F1", map[string]string{"title": "Khoa Công nghệ Thông tin"})
	s.Require().NoError(err)

	rows, err := s.service.GetAllTranslations(ctx, "Faculty", "F1", "", "")
	s.Require().NoError(err)
	s.Len(rows, 2, "stale description rows are gone after replace")
}

func (s *ServiceSuite) TestAuditTrail() {
	ctx := context.Background()

	err := s.service.TranslateAndSave(ctx, "Faculty", "F1", map[string]string{"title": "Khoa CNTT"})
	s.Require().NoError(err)
	_, err = s.service.DeleteTranslations(ctx, "Faculty", "F1")
	s.Require().NoError(err)

	events, err := s.auditStore.ListByEntity(ctx, "Faculty", "F1")
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal(audit.ActionSaved, events[0].Action)
	s.Equal(audit.ActionDeleted, events[1].Action)
	s.False(events[0].Timestamp.IsZero())
}
