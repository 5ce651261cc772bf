package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"libretranslate/internal/config"
	"libretranslate/internal/language"
	"libretranslate/internal/models"
	"libretranslate/internal/storage"
	"libretranslate/internal/translator"
	"libretranslate/internal/transport"
)

// Client is the subset of translator.Client the service depends on.
type Client interface {
	Translate(ctx context.Context, source, target language.Language, input string) (*translator.Translator, error)
	ServerLanguages(ctx context.Context) ([]string, error)
	Endpoint() string
}

// StatsResult holds history stats
type StatsResult struct {
	Total int            `json:"total"`
	Pairs map[string]int `json:"pairs"`
}

// CheckResult reports reachability and which local languages the server lacks.
type CheckResult struct {
	Endpoint    string              `json:"endpoint"`
	Latency     time.Duration       `json:"latency"`
	Unsupported []language.Language `json:"unsupported"`
}

// Service provides all business logic operations
type Service struct {
	cfg    *config.Config
	store  *storage.SQLiteStorage
	client Client
	log    *logrus.Logger
}

// NewService creates a new service instance. store may be nil, which
// disables history.
func NewService(cfg *config.Config, store *storage.SQLiteStorage, client Client, log *logrus.Logger) *Service {
	return &Service{
		cfg:    cfg,
		store:  store,
		client: client,
		log:    log,
	}
}

// NewClient builds the LibreTranslate client described by cfg.
func NewClient(cfg *config.Config) *translator.Client {
	return translator.NewClient(
		transport.New(cfg.Translator.Timeout),
		translator.WithEndpoint(cfg.Translator.Endpoint),
		translator.WithFormat(cfg.Translator.Format),
	)
}

// Translate performs one translation and records it when history is on.
func (s *Service) Translate(ctx context.Context, source, target language.Language, input string) (*translator.Translator, error) {
	fields := logrus.Fields{
		"source": source.Code(),
		"target": target.Code(),
		"chars":  len(input),
	}

	start := time.Now()
	result, err := s.client.Translate(ctx, source, target, input)
	if err != nil {
		s.log.WithFields(fields).WithField("kind", translator.KindOf(err).String()).WithError(err).Warn("translation failed")
		return nil, err
	}
	s.log.WithFields(fields).WithField("elapsed", time.Since(start).Round(time.Millisecond)).Debug("translated")

	if s.store != nil {
		record := models.NewRecord(result, s.client.Endpoint())
		if err := s.store.InsertRecord(record); err != nil {
			s.log.WithError(err).Warn("failed to save translation to history")
		}
	}

	return result, nil
}

// History returns recent translations
func (s *Service) History(limit int) ([]*models.Record, error) {
	if s.store == nil {
		return nil, errors.New("history is disabled")
	}
	records, err := s.store.GetRecentRecords(limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get history")
	}
	return records, nil
}

// ClearHistory removes all stored translations
func (s *Service) ClearHistory() (int64, error) {
	if s.store == nil {
		return 0, errors.New("history is disabled")
	}
	return s.store.ClearHistory()
}

// Stats returns history statistics
func (s *Service) Stats() (*StatsResult, error) {
	if s.store == nil {
		return nil, errors.New("history is disabled")
	}
	total, pairs, err := s.store.GetStats()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get stats")
	}
	return &StatsResult{Total: total, Pairs: pairs}, nil
}

// Check asks /languages once. A transport failure means the endpoint is
// unreachable; an unreadable language list still counts as reachable.
func (s *Service) Check(ctx context.Context) (*CheckResult, error) {
	start := time.Now()
	codes, err := s.client.ServerLanguages(ctx)
	latency := time.Since(start)
	if err != nil && translator.IsTransport(err) {
		return nil, err
	}

	result := &CheckResult{
		Endpoint: s.client.Endpoint(),
		Latency:  latency,
	}
	if err != nil {
		s.log.WithError(err).Warn("could not list server languages")
		return result, nil
	}

	offered := make(map[string]bool, len(codes))
	for _, c := range codes {
		offered[c] = true
	}
	for _, l := range language.All() {
		if !offered[l.Code()] {
			result.Unsupported = append(result.Unsupported, l)
		}
	}
	return result, nil
}

// Defaults returns the configured default source and target.
func (s *Service) Defaults() (language.Language, language.Language) {
	return s.cfg.Translator.SourceLanguage(), s.cfg.Translator.TargetLanguage()
}
