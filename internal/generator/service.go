package generator

import (
	"context"
	"time"

	apperrors "github.com/askillindva/XmlTemplateGenerator/internal/common/errors"
	"github.com/askillindva/XmlTemplateGenerator/internal/common/logger"
	"github.com/askillindva/XmlTemplateGenerator/internal/common/metrics"
	"github.com/askillindva/XmlTemplateGenerator/internal/common/validation"
)

// Recorder is the activity log surface the orchestrator needs. The store is
// opened once at process start and injected here.
type Recorder interface {
	Record(ctx context.Context, templateName string, submission map[string]string, document string) (int64, error)
}

// Service sequences one template interaction: list, form, generate.
type Service struct {
	store    *Store
	recorder Recorder
	logger   logger.Logger
}

func NewService(store *Store, recorder Recorder, log logger.Logger) *Service {
	return &Service{
		store:    store,
		recorder: recorder,
		logger:   log.WithFields(map[string]interface{}{"component": "generator"}),
	}
}

// FormModel is what the form page needs: the ordered field descriptors for a
// template's current variables.
type FormModel struct {
	TemplateName string
	Fields       []Field
}

// Generation is the outcome of one successful generate call.
type Generation struct {
	TemplateName string
	Document     string
	Submission   map[string]string
	LogID        int64
}

// ListTemplates returns the names of the currently available templates.
func (s *Service) ListTemplates() []string {
	metrics.TemplateListings.Inc()
	return s.store.List()
}

// FormModel loads the template and derives its form fields. The template is
// read fresh; nothing is cached between the form render and the submission.
func (s *Service) FormModel(name string) (*FormModel, error) {
	text, err := s.store.Load(name)
	if err != nil {
		return nil, err
	}
	return &FormModel{
		TemplateName: name,
		Fields:       Fields(ExtractVariables(text)),
	}, nil
}

// Generate validates the submission against the template's current variable
// set, renders the document and records it in the activity log. Variables are
// re-extracted here, not taken from a snapshot of the form: a template edited
// between form display and submission changes the contract. A document that
// could not be logged is treated as a failed generation and never returned.
func (s *Service) Generate(ctx context.Context, name string, submission map[string]string) (*Generation, error) {
	start := time.Now()

	text, err := s.store.Load(name)
	if err != nil {
		s.recordFailure(name, err)
		return nil, err
	}

	variables := ExtractVariables(text)
	result := validation.ValidateSubmission(submission, variables)
	if !result.Valid {
		err := apperrors.NewValidationFailedError(result.Missing(), result.Unexpected())
		s.recordFailure(name, err)
		return nil, err
	}

	document, err := Render(text, submission)
	if err != nil {
		s.recordFailure(name, err)
		return nil, err
	}

	logID, err := s.recorder.Record(ctx, name, submission, document)
	if err != nil {
		s.recordFailure(name, err)
		return nil, err
	}

	metrics.GenerationsCompleted.WithLabelValues(name).Inc()
	metrics.GenerationDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	s.logger.Info("generated document", map[string]interface{}{
		"templateName": name,
		"variables":    len(variables),
		"logId":        logID,
	})

	return &Generation{
		TemplateName: name,
		Document:     document,
		Submission:   submission,
		LogID:        logID,
	}, nil
}

func (s *Service) recordFailure(name string, err error) {
	std := apperrors.Normalize(err)
	metrics.GenerationsFailed.WithLabelValues(name, string(std.Code)).Inc()
	s.logger.WithError(err).Warn("generation failed", map[string]interface{}{
		"templateName": name,
		"errorCode":    string(std.Code),
	})
}
