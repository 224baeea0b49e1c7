package service

import (
	"context"
	"strings"

	"interview-assistant/internal/domain"
	"interview-assistant/internal/dto"
	"interview-assistant/internal/logger"
	"interview-assistant/internal/session"
	"interview-assistant/internal/validation"

	"go.uber.org/zap"
)

// SessionManager hosts live sessions.
type SessionManager interface {
	Create(ctx context.Context) *session.Store
	Get(ctx context.Context, id string) (*session.Store, session.RestoreResult, error)
	Clear(ctx context.Context, id string) error
	Len() int
	Ping(ctx context.Context) error
	Degraded() bool
}

// SessionService defines the interface for interviewer session operations
type SessionService interface {
	CreateSession(ctx context.Context) (*dto.SessionResponse, error)
	GetSession(ctx context.Context, id string) (*dto.SessionResponse, error)
	UpdateSession(ctx context.Context, id string, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error)
	SetNote(ctx context.Context, id, questionID, text string) (*dto.SessionResponse, error)
	SetGrade(ctx context.Context, id, questionID string, rating int) (*dto.SessionResponse, error)
	TogglePoint(ctx context.Context, id, questionID string, req *dto.TogglePointRequest) (*dto.TogglePointResponse, error)
	ClearSession(ctx context.Context, id string, confirmed bool) error
	Health(ctx context.Context) *dto.HealthResponse
}

type sessionService struct {
	manager   SessionManager
	catalog   Catalog
	validator *validation.Validator
	backend   string
}

// NewSessionService creates a new instance of sessionService. backend names
// the storage in health reports.
func NewSessionService(manager SessionManager, catalog Catalog, backend string) SessionService {
	return &sessionService{
		manager:   manager,
		catalog:   catalog,
		validator: validation.NewValidator(),
		backend:   backend,
	}
}

func (s *sessionService) CreateSession(ctx context.Context) (*dto.SessionResponse, error) {
	st := s.manager.Create(ctx)
	logger.Get().Info("Session created", zap.String("session_id", st.ID()))
	return toSessionResponse(st, ""), nil
}

func (s *sessionService) load(ctx context.Context, id string) (*session.Store, string, error) {
	st, res, err := s.manager.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return st, res.Warning, nil
}

func (s *sessionService) GetSession(ctx context.Context, id string) (*dto.SessionResponse, error) {
	st, warning, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(st, warning), nil
}

// UpdateSession validates the whole request before applying any of it.
func (s *sessionService) UpdateSession(ctx context.Context, id string, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error) {
	var errs domain.ValidationErrors
	patch := domain.StatePatch{
		SelectedLanguage:        req.SelectedLanguage,
		NotesMap:                req.Notes,
		GradesMap:               req.Grades,
		SelectedAnswerPointsMap: req.SelectedAnswerPoints,
	}
	if req.SelectedLanguage != nil && strings.TrimSpace(*req.SelectedLanguage) == "" {
		errs = append(errs, domain.NewMissingFieldError("selected_language"))
	}
	for qid, rating := range req.Grades {
		errs = append(errs, s.validator.ValidateGrade(rating)...)
		if _, ok := s.catalog.ByID(qid); !ok {
			errs = append(errs, domain.NewInvalidFormatError("grades", qid))
		}
	}
	for qid, text := range req.Notes {
		errs = append(errs, s.validator.ValidateNote(text)...)
		if _, ok := s.catalog.ByID(qid); !ok {
			errs = append(errs, domain.NewInvalidFormatError("notes", qid))
		}
	}
	for qid, points := range req.SelectedAnswerPoints {
		q, ok := s.catalog.ByID(qid)
		if !ok {
			errs = append(errs, domain.NewInvalidFormatError("selected_answer_points", qid))
			continue
		}
		for key := range points {
			ci, pi, ok := domain.ParsePointKey(key)
			if !ok {
				errs = append(errs, domain.NewInvalidFormatError("selected_answer_points", key))
				continue
			}
			errs = append(errs, s.validator.ValidatePoint(q, ci, pi)...)
		}
	}
	if req.CurrentQuestionID != nil {
		if *req.CurrentQuestionID == "" {
			patch.ClearCurrentQuestion = true
		} else if q, ok := s.catalog.ByID(*req.CurrentQuestionID); ok {
			patch.CurrentQuestion = &q
		} else {
			return nil, domain.NewQuestionNotFoundError(*req.CurrentQuestionID)
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	st, warning, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	st.Update(patch)
	return toSessionResponse(st, warning), nil
}

func (s *sessionService) question(id string) (domain.Question, error) {
	q, ok := s.catalog.ByID(id)
	if !ok {
		return domain.Question{}, domain.NewQuestionNotFoundError(id)
	}
	return q, nil
}

func (s *sessionService) SetNote(ctx context.Context, id, questionID, text string) (*dto.SessionResponse, error) {
	if errs := s.validator.ValidateNote(text); len(errs) > 0 {
		return nil, errs
	}
	if _, err := s.question(questionID); err != nil {
		return nil, err
	}
	st, warning, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	st.SetNote(questionID, text)
	return toSessionResponse(st, warning), nil
}

func (s *sessionService) SetGrade(ctx context.Context, id, questionID string, rating int) (*dto.SessionResponse, error) {
	if errs := s.validator.ValidateGrade(rating); len(errs) > 0 {
		return nil, errs
	}
	if _, err := s.question(questionID); err != nil {
		return nil, err
	}
	st, warning, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := st.SetGrade(questionID, rating); err != nil {
		return nil, err
	}
	return toSessionResponse(st, warning), nil
}

func (s *sessionService) TogglePoint(ctx context.Context, id, questionID string, req *dto.TogglePointRequest) (*dto.TogglePointResponse, error) {
	q, err := s.question(questionID)
	if err != nil {
		return nil, err
	}
	if errs := s.validator.ValidatePoint(q, req.CategoryIndex, req.PointIndex); len(errs) > 0 {
		return nil, errs
	}
	st, _, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	selected := st.TogglePoint(questionID, req.CategoryIndex, req.PointIndex)
	return &dto.TogglePointResponse{
		QuestionID: questionID,
		Key:        domain.PointKey(req.CategoryIndex, req.PointIndex),
		Selected:   selected,
	}, nil
}

func (s *sessionService) ClearSession(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return domain.NewConfirmationRequiredError("clearing a session")
	}
	if err := s.manager.Clear(ctx, id); err != nil {
		return err
	}
	logger.Get().Info("Session cleared", zap.String("session_id", id))
	return nil
}

func (s *sessionService) Health(ctx context.Context) *dto.HealthResponse {
	resp := &dto.HealthResponse{
		Status:    "ok",
		Storage:   "ok",
		Backend:   s.backend,
		Degraded:  s.manager.Degraded(),
		Questions: s.catalog.Len(),
		Sessions:  s.manager.Len(),
	}
	if err := s.manager.Ping(ctx); err != nil {
		logger.Get().Warn("Session storage ping failed", zap.Error(err))
		resp.Storage = "unavailable"
		resp.Degraded = true
	}
	if resp.Degraded {
		resp.Status = "degraded"
	}
	return resp
}
