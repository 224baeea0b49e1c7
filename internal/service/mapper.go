package service

import (
	"interview-assistant/internal/domain"
	"interview-assistant/internal/dto"
	"interview-assistant/internal/session"
)

func toQuestionResponse(q domain.Question) *dto.QuestionResponse {
	insights := make([]dto.AnswerInsightResponse, 0, len(q.AnswerInsights))
	for _, insight := range q.AnswerInsights {
		points := make([]dto.PointResponse, 0, len(insight.Points))
		for _, p := range insight.Points {
			points = append(points, dto.PointResponse{
				Title:         p.Title,
				Description:   p.Description,
				OriginalIndex: p.OriginalIndex,
			})
		}
		insights = append(insights, dto.AnswerInsightResponse{Category: string(insight.Category), Points: points})
	}
	related := q.RelatedQuestions
	if related == nil {
		related = []string{}
	}
	return &dto.QuestionResponse{
		ID:               q.ID,
		DisplayTitle:     q.DisplayTitle(),
		Question:         q.Question,
		ShortTitle:       q.ShortTitle,
		SkillLevel:       string(q.SkillLevel),
		CategoryID:       q.CategoryID,
		SubcategoryName:  q.SubcategoryName,
		SetID:            q.SetID,
		AnswerInsights:   insights,
		RelatedQuestions: related,
		Tags:             q.Tags,
	}
}

func toQuestionSummaries(qs []domain.Question) []dto.QuestionSummaryResponse {
	out := make([]dto.QuestionSummaryResponse, 0, len(qs))
	for _, q := range qs {
		out = append(out, dto.QuestionSummaryResponse{
			ID:              q.ID,
			DisplayTitle:    q.DisplayTitle(),
			SkillLevel:      string(q.SkillLevel),
			CategoryID:      q.CategoryID,
			SubcategoryName: q.SubcategoryName,
		})
	}
	return out
}

func toSessionResponse(st *session.Store, warning string) *dto.SessionResponse {
	state := st.Snapshot()
	status := st.Status()

	resp := &dto.SessionResponse{
		ID: st.ID(),
		State: dto.SessionStateResponse{
			SelectedLanguage:     state.SelectedLanguage,
			Notes:                state.NotesMap,
			Grades:               state.GradesMap,
			SelectedAnswerPoints: state.SelectedAnswerPointsMap,
		},
		Status: dto.SessionStatusResponse{
			Health:          string(status.Health),
			LastError:       status.LastError,
			PendingWrite:    status.PendingWrite,
			VersionMismatch: status.VersionMismatch,
		},
		Warning: warning,
	}
	if state.CurrentQuestion != nil {
		resp.State.CurrentQuestion = toQuestionResponse(*state.CurrentQuestion)
	}
	if !status.LastPersistedAt.IsZero() {
		t := status.LastPersistedAt
		resp.Status.LastPersistedAt = &t
	}
	return resp
}
