package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/qaztour/qaztour-api/internal/ai"
	"github.com/qaztour/qaztour-api/internal/domain"
	"github.com/qaztour/qaztour-api/internal/repository/ports"
)

var ErrPlannerValidation = errors.New("planner validation failed")

const (
	plannerSystemPrompt = "You are a travel planner for Kazakhstan. Answer concisely " +
		"and only recommend places from the provided catalog. When the question is " +
		"not about travel in Kazakhstan, steer the conversation back."

	plannerFallbackReply = "I could not reach the planning assistant right now, " +
		"but here is what matches your request from our catalog."

	maxRecommendations = 4
	maxMessageLen      = 2000
)

type PlannerService struct {
	chat        ai.ChatClient
	attractions ports.AttractionRepository
	routes      ports.RouteRepository
}

// NewPlannerService accepts a nil chat client; the planner then always
// answers from the catalog alone.
func NewPlannerService(chat ai.ChatClient, attractions ports.AttractionRepository, routes ports.RouteRepository) *PlannerService {
	return &PlannerService{chat: chat, attractions: attractions, routes: routes}
}

func (s *PlannerService) Ask(ctx context.Context, message string) (*domain.PlannerAnswer, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: message required", ErrPlannerValidation)
	}
	if len(message) > maxMessageLen {
		return nil, fmt.Errorf("%w: message too long", ErrPlannerValidation)
	}

	recommendations := s.recommend(ctx, message)

	reply := plannerFallbackReply
	if s.chat != nil {
		prompt := s.prompt(recommendations)
		answer, err := s.chat.Complete(ctx, prompt, []ai.Message{{Role: ai.RoleUser, Content: message}})
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil, err
			}
			log.Printf("planner: chat completion failed, serving fallback: %v", err)
		} else {
			reply = answer
		}
	}

	return &domain.PlannerAnswer{
		Reply:           reply,
		Recommendations: recommendations,
	}, nil
}

// recommend matches catalog entries against the question's keywords. Lookup
// failures degrade to an empty card list rather than failing the chat.
func (s *PlannerService) recommend(ctx context.Context, message string) []domain.Recommendation {
	keywords := extractKeywords(message)
	if len(keywords) == 0 {
		return nil
	}

	out := make([]domain.Recommendation, 0, maxRecommendations)

	attractions, err := s.attractions.SearchByKeywords(ctx, keywords, maxRecommendations)
	if err != nil {
		log.Printf("planner: attraction search failed: %v", err)
	}
	for _, a := range attractions {
		out = append(out, domain.Recommendation{
			Type:        domain.RecommendationAttraction,
			ID:          a.ID,
			Title:       a.Name,
			Description: a.Description,
			Image:       a.Image,
		})
	}

	if len(out) < maxRecommendations {
		routes, err := s.routes.SearchByKeywords(ctx, keywords, maxRecommendations-len(out))
		if err != nil {
			log.Printf("planner: route search failed: %v", err)
		}
		for _, r := range routes {
			out = append(out, domain.Recommendation{
				Type:        domain.RecommendationRoute,
				ID:          r.ID,
				Title:       r.Title,
				Description: r.Description,
				Image:       r.Image,
			})
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func (s *PlannerService) prompt(recommendations []domain.Recommendation) string {
	if len(recommendations) == 0 {
		return plannerSystemPrompt
	}
	var b strings.Builder
	b.WriteString(plannerSystemPrompt)
	b.WriteString("\nCatalog matches for this question:\n")
	for _, rec := range recommendations {
		fmt.Fprintf(&b, "- %s (%s)\n", rec.Title, rec.Type)
	}
	return b.String()
}

var keywordStopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "i": {}, "me": {}, "my": {}, "we": {},
	"to": {}, "in": {}, "for": {}, "of": {}, "on": {}, "at": {}, "and": {},
	"or": {}, "is": {}, "are": {}, "what": {}, "where": {}, "which": {},
	"want": {}, "would": {}, "like": {}, "visit": {}, "see": {}, "go": {},
	"can": {}, "you": {}, "recommend": {}, "best": {}, "some": {}, "about": {},
	"trip": {}, "travel": {}, "place": {}, "places": {},
}

func extractKeywords(message string) []string {
	fields := strings.FieldsFunc(strings.ToLower(message), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r < 0x80
	})

	seen := make(map[string]struct{}, len(fields))
	keywords := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 3 {
			continue
		}
		if _, stop := keywordStopwords[f]; stop {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		keywords = append(keywords, f)
	}
	return keywords
}
