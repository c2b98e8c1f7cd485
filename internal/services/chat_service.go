package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/pentlavallir/Landscaping-US/internal/constants"
	"github.com/pentlavallir/Landscaping-US/internal/models"
	"github.com/pentlavallir/Landscaping-US/internal/repositories"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

// ChatNotConfiguredWarning is returned verbatim instead of an assistant
// reply when no API key is present.
const ChatNotConfiguredWarning = "OpenAI API key not configured. " +
	"Set OPENAI_API_KEY in the environment to enable AI answers."

const chatPromptPreamble = "You are an expert landscaping and property management assistant.\n" +
	"Use ONLY the structured data below as your primary source of truth when answering.\n" +
	"If you need to estimate beyond the data, clearly mark that as an assumption."

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type ChatService interface {
	// Ask answers a question grounded in a role-scoped database snapshot.
	Ask(ctx context.Context, user *models.User, question string) (string, error)

	// BuildContext assembles the structured data block for the user:
	// admins see the whole portfolio, owners only their property.
	BuildContext(ctx context.Context, user *models.User) (string, error)
}

type chatService struct {
	client     *openai.Client
	properties repositories.PropertyRepository
	services   repositories.PropertyServiceRepository
}

// NewChatService creates the assistant. Pass an empty apiKey to disable
// completions; context assembly still works.
func NewChatService(apiKey string, properties repositories.PropertyRepository, services repositories.PropertyServiceRepository) ChatService {
	s := &chatService{properties: properties, services: services}
	if apiKey != "" {
		c := openai.NewClient(option.WithAPIKey(apiKey))
		s.client = &c
	}
	return s
}

/* ------------------------------------------------------------------
   Completion
------------------------------------------------------------------ */

func (s *chatService) Ask(ctx context.Context, user *models.User, question string) (string, error) {
	dataContext, err := s.BuildContext(ctx, user)
	if err != nil {
		return "", err
	}
	if s.client == nil {
		return ChatNotConfiguredWarning, nil
	}

	prompt := fmt.Sprintf("%s\n\n%s\n\nUser question:\n%s\n\nNow provide a helpful, concise answer.",
		chatPromptPreamble, dataContext, question)

	req := openai.ChatCompletionNewParams{
		Model: shared.ChatModelGPT4oMini,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	resp, err := s.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return "", &utils.AppError{
			StatusCode: http.StatusBadGateway,
			Code:       utils.ErrCodeExternalServiceFailure,
			Message:    "Assistant request failed",
			Err:        err,
		}
	}
	if len(resp.Choices) == 0 {
		return "", &utils.AppError{
			StatusCode: http.StatusBadGateway,
			Code:       utils.ErrCodeExternalServiceFailure,
			Message:    "Assistant returned no choices",
		}
	}
	return resp.Choices[0].Message.Content, nil
}

/* ------------------------------------------------------------------
   Context assembly
------------------------------------------------------------------ */

func (s *chatService) BuildContext(ctx context.Context, user *models.User) (string, error) {
	if user.Role == constants.RoleAdmin {
		return s.adminContext(ctx)
	}
	return s.ownerContext(ctx, user)
}

func (s *chatService) adminContext(ctx context.Context) (string, error) {
	props, err := s.properties.ListAll(ctx)
	if err != nil {
		return "", err
	}
	all, err := s.services.ListAllWithProperty(ctx)
	if err != nil {
		return "", err
	}
	byProperty := make(map[string][]*models.PropertyService, len(props))
	for _, svc := range all {
		byProperty[svc.PropertyID.String()] = append(byProperty[svc.PropertyID.String()], svc)
	}

	var b strings.Builder
	b.WriteString("SYSTEM DATA: Properties overview:\n")
	for _, p := range props {
		visits, total := summarizeServices(byProperty[p.ID.String()])
		fmt.Fprintf(&b, "- %s: total_services=%d, total_cost=%s USD\n",
			p.Name, visits, total.StringFixed(2))
	}

	freq, err := s.services.FrequencySummary(ctx)
	if err != nil {
		return "", err
	}
	if len(freq) > 0 {
		b.WriteString("\nService frequency summary (all properties):\n")
		for _, fc := range freq {
			fmt.Fprintf(&b, "- %s: total_services=%d\n", fc.Frequency, fc.Count)
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// ownerContext scopes strictly to the owner's linked property; owners
// with no property get an empty context block.
func (s *chatService) ownerContext(ctx context.Context, user *models.User) (string, error) {
	if user.PropertyID == nil {
		return "", nil
	}
	prop, err := s.properties.GetByID(ctx, *user.PropertyID)
	if err != nil {
		return "", err
	}
	if prop == nil {
		return "", nil
	}
	svcs, err := s.services.ListByPropertyID(ctx, prop.ID)
	if err != nil {
		return "", err
	}
	visits, total := summarizeServices(svcs)

	var b strings.Builder
	fmt.Fprintf(&b, "SYSTEM DATA: Property '%s' in %s, %s %s.\n",
		prop.Name, prop.City, prop.State, prop.Zip)
	fmt.Fprintf(&b, "Summary: total_services=%d, total_cost=%s USD.\n",
		visits, total.StringFixed(2))
	if len(svcs) > 0 {
		b.WriteString("Services configured for this property:\n")
		for _, svc := range svcs {
			fmt.Fprintf(&b, "- %s (%s), status=%s: times_per_year=%d, each_time_cost=%s, total_cost=%s\n",
				svc.Category, svc.Frequency, svc.Status,
				svc.TimesPerYear, svc.EachTimeCost.StringFixed(2),
				svc.TotalAnnualCost().StringFixed(2))
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
