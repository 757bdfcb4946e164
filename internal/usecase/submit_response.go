package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/xavierca1/lead-quiz/internal/entity"
	"github.com/xavierca1/lead-quiz/internal/infra/queue"
)

// ErrSkipped marks a best-effort step that had nothing to do, such as the
// admin email when no admin address is configured.
var ErrSkipped = errors.New("skipped")

const defaultNotifyTimeout = 15 * time.Second

type SubmitResponseUseCase struct {
	LeadRepo      entity.LeadRepositoryInterface
	ResponseRepo  entity.ResponseRepositoryInterface
	Quiz          QuizProvider
	Composer      NotificationComposer
	EmailService  EmailService
	Publisher     ResultPublisher
	AdminEmail    string
	NotifyTimeout time.Duration
	Validate      *validator.Validate
	Logger        *zap.Logger
}

func NewSubmitResponseUseCase(
	leadRepo entity.LeadRepositoryInterface,
	responseRepo entity.ResponseRepositoryInterface,
	quiz QuizProvider,
	composer NotificationComposer,
	emailService EmailService,
	publisher ResultPublisher,
	adminEmail string,
	notifyTimeout time.Duration,
	logger *zap.Logger,
) *SubmitResponseUseCase {
	if notifyTimeout <= 0 {
		notifyTimeout = defaultNotifyTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmitResponseUseCase{
		LeadRepo:      leadRepo,
		ResponseRepo:  responseRepo,
		Quiz:          quiz,
		Composer:      composer,
		EmailService:  emailService,
		Publisher:     publisher,
		AdminEmail:    strings.TrimSpace(adminEmail),
		NotifyTimeout: notifyTimeout,
		Validate:      validator.New(),
		Logger:        logger,
	}
}

func (uc *SubmitResponseUseCase) Execute(ctx context.Context, input SubmitResponseInput) (*SubmitResponseOutput, error) {
	result, err := uc.checkPayload(input)
	if err != nil {
		return nil, err
	}

	var (
		lead *entity.Lead
		resp = entity.NewResponse(strings.TrimSpace(input.LeadID), result, input.Answers)
	)

	txn := NewTransaction()

	txn.AddOperation("resolve_lead", func(ctx context.Context) error {
		found, err := uc.LeadRepo.FindByID(ctx, resp.LeadID)
		if errors.Is(err, entity.ErrLeadNotFound) {
			return &DomainError{Code: CodeLeadNotFound, Message: "lead not found: " + resp.LeadID}
		}
		if err != nil {
			return &TechnicalError{Code: CodePersistenceError, Message: err.Error(), Err: err}
		}
		if strings.TrimSpace(found.Email) == "" {
			return &DomainError{Code: CodeLeadNotFound, Message: "lead has no email: " + resp.LeadID}
		}
		lead = found
		return nil
	})

	txn.AddOperation("persist_response", func(ctx context.Context) error {
		if err := uc.ResponseRepo.Create(ctx, resp); err != nil {
			return &TechnicalError{Code: CodePersistenceError, Message: err.Error(), Err: err}
		}
		if resp.ID == "" {
			return &TechnicalError{Code: CodePersistenceError, Message: "store returned no response id"}
		}
		return nil
	})

	txn.AddBestEffort(ChannelUserEmail, func(ctx context.Context) error {
		msg, err := uc.Composer.UserResult(lead, resp, result.Max)
		if err != nil {
			return err
		}
		return uc.EmailService.Send(ctx, lead.Email, msg.Subject, msg.HTML)
	})

	txn.AddBestEffort(ChannelAdminEmail, func(ctx context.Context) error {
		if uc.AdminEmail == "" {
			return ErrSkipped
		}
		msg, err := uc.Composer.AdminNotice(lead, resp, result.Max)
		if err != nil {
			return err
		}
		return uc.EmailService.Send(ctx, uc.AdminEmail, msg.Subject, msg.HTML)
	})

	txn.AddBestEffort(ChannelResultEvent, func(ctx context.Context) error {
		if uc.Publisher == nil {
			return ErrSkipped
		}
		return uc.Publisher.PublishResult(ctx, queue.ResultEvent{
			ResponseID: resp.ID,
			LeadID:     lead.ID,
			Name:       lead.Name,
			Email:      lead.Email,
			Phone:      lead.Phone,
			Total:      resp.Total,
			Max:        result.Max,
			Bucket:     string(resp.Bucket),
			Answers:    resp.Answers,
			OccurredAt: time.Now().UTC(),
		})
	})

	// Once the response is persisted the side effects run to completion even
	// if the caller goes away.
	auxCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.NotifyTimeout)
	defer cancel()

	outcomes, err := txn.Execute(ctx, auxCtx)
	if err != nil {
		return nil, surface(err)
	}

	out := &SubmitResponseOutput{
		OK:     true,
		ID:     resp.ID,
		LeadID: resp.LeadID,
		Total:  resp.Total,
		Bucket: resp.Bucket,
	}
	for _, o := range outcomes {
		out.SideEffects = append(out.SideEffects, uc.report(resp.ID, o))
	}

	uc.Logger.Info("response submitted",
		zap.String("response_id", resp.ID),
		zap.String("lead_id", resp.LeadID),
		zap.Int("total", resp.Total),
		zap.String("bucket", string(resp.Bucket)),
	)

	return out, nil
}

// checkPayload validates the request shape, then re-scores the answers and
// requires the client's total and bucket to agree.
func (uc *SubmitResponseUseCase) checkPayload(input SubmitResponseInput) (entity.Result, error) {
	if err := uc.Validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return entity.Result{}, invalidPayload(describeField(verrs[0]))
		}
		return entity.Result{}, invalidPayload(err.Error())
	}
	if strings.TrimSpace(input.LeadID) == "" {
		return entity.Result{}, invalidPayload("leadId is required")
	}

	quiz := uc.Quiz.Quiz()
	if err := quiz.CheckComplete(input.Answers); err != nil {
		return entity.Result{}, invalidPayload(err.Error())
	}

	result := quiz.Score(input.Answers)
	if *input.Total != result.Total {
		return entity.Result{}, invalidPayload(fmt.Sprintf("total %d does not match answers (%d)", *input.Total, result.Total))
	}
	if input.Bucket != result.Bucket {
		return entity.Result{}, invalidPayload(fmt.Sprintf("bucket %q does not match total %d", input.Bucket, result.Total))
	}
	return result, nil
}

func (uc *SubmitResponseUseCase) report(responseID string, o Outcome) SideEffect {
	switch {
	case o.Err == nil:
		return SideEffect{Channel: o.Name, Status: SideEffectSent}
	case errors.Is(o.Err, ErrSkipped):
		return SideEffect{Channel: o.Name, Status: SideEffectSkipped}
	default:
		uc.Logger.Warn("side effect failed",
			zap.String("code", CodeNotificationError),
			zap.String("channel", o.Name),
			zap.String("response_id", responseID),
			zap.Error(o.Err),
		)
		return SideEffect{Channel: o.Name, Status: SideEffectFailed, Error: o.Err.Error()}
	}
}

func describeField(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	default:
		return fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param())
	}
}

// surface strips the step prefix so callers see the typed error as-is.
func surface(err error) error {
	var de *DomainError
	if errors.As(err, &de) {
		return de
	}
	var te *TechnicalError
	if errors.As(err, &te) {
		return te
	}
	return &TechnicalError{Code: CodePersistenceError, Message: err.Error(), Err: err}
}
