package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aidanlogic/aidanlogic/internal/logging"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// User-facing messages, one per outcome
const (
	MessageSent               = "Message sent successfully"
	MessageVerificationNeeded = "Please complete the security verification by checking the box above"
	MessageInvalidSubmission  = "Please fill in all required fields"
	MessageDeliveryFailed     = "Failed to send message"
	MessageInternalError      = "Internal server error"
)

// ContactSubmission is one contact form message. It is never stored.
type ContactSubmission struct {
	FullName string `validate:"notblank"`
	Email    string `validate:"notblank"`
	Subject  string `validate:"notblank"`
	Message  string `validate:"notblank"`

	// Token is the Turnstile challenge response produced by the widget
	Token string `validate:"-"`
	// RemoteIP is forwarded to Turnstile when known
	RemoteIP string `validate:"-"`
}

// SubmissionResult is what the caller of Submit gets to see
type SubmissionResult struct {
	Success bool
	Kind    FailureKind
	Status  int
	Message string
}

// ResultFor maps the outcome of Submit to a status and message
func ResultFor(err error) SubmissionResult {
	if err == nil {
		return SubmissionResult{Success: true, Status: http.StatusOK, Message: MessageSent}
	}

	kind := KindOf(err)
	res := SubmissionResult{Kind: kind}
	switch kind {
	case KindVerificationMissing, KindVerificationFailed:
		res.Status, res.Message = http.StatusBadRequest, MessageVerificationNeeded
	case KindInvalidSubmission:
		res.Status, res.Message = http.StatusBadRequest, MessageInvalidSubmission
	case KindDeliveryFailed:
		res.Status, res.Message = http.StatusInternalServerError, MessageDeliveryFailed
	default:
		res.Kind = KindUnexpected
		res.Status, res.Message = http.StatusInternalServerError, MessageInternalError
	}
	return res
}

// Verifier checks a human-verification token
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// Deliverer hands a verified submission to the form backend
type Deliverer interface {
	Deliver(ctx context.Context, sub ContactSubmission) error
}

// ContactService runs the submission pipeline: token check, field check,
// verification, delivery. It keeps no state between calls.
type ContactService struct {
	verifier  Verifier
	deliverer Deliverer
	validate  *validator.Validate
	tracer    trace.Tracer
	logger    *logging.Logger
}

// NewContactService creates a new contact service
func NewContactService(verifier Verifier, deliverer Deliverer, logger *logging.Logger) *ContactService {
	v := validator.New()
	v.RegisterValidation("notblank", validators.NotBlank)

	return &ContactService{
		verifier:  verifier,
		deliverer: deliverer,
		validate:  v,
		tracer:    otel.Tracer("github.com/aidanlogic/aidanlogic/internal/service"),
		logger:    logger,
	}
}

// Submit verifies and relays one submission. Returned errors are always
// *SubmissionError; use ResultFor to turn them into a response.
func (s *ContactService) Submit(ctx context.Context, sub ContactSubmission) (err error) {
	ctx, span := s.tracer.Start(ctx, "contact.submit")
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = string(KindOf(err))
			span.RecordError(err)
			span.SetStatus(codes.Error, outcome)
		}
		span.SetAttributes(attribute.String("contact.outcome", outcome))
		span.End()
	}()

	if strings.TrimSpace(sub.Token) == "" {
		return fail(KindVerificationMissing, errors.New("turnstile token missing"))
	}

	if verr := s.validate.Struct(sub); verr != nil {
		return fail(KindInvalidSubmission, fmt.Errorf("%w: %s", ErrValidation, invalidFields(verr)))
	}

	if verr := s.verifier.Verify(ctx, sub.Token, sub.RemoteIP); verr != nil {
		s.logger.Warn("Turnstile verification failed: %v", verr)
		return fail(KindVerificationFailed, verr)
	}

	if derr := s.deliverer.Deliver(ctx, sub); derr != nil {
		if errors.Is(derr, ErrDeliveryRejected) || isTimeout(derr) {
			return fail(KindDeliveryFailed, derr)
		}
		return fail(KindUnexpected, derr)
	}

	s.logger.Info("Contact message relayed")
	return nil
}

// invalidFields lists offending field names, never their values
func invalidFields(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		names = append(names, fe.Field()+"("+fe.Tag()+")")
	}
	return strings.Join(names, ", ")
}
