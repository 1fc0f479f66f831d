package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aidanlogic/aidanlogic/internal/logging"
	"github.com/aidanlogic/aidanlogic/internal/mocks"
	"github.com/aidanlogic/aidanlogic/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validSubmission() service.ContactSubmission {
	return service.ContactSubmission{
		FullName: "Jane Doe",
		Email:    "jane@x.com",
		Subject:  "Hi",
		Message:  "Hello",
		Token:    "tok123",
		RemoteIP: "203.0.113.7",
	}
}

func newService(v service.Verifier, d service.Deliverer) *service.ContactService {
	return service.NewContactService(v, d, logging.NewWriterLogger(io.Discard, logging.LevelDebug))
}

func TestContactService_Submit(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(*service.ContactSubmission)
		setupMocks   func(v *mocks.VerifierMock, d *mocks.DelivererMock)
		expectedKind service.FailureKind
		verifyCalled bool
		sendCalled   bool
	}{
		{
			name:   "success",
			mutate: func(*service.ContactSubmission) {},
			setupMocks: func(v *mocks.VerifierMock, d *mocks.DelivererMock) {
				v.On("Verify", mock.Anything, "tok123", "203.0.113.7").Return(nil)
				d.On("Deliver", mock.Anything, validSubmission()).Return(nil)
			},
			verifyCalled: true,
			sendCalled:   true,
		},
		{
			name:         "missing token",
			mutate:       func(s *service.ContactSubmission) { s.Token = "" },
			setupMocks:   func(v *mocks.VerifierMock, d *mocks.DelivererMock) {},
			expectedKind: service.KindVerificationMissing,
		},
		{
			name:         "whitespace token",
			mutate:       func(s *service.ContactSubmission) { s.Token = "   " },
			setupMocks:   func(v *mocks.VerifierMock, d *mocks.DelivererMock) {},
			expectedKind: service.KindVerificationMissing,
		},
		{
			name:         "missing token wins over missing fields",
			mutate: func(s *service.ContactSubmission) {
				s.Token = ""
				s.FullName = ""
			},
			setupMocks:   func(v *mocks.VerifierMock, d *mocks.DelivererMock) {},
			expectedKind: service.KindVerificationMissing,
		},
		{
			name:         "blank name",
			mutate:       func(s *service.ContactSubmission) { s.FullName = " \t" },
			setupMocks:   func(v *mocks.VerifierMock, d *mocks.DelivererMock) {},
			expectedKind: service.KindInvalidSubmission,
		},
		{
			name:   "long message is relayed as is",
			mutate: func(s *service.ContactSubmission) { s.Message = strings.Repeat("a", 20000) },
			setupMocks: func(v *mocks.VerifierMock, d *mocks.DelivererMock) {
				v.On("Verify", mock.Anything, "tok123", "203.0.113.7").Return(nil)
				d.On("Deliver", mock.Anything, mock.MatchedBy(func(s service.ContactSubmission) bool {
					return len(s.Message) == 20000
				})).Return(nil)
			},
			verifyCalled: true,
			sendCalled:   true,
		},
		{
			name:   "token rejected",
			mutate: func(*service.ContactSubmission) {},
			setupMocks: func(v *mocks.VerifierMock, d *mocks.DelivererMock) {
				v.On("Verify", mock.Anything, "tok123", "203.0.113.7").
					Return(fmt.Errorf("%w: error codes [invalid-input-response]", service.ErrVerificationRejected))
			},
			expectedKind: service.KindVerificationFailed,
			verifyCalled: true,
		},
		{
			name:   "verification network error",
			mutate: func(*service.ContactSubmission) {},
			setupMocks: func(v *mocks.VerifierMock, d *mocks.DelivererMock) {
				v.On("Verify", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("dial tcp: connection refused"))
			},
			expectedKind: service.KindVerificationFailed,
			verifyCalled: true,
		},
		{
			name:   "delivery rejected",
			mutate: func(*service.ContactSubmission) {},
			setupMocks: func(v *mocks.VerifierMock, d *mocks.DelivererMock) {
				v.On("Verify", mock.Anything, mock.Anything, mock.Anything).Return(nil)
				d.On("Deliver", mock.Anything, mock.Anything).
					Return(fmt.Errorf("%w: formspree returned status 422", service.ErrDeliveryRejected))
			},
			expectedKind: service.KindDeliveryFailed,
			verifyCalled: true,
			sendCalled:   true,
		},
		{
			name:   "delivery timeout",
			mutate: func(*service.ContactSubmission) {},
			setupMocks: func(v *mocks.VerifierMock, d *mocks.DelivererMock) {
				v.On("Verify", mock.Anything, mock.Anything, mock.Anything).Return(nil)
				d.On("Deliver", mock.Anything, mock.Anything).
					Return(fmt.Errorf("failed to send formspree request: %w", context.DeadlineExceeded))
			},
			expectedKind: service.KindDeliveryFailed,
			verifyCalled: true,
			sendCalled:   true,
		},
		{
			name:   "delivery transport error",
			mutate: func(*service.ContactSubmission) {},
			setupMocks: func(v *mocks.VerifierMock, d *mocks.DelivererMock) {
				v.On("Verify", mock.Anything, mock.Anything, mock.Anything).Return(nil)
				d.On("Deliver", mock.Anything, mock.Anything).Return(errors.New("connection reset by peer"))
			},
			expectedKind: service.KindUnexpected,
			verifyCalled: true,
			sendCalled:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := new(mocks.VerifierMock)
			deliverer := new(mocks.DelivererMock)
			tt.setupMocks(verifier, deliverer)

			sub := validSubmission()
			tt.mutate(&sub)

			err := newService(verifier, deliverer).Submit(context.Background(), sub)

			if tt.expectedKind == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				var se *service.SubmissionError
				require.True(t, errors.As(err, &se), "error should be a SubmissionError")
				assert.Equal(t, tt.expectedKind, se.Kind)
			}

			if tt.verifyCalled {
				verifier.AssertNumberOfCalls(t, "Verify", 1)
			} else {
				verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
			}
			if tt.sendCalled {
				deliverer.AssertNumberOfCalls(t, "Deliver", 1)
			} else {
				deliverer.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestContactService_NoDeduplication(t *testing.T) {
	verifier := new(mocks.VerifierMock)
	deliverer := new(mocks.DelivererMock)
	verifier.On("Verify", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	deliverer.On("Deliver", mock.Anything, validSubmission()).Return(nil)

	svc := newService(verifier, deliverer)
	require.NoError(t, svc.Submit(context.Background(), validSubmission()))
	require.NoError(t, svc.Submit(context.Background(), validSubmission()))

	verifier.AssertNumberOfCalls(t, "Verify", 2)
	deliverer.AssertNumberOfCalls(t, "Deliver", 2)
}

func TestResultFor(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		success bool
		kind    service.FailureKind
		status  int
		message string
	}{
		{"success", nil, true, "", http.StatusOK, service.MessageSent},
		{"missing", &service.SubmissionError{Kind: service.KindVerificationMissing}, false, service.KindVerificationMissing, http.StatusBadRequest, service.MessageVerificationNeeded},
		{"failed", &service.SubmissionError{Kind: service.KindVerificationFailed}, false, service.KindVerificationFailed, http.StatusBadRequest, service.MessageVerificationNeeded},
		{"invalid", &service.SubmissionError{Kind: service.KindInvalidSubmission}, false, service.KindInvalidSubmission, http.StatusBadRequest, service.MessageInvalidSubmission},
		{"delivery", &service.SubmissionError{Kind: service.KindDeliveryFailed}, false, service.KindDeliveryFailed, http.StatusInternalServerError, service.MessageDeliveryFailed},
		{"unexpected", &service.SubmissionError{Kind: service.KindUnexpected}, false, service.KindUnexpected, http.StatusInternalServerError, service.MessageInternalError},
		{"unclassified", errors.New("boom"), false, service.KindUnexpected, http.StatusInternalServerError, service.MessageInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := service.ResultFor(tt.err)
			assert.Equal(t, tt.success, res.Success)
			assert.Equal(t, tt.kind, res.Kind)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.message, res.Message)
		})
	}
}

// providers wires both real HTTP clients to fake upstreams and counts calls
type providers struct {
	verifyCalls  atomic.Int32
	deliverCalls atomic.Int32
	lastBody     atomic.Value
}

func startProviders(t *testing.T, verifyBody string, deliverStatus int) (*providers, *service.ContactService) {
	t.Helper()
	p := &providers{}

	turnstile := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.verifyCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(verifyBody))
	}))
	t.Cleanup(turnstile.Close)

	formspree := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.deliverCalls.Add(1)
		body, _ := io.ReadAll(r.Body)
		p.lastBody.Store(string(body))
		w.WriteHeader(deliverStatus)
	}))
	t.Cleanup(formspree.Close)

	svc := newService(
		service.NewTurnstileService("secret", turnstile.URL, 2*time.Second),
		service.NewFormspreeService(formspree.URL+"/f/abc", 2*time.Second),
	)
	return p, svc
}

func TestContactService_EndToEnd(t *testing.T) {
	t.Run("verified and delivered", func(t *testing.T) {
		p, svc := startProviders(t, `{"success":true}`, http.StatusOK)

		err := svc.Submit(context.Background(), validSubmission())
		require.NoError(t, err)

		assert.Equal(t, int32(1), p.verifyCalls.Load())
		assert.Equal(t, int32(1), p.deliverCalls.Load())
		assert.Equal(t, "fullName=Jane+Doe&email=jane%40x.com&subject=Hi&message=Hello", p.lastBody.Load())
	})

	t.Run("rejected token never reaches delivery", func(t *testing.T) {
		p, svc := startProviders(t, `{"success":false,"error-codes":["invalid-input-response"]}`, http.StatusOK)

		err := svc.Submit(context.Background(), validSubmission())
		assert.Equal(t, service.KindVerificationFailed, service.KindOf(err))
		assert.Equal(t, int32(1), p.verifyCalls.Load())
		assert.Equal(t, int32(0), p.deliverCalls.Load())
	})

	t.Run("upstream 500 is a delivery failure", func(t *testing.T) {
		p, svc := startProviders(t, `{"success":true}`, http.StatusInternalServerError)

		err := svc.Submit(context.Background(), validSubmission())
		assert.Equal(t, service.KindDeliveryFailed, service.KindOf(err))
		assert.Equal(t, int32(1), p.deliverCalls.Load())
	})

	t.Run("missing token makes no calls", func(t *testing.T) {
		p, svc := startProviders(t, `{"success":true}`, http.StatusOK)

		sub := validSubmission()
		sub.Token = ""
		err := svc.Submit(context.Background(), sub)
		assert.Equal(t, service.KindVerificationMissing, service.KindOf(err))
		assert.Equal(t, int32(0), p.verifyCalls.Load())
		assert.Equal(t, int32(0), p.deliverCalls.Load())
	})
}
