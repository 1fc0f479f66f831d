package mocks

import (
	"context"

	"github.com/aidanlogic/aidanlogic/internal/service"

	"github.com/stretchr/testify/mock"
)

type VerifierMock struct {
	mock.Mock
}

func (m *VerifierMock) Verify(ctx context.Context, token, remoteIP string) error {
	args := m.Called(ctx, token, remoteIP)
	return args.Error(0)
}

type DelivererMock struct {
	mock.Mock
}

func (m *DelivererMock) Deliver(ctx context.Context, sub service.ContactSubmission) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}
