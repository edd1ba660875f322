package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"paygate/internal/payment/bank"
	"paygate/internal/payment/models"
	"paygate/internal/payment/service/mocks"
	"paygate/internal/sentinel"
	dErrors "paygate/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	store    *mocks.MockStore
	bankMock *mocks.MockBankClient
	service  *Service
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockStore(s.ctrl)
	s.bankMock = mocks.NewMockBankClient(s.ctrl)
	s.service = NewService(
		s.store,
		s.bankMock,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func validRequest() models.PaymentRequest {
	return models.PaymentRequest{
		CardNumber:  "1234567890123457",
		ExpiryMonth: 12,
		ExpiryYear:  time.Now().UTC().Year() + 1,
		Currency:    "GBP",
		Amount:      1000,
		CVV:         "123",
	}
}

// =============================================================================
// Authorize - validation short-circuit
// =============================================================================

func (s *ServiceSuite) TestAuthorize_InvalidRequestShortCircuits() {
	// No EXPECT on bank or store: any call would fail the test, which is
	// exactly the contract - rejected requests never reach the network or
	// storage.
	req := validRequest()
	req.CardNumber = "123"
	req.Amount = 0

	payment, err := s.service.Authorize(context.Background(), req)

	s.Nil(payment)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	var domainErr *dErrors.Error
	s.Require().True(errors.As(err, &domainErr))
	s.Contains(domainErr.Details, "card number must be between 14 and 19 digits")
	s.Contains(domainErr.Details, "amount must be at least 1")
	s.GreaterOrEqual(len(domainErr.Details), 2, "all violations reported, not just the first")
}

// =============================================================================
// Authorize - terminal outcomes
// =============================================================================

func (s *ServiceSuite) TestAuthorize_AuthorizedOutcome() {
	var stored *models.Payment
	s.bankMock.EXPECT().
		Authorize(gomock.Any(), gomock.Any()).
		Return(&bank.AuthorizationResult{Authorized: true, AuthorizationCode: "auth-1"}, nil)
	s.store.EXPECT().
		Add(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *models.Payment) error {
			stored = p
			return nil
		})

	payment, err := s.service.Authorize(context.Background(), validRequest())

	s.Require().NoError(err)
	s.Require().NotNil(payment)
	s.Equal(models.StatusAuthorized, payment.Status)
	s.Equal("3457", payment.CardSuffix)
	s.Equal("GBP", payment.Currency)
	s.Equal(int64(1000), payment.Amount)

	_, parseErr := uuid.Parse(payment.ID)
	s.NoError(parseErr, "identifier is a generated UUID")
	s.Same(payment, stored, "the returned record is the persisted record")
}

func (s *ServiceSuite) TestAuthorize_DeclinedOutcome() {
	s.bankMock.EXPECT().
		Authorize(gomock.Any(), gomock.Any()).
		Return(&bank.AuthorizationResult{Authorized: false}, nil)
	s.store.EXPECT().Add(gomock.Any(), gomock.Any()).Return(nil)

	payment, err := s.service.Authorize(context.Background(), validRequest())

	s.Require().NoError(err)
	s.Equal(models.StatusDeclined, payment.Status)
}

func (s *ServiceSuite) TestAuthorize_BuildsWireRequest() {
	var wire bank.AuthorizationRequest
	s.bankMock.EXPECT().
		Authorize(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req bank.AuthorizationRequest) (*bank.AuthorizationResult, error) {
			wire = req
			return &bank.AuthorizationResult{Authorized: true}, nil
		})
	s.store.EXPECT().Add(gomock.Any(), gomock.Any()).Return(nil)

	req := validRequest()
	req.ExpiryMonth = 3
	_, err := s.service.Authorize(context.Background(), req)

	s.Require().NoError(err)
	s.Equal(req.CardNumber, wire.CardNumber)
	s.Equal(fmt.Sprintf("03/%04d", req.ExpiryYear), wire.ExpiryDate)
	s.Equal(req.Currency, wire.Currency)
	s.Equal(req.Amount, wire.Amount)
	s.Equal(req.CVV, wire.CVV)
}

func (s *ServiceSuite) TestAuthorize_GeneratesFreshIdentifierPerInvocation() {
	s.bankMock.EXPECT().
		Authorize(gomock.Any(), gomock.Any()).
		Return(&bank.AuthorizationResult{Authorized: true}, nil).
		Times(2)
	s.store.EXPECT().Add(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	first, err := s.service.Authorize(context.Background(), validRequest())
	s.Require().NoError(err)
	second, err := s.service.Authorize(context.Background(), validRequest())
	s.Require().NoError(err)

	s.NotEqual(first.ID, second.ID)
}

// =============================================================================
// Authorize - bank failure mapping (nothing stored)
// =============================================================================

func (s *ServiceSuite) TestAuthorize_BankErrorMapping() {
	cases := []struct {
		kind bank.Kind
		code dErrors.Code
	}{
		{bank.KindUnavailable, dErrors.CodeUnavailable},
		{bank.KindConnection, dErrors.CodeUnavailable},
		{bank.KindTimeout, dErrors.CodeTimeout},
		{bank.KindBadRequest, dErrors.CodeInternal},
		{bank.KindMalformedResponse, dErrors.CodeInternal},
	}

	for _, tc := range cases {
		// No store EXPECT: bank-side failures never produce a record.
		s.bankMock.EXPECT().
			Authorize(gomock.Any(), gomock.Any()).
			Return(nil, bank.NewError(tc.kind, "boom", nil))

		payment, err := s.service.Authorize(context.Background(), validRequest())

		s.Nil(payment, "kind %s", tc.kind)
		s.True(dErrors.HasCode(err, tc.code), "kind %s mapped to %s", tc.kind, tc.code)
	}
}

func (s *ServiceSuite) TestAuthorize_BankErrorMessageIsGeneric() {
	s.bankMock.EXPECT().
		Authorize(gomock.Any(), gomock.Any()).
		Return(nil, bank.NewError(bank.KindBadRequest, `bank rejected request: {"error":"secret detail"}`, nil))

	_, err := s.service.Authorize(context.Background(), validRequest())

	var domainErr *dErrors.Error
	s.Require().True(errors.As(err, &domainErr))
	s.Equal("an error occurred while processing the payment", domainErr.Message)
	s.NotContains(domainErr.Message, "secret detail", "raw downstream body never surfaces")
}

func (s *ServiceSuite) TestAuthorize_StoreFailureIsInvariantViolation() {
	s.bankMock.EXPECT().
		Authorize(gomock.Any(), gomock.Any()).
		Return(&bank.AuthorizationResult{Authorized: true}, nil)
	s.store.EXPECT().
		Add(gomock.Any(), gomock.Any()).
		Return(sentinel.ErrInvalidInput)

	payment, err := s.service.Authorize(context.Background(), validRequest())

	s.Nil(payment)
	s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

// =============================================================================
// GetPayment
// =============================================================================

func (s *ServiceSuite) TestGetPayment_EmptyIdentifierShortCircuits() {
	// No store EXPECT: the zero identifier must not reach the store.
	payment, err := s.service.GetPayment(context.Background(), "")

	s.Nil(payment)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestGetPayment_Found() {
	want := &models.Payment{ID: "id-1", Status: models.StatusAuthorized, CardSuffix: "3457"}
	s.store.EXPECT().Get(gomock.Any(), "id-1").Return(want, nil)

	got, err := s.service.GetPayment(context.Background(), "id-1")

	s.Require().NoError(err)
	s.Equal(want, got)
}

func (s *ServiceSuite) TestGetPayment_NotFound() {
	s.store.EXPECT().Get(gomock.Any(), "missing").Return(nil, sentinel.ErrNotFound)

	payment, err := s.service.GetPayment(context.Background(), "missing")

	s.Nil(payment)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestGetPayment_StoreFailure() {
	s.store.EXPECT().Get(gomock.Any(), "id-1").Return(nil, errors.New("corrupted"))

	payment, err := s.service.GetPayment(context.Background(), "id-1")

	s.Nil(payment)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func TestMapBankError_Unclassified(t *testing.T) {
	err := mapBankError(errors.New("plain"), bank.KindMalformedResponse)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}
