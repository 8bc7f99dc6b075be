package impl

import (
	"context"
	"testing"

	domainerrors "patisserie/internal/domain/errors"
	"patisserie/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMailService_SendEmail(t *testing.T) {
	t.Parallel()

	t.Run("delivers the message", func(t *testing.T) {
		t.Parallel()

		mailSvc := new(mockMailer)
		mailSvc.On("Send", mock.Anything, "claire@example.com", "Votre commande", "Bonjour").Return(nil)

		svc := NewMailService(mailSvc, newDiscardLogger())
		err := svc.SendEmail(context.Background(), &usecase.SendEmailInput{
			To:      "claire@example.com",
			Subject: "Votre commande",
			Body:    "Bonjour",
		})

		require.NoError(t, err)
		mailSvc.AssertExpectations(t)
	})

	t.Run("blank recipient fails validation", func(t *testing.T) {
		t.Parallel()

		mailSvc := new(mockMailer)
		svc := NewMailService(mailSvc, newDiscardLogger())

		err := svc.SendEmail(context.Background(), &usecase.SendEmailInput{To: "  "})

		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
		mailSvc.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
