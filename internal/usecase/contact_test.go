package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/email"
	"portfolio-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSender struct {
	mock.Mock
	mu   sync.Mutex
	sent []email.Message
}

func (m *MockSender) Send(ctx context.Context, msg email.Message) error {
	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()
	return m.Called(ctx, msg).Error(0)
}

func (m *MockSender) messageTo(to string) (email.Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.sent {
		if msg.To == to {
			return msg, true
		}
	}
	return email.Message{}, false
}

var owner = usecase.ContactOwner{
	Name:     "Nahom Tewodros",
	Email:    "owner@example.com",
	MailFrom: "site@example.com",
}

func newContactUC(sender email.Sender) domain.ContactUsecase {
	return usecase.NewContactUsecase(sender, validation.New(), owner)
}

func validRequest() *domain.ContactRequest {
	return &domain.ContactRequest{
		Name:    "Ana",
		Email:   "ana@x.com",
		Subject: "Hi",
		Message: "Hello there",
	}
}

func TestSendContactMessage_Validation(t *testing.T) {
	cases := map[string]func(r *domain.ContactRequest){
		"empty name":       func(r *domain.ContactRequest) { r.Name = "" },
		"empty email":      func(r *domain.ContactRequest) { r.Email = "" },
		"empty subject":    func(r *domain.ContactRequest) { r.Subject = "" },
		"empty message":    func(r *domain.ContactRequest) { r.Message = "" },
		"whitespace name":  func(r *domain.ContactRequest) { r.Name = "   " },
		"everything empty": func(r *domain.ContactRequest) { *r = domain.ContactRequest{} },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			sender := new(MockSender)
			req := validRequest()
			mutate(req)

			err := newContactUC(sender).SendContactMessage(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrValidation)
			sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		})
	}

	t.Run("nil request", func(t *testing.T) {
		sender := new(MockSender)
		err := newContactUC(sender).SendContactMessage(context.Background(), nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}

func TestSendContactMessage_SendsBothEmails(t *testing.T) {
	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.AnythingOfType("email.Message")).Return(nil)

	err := newContactUC(sender).SendContactMessage(context.Background(), validRequest())
	require.NoError(t, err)
	sender.AssertNumberOfCalls(t, "Send", 2)

	notification, ok := sender.messageTo("owner@example.com")
	require.True(t, ok, "owner notification not sent")
	assert.Equal(t, "ana@x.com", notification.ReplyTo)
	assert.Equal(t, `"Ana" <site@example.com>`, notification.From)
	assert.Equal(t, "New Contact Form Submission: Hi", notification.Subject)
	for _, want := range []string{"Ana", "ana@x.com", "Hi", "Hello there"} {
		assert.Contains(t, notification.Text, want)
		assert.Contains(t, notification.HTML, want)
	}

	ack, ok := sender.messageTo("ana@x.com")
	require.True(t, ok, "acknowledgement not sent")
	assert.Empty(t, ack.ReplyTo)
	assert.Equal(t, `"Nahom Tewodros" <site@example.com>`, ack.From)
	assert.Equal(t, "Contact message delivery notification", ack.Subject)
	assert.Contains(t, ack.Text, "Hi Ana,")
	assert.Contains(t, ack.HTML, "Hi Ana,")
}

func TestSendContactMessage_TrimsInput(t *testing.T) {
	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.Anything).Return(nil)

	req := &domain.ContactRequest{Name: " Ana ", Email: " ana@x.com\n", Subject: "Hi ", Message: " Hello"}
	require.NoError(t, newContactUC(sender).SendContactMessage(context.Background(), req))

	_, ok := sender.messageTo("ana@x.com")
	assert.True(t, ok)
}

func TestSendContactMessage_DispatchFailure(t *testing.T) {
	transportErr := errors.New("535 authentication failed")

	t.Run("owner notification fails", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.MatchedBy(func(m email.Message) bool { return m.To == owner.Email })).Return(transportErr)
		sender.On("Send", mock.Anything, mock.Anything).Return(nil)

		err := newContactUC(sender).SendContactMessage(context.Background(), validRequest())
		assert.ErrorIs(t, err, domain.ErrDispatch)
		assert.ErrorIs(t, err, transportErr)
		// the acknowledgement was still attempted
		sender.AssertNumberOfCalls(t, "Send", 2)
	})

	t.Run("acknowledgement fails", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.MatchedBy(func(m email.Message) bool { return m.To == "ana@x.com" })).Return(transportErr)
		sender.On("Send", mock.Anything, mock.Anything).Return(nil)

		err := newContactUC(sender).SendContactMessage(context.Background(), validRequest())
		assert.ErrorIs(t, err, domain.ErrDispatch)
		sender.AssertNumberOfCalls(t, "Send", 2)
	})

	t.Run("both fail", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.Anything).Return(transportErr)

		err := newContactUC(sender).SendContactMessage(context.Background(), validRequest())
		assert.ErrorIs(t, err, domain.ErrDispatch)
		assert.NotErrorIs(t, err, domain.ErrValidation)
	})
}

func TestSendContactMessage_EscapesHTML(t *testing.T) {
	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.Anything).Return(nil)

	req := validRequest()
	req.Message = `<script>alert("x")</script>`
	require.NoError(t, newContactUC(sender).SendContactMessage(context.Background(), req))

	notification, ok := sender.messageTo(owner.Email)
	require.True(t, ok)
	assert.NotContains(t, notification.HTML, "<script>")
	assert.Contains(t, notification.Text, "<script>")
}
