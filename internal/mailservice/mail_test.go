package mailservice

import (
	"testing"

	"github.com/go-mail/mail/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSendEmail(t *testing.T) {
	data := struct {
		Fullname string
		Username string
	}{
		Fullname: "Test User",
		Username: "test",
	}

	t.Run("renders the template and dials", func(t *testing.T) {
		mockDialer := new(MockDialer)
		mailer := Mail{dialer: mockDialer, sender: "sender@example.com"}

		var sent []*mail.Message
		mockDialer.On("DialAndSend", mock.AnythingOfType("[]*mail.Message")).Run(func(args mock.Arguments) {
			sent = args.Get(0).([]*mail.Message)
		}).Return(nil)

		err := mailer.send("test@example.com", data, "welcome_email.html")
		assert.NoError(t, err)

		mockDialer.AssertExpectations(t)
		assert.Len(t, sent, 1)
		assert.Equal(t, []string{"test@example.com"}, sent[0].GetHeader("To"))
		assert.Equal(t, []string{"sender@example.com"}, sent[0].GetHeader("From"))
	})

	t.Run("unknown template never dials", func(t *testing.T) {
		mockDialer := new(MockDialer)
		mailer := Mail{dialer: mockDialer, sender: "sender@example.com"}

		err := mailer.send("test@example.com", data, "missing_template.html")
		assert.Error(t, err)

		mockDialer.AssertNotCalled(t, "DialAndSend")
	})
}
