package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "printbridge/internal/errors"
	"printbridge/internal/model"
	"printbridge/internal/printer"
)

// MockDeviceSession is a mock implementation of DeviceSession.
type MockDeviceSession struct {
	mock.Mock
}

func (m *MockDeviceSession) Send(ctx context.Context, host string, port int, cmd string) (string, error) {
	args := m.Called(ctx, host, port, cmd)
	return args.String(0), args.Error(1)
}

func printJob() *model.PrintJob {
	return &model.PrintJob{
		CodeType: "QRCODE",
		Options:  map[string]string{"p1": "30", "p2": "30"},
		Text:     "hello",
		Host:     "192.168.1.50",
		Port:     9100,
	}
}

func TestPrintService_SendCommand(t *testing.T) {
	t.Run("valid job reaches the device once", func(t *testing.T) {
		session := new(MockDeviceSession)
		session.On("Send", mock.Anything, "192.168.1.50", 9100,
			`QRCODE,30,30,0,0,0,0,0,0,0,0,0,0,"hello"`).Return("OK", nil).Once()

		svc := NewPrintService(session)
		response, err := svc.SendCommand(context.Background(), "admin@test.com", printJob())
		require.NoError(t, err)
		assert.Equal(t, "OK", response)
		session.AssertExpectations(t)
	})

	t.Run("host is trimmed before validation", func(t *testing.T) {
		session := new(MockDeviceSession)
		session.On("Send", mock.Anything, "localhost", 9100, mock.Anything).Return("OK", nil)

		job := printJob()
		job.Host = "  localhost  "
		svc := NewPrintService(session)
		_, err := svc.SendCommand(context.Background(), "admin@test.com", job)
		assert.NoError(t, err)
	})

	t.Run("empty device reply becomes a placeholder", func(t *testing.T) {
		session := new(MockDeviceSession)
		session.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", nil)

		svc := NewPrintService(session)
		response, err := svc.SendCommand(context.Background(), "admin@test.com", printJob())
		require.NoError(t, err)
		assert.Equal(t, "No response from device", response)
	})

	t.Run("device errors pass through untranslated", func(t *testing.T) {
		session := new(MockDeviceSession)
		session.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("", printer.ErrDeviceTimeout)

		svc := NewPrintService(session)
		_, err := svc.SendCommand(context.Background(), "admin@test.com", printJob())
		assert.ErrorIs(t, err, printer.ErrDeviceTimeout)
	})

	t.Run("validation failures never reach the device", func(t *testing.T) {
		tests := []struct {
			name          string
			mutate        func(job *model.PrintJob)
			expectedError error
		}{
			{
				name:          "malformed host",
				mutate:        func(j *model.PrintJob) { j.Host = "printer.local" },
				expectedError: apperrors.ErrInvalidHost,
			},
			{
				name:          "public host",
				mutate:        func(j *model.PrintJob) { j.Host = "8.8.8.8" },
				expectedError: apperrors.ErrForbiddenHost,
			},
			{
				name:          "port zero",
				mutate:        func(j *model.PrintJob) { j.Port = 0 },
				expectedError: apperrors.ErrInvalidPort,
			},
			{
				name:          "port too large",
				mutate:        func(j *model.PrintJob) { j.Port = 70000 },
				expectedError: apperrors.ErrInvalidPort,
			},
			{
				name:          "oversized text",
				mutate:        func(j *model.PrintJob) { j.Text = strings.Repeat("x", model.MaxPrintTextLength+1) },
				expectedError: apperrors.ErrTextTooLong,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				session := new(MockDeviceSession)

				job := printJob()
				tt.mutate(job)

				svc := NewPrintService(session)
				_, err := svc.SendCommand(context.Background(), "admin@test.com", job)
				assert.ErrorIs(t, err, tt.expectedError)

				// No dialing on a rejected job.
				session.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})
}
