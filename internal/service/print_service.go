package service

import (
	"context"
	"log"
	"strings"

	apperrors "printbridge/internal/errors"
	"printbridge/internal/model"
	"printbridge/internal/printer"
)

// DeviceSession abstracts the single-shot printer connection so the
// service can be tested without a live device.
type DeviceSession interface {
	Send(ctx context.Context, host string, port int, cmd string) (string, error)
}

// PrintService validates print jobs, builds the wire command and forwards
// it to the device. Validation failures never reach the device session.
type PrintService interface {
	SendCommand(ctx context.Context, actorEmail string, job *model.PrintJob) (response string, err error)
}

type printService struct {
	session DeviceSession
}

// NewPrintService builds a PrintService over a device session.
func NewPrintService(session DeviceSession) PrintService {
	return &printService{session: session}
}

// SendCommand runs the full pipeline for one print job: validate the
// target and payload, build the sanitized wire command, send it once.
func (s *printService) SendCommand(ctx context.Context, actorEmail string, job *model.PrintJob) (string, error) {
	host := strings.TrimSpace(job.Host)
	if !printer.ValidHost(host) {
		return "", apperrors.ErrInvalidHost
	}
	if !printer.LocalHost(host) {
		return "", apperrors.ErrForbiddenHost
	}
	if !printer.ValidPort(job.Port) {
		return "", apperrors.ErrInvalidPort
	}
	if len(job.Text) > model.MaxPrintTextLength {
		return "", apperrors.ErrTextTooLong
	}

	cmd := printer.BuildCommand(job.CodeType, job.Options, job.Text)

	log.Printf("user %s sending command to %s:%d", actorEmail, host, job.Port)
	reply, err := s.session.Send(ctx, host, job.Port, cmd)
	if err != nil {
		log.Printf("device error for user %s: %v", actorEmail, err)
		return "", err
	}
	if reply == "" {
		reply = "No response from device"
	}
	return reply, nil
}
