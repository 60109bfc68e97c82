package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/ambassador/internal/ambassador"
	"github.com/shandysiswandi/ambassador/internal/call"
	"github.com/shandysiswandi/ambassador/internal/contact"
	"github.com/shandysiswandi/ambassador/internal/event"
	"github.com/shandysiswandi/ambassador/internal/notification"
	"github.com/shandysiswandi/ambassador/internal/reimbursement"
	"github.com/shandysiswandi/ambassador/internal/verification"
)

func (a *App) initModules() {
	otp, err := verification.New(verification.Dependency{
		Ctx:        a.ctx,
		DBConn:     a.dbConn,
		MongoDB:    a.mongoDB,
		Locker:     a.locker,
		Goroutine:  a.goroutine,
		Config:     a.config,
		Instrument: a.ins,
		UID:        a.uid,
		HMAC:       a.hmac,
		Clock:      a.clock,
		Validator:  a.validator,
	})
	if err != nil {
		slog.Error("failed to init module verification", "error", err)
		os.Exit(1)
	}

	if err := ambassador.New(ambassador.Dependency{
		DBConn:     a.dbConn,
		Router:     a.router,
		Messaging:  a.messaging,
		SMS:        a.sms,
		Mail:       a.mail,
		Storage:    a.storage,
		OTP:        otp,
		Validator:  a.validator,
		Config:     a.config,
		UID:        a.uid,
		UUID:       a.uuid,
		Clock:      a.clock,
		JWT:        a.jwt,
		Instrument: a.ins,
	}); err != nil {
		slog.Error("failed to init module ambassador", "error", err)
		os.Exit(1)
	}

	if a.config.GetBool("modules.notification.enabled") {
		if err := notification.New(notification.Dependency{
			Ctx:         a.ctx,
			DBConn:      a.dbConn,
			Messaging:   a.messaging,
			Idempotency: a.idemp,
			Mail:        a.mail,
			SMS:         a.sms,
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			UUID:        a.uuid,
			Clock:       a.clock,
			Goroutine:   a.goroutine,
			Validator:   a.validator,
			Router:      a.router,
		}); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.contact.enabled") {
		if err := contact.New(contact.Dependency{
			DBConn:     a.dbConn,
			Router:     a.router,
			Config:     a.config,
			UID:        a.uid,
			Clock:      a.clock,
			Validator:  a.validator,
			Instrument: a.ins,
		}); err != nil {
			slog.Error("failed to init module contact", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.call.enabled") {
		if err := call.New(call.Dependency{
			DBConn:     a.dbConn,
			Router:     a.router,
			Config:     a.config,
			UID:        a.uid,
			Clock:      a.clock,
			Validator:  a.validator,
			Instrument: a.ins,
		}); err != nil {
			slog.Error("failed to init module call", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.reimbursement.enabled") {
		if err := reimbursement.New(reimbursement.Dependency{
			DBConn:     a.dbConn,
			Router:     a.router,
			Config:     a.config,
			UID:        a.uid,
			Clock:      a.clock,
			Validator:  a.validator,
			Instrument: a.ins,
		}); err != nil {
			slog.Error("failed to init module reimbursement", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.event.enabled") {
		if err := event.New(event.Dependency{
			DBConn:     a.dbConn,
			Router:     a.router,
			Config:     a.config,
			UID:        a.uid,
			Clock:      a.clock,
			Validator:  a.validator,
			Instrument: a.ins,
		}); err != nil {
			slog.Error("failed to init module event", "error", err)
			os.Exit(1)
		}
	}
}
