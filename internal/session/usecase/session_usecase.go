// Package usecase implements the Session Manager. Sessions are created and ended by their
// issuer; capacity is reserved only through IncrementMintCount inside a ledger transaction.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/allisson/soulbound/internal/database"
	eventsDomain "github.com/allisson/soulbound/internal/events/domain"
	"github.com/allisson/soulbound/internal/identity"
	registryDomain "github.com/allisson/soulbound/internal/registry/domain"
	sessionDomain "github.com/allisson/soulbound/internal/session/domain"
	"github.com/allisson/soulbound/internal/session/service"
	templateDomain "github.com/allisson/soulbound/internal/template/domain"
)

// errNoTransaction guards IncrementMintCount against use outside a mint transaction.
var errNoTransaction = errors.New("session mint count must be incremented within a transaction")

// sessionUseCase implements SessionUseCase.
type sessionUseCase struct {
	config      Config
	txManager   database.TxManager
	sessionRepo SessionRepository
	sequence    database.Sequence
	idGenerator service.IDGenerator
	authorizer  Authorizer
	templates   TemplateReader
	recorder    EventRecorder
	now         func() time.Time
}

// NewSessionUseCase creates a new SessionUseCase.
func NewSessionUseCase(
	config Config,
	txManager database.TxManager,
	sessionRepo SessionRepository,
	sequence database.Sequence,
	idGenerator service.IDGenerator,
	authorizer Authorizer,
	templates TemplateReader,
	recorder EventRecorder,
) SessionUseCase {
	return &sessionUseCase{
		config:      config,
		txManager:   txManager,
		sessionRepo: sessionRepo,
		sequence:    sequence,
		idGenerator: idGenerator,
		authorizer:  authorizer,
		templates:   templates,
		recorder:    recorder,
		now:         time.Now,
	}
}

// Create opens a session over an active template owned by caller.
func (s *sessionUseCase) Create(
	ctx context.Context,
	caller string,
	input CreateInput,
) (*sessionDomain.Session, error) {
	caller = identity.Normalize(caller)
	if err := s.requireIssuer(ctx, caller); err != nil {
		return nil, err
	}
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	var session *sessionDomain.Session
	err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		template, err := s.templates.Get(txCtx, input.TemplateID)
		if err != nil {
			return err
		}
		if !template.IsOwnedBy(caller) {
			return templateDomain.ErrNotTemplateOwner
		}
		if !template.Active {
			return templateDomain.ErrTemplateInactive
		}

		nonce, err := s.sequence.Next(txCtx, database.SequenceSessionNonce)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		id, err := s.idGenerator.Generate(service.IDParams{
			Issuer:          caller,
			TemplateID:      template.ID,
			MaxMints:        input.MaxMints,
			DurationSeconds: int64(input.Duration / time.Second),
			Nonce:           nonce,
			Timestamp:       now,
		})
		if err != nil {
			return err
		}

		_, err = s.sessionRepo.Get(txCtx, id)
		switch {
		case err == nil:
			return sessionDomain.ErrSessionIDCollision
		case !errors.Is(err, sessionDomain.ErrSessionNotFound):
			return err
		}

		session = &sessionDomain.Session{
			ID:         id,
			TemplateID: template.ID,
			Issuer:     caller,
			MaxMints:   input.MaxMints,
			ExpiresAt:  now.Add(input.Duration),
			Active:     true,
			Title:      strings.TrimSpace(input.Title),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.sessionRepo.Create(txCtx, session); err != nil {
			return err
		}

		return s.recorder.Record(txCtx, eventsDomain.SessionCreated, eventsDomain.SessionCreatedPayload{
			SessionID:  session.ID,
			TemplateID: session.TemplateID,
			Issuer:     session.Issuer,
			MaxMints:   session.MaxMints,
			ExpiresAt:  session.ExpiresAt,
			Title:      session.Title,
		})
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// End deactivates a session. Ending an ended session fails.
func (s *sessionUseCase) End(ctx context.Context, caller string, id string) (*sessionDomain.Session, error) {
	caller = identity.Normalize(caller)
	id = sessionDomain.NormalizeID(id)
	if err := s.requireIssuer(ctx, caller); err != nil {
		return nil, err
	}

	var session *sessionDomain.Session
	err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		session, err = s.sessionRepo.GetForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if session.Issuer != caller {
			return sessionDomain.ErrNotSessionOwner
		}
		if !session.Active {
			return sessionDomain.ErrSessionEnded
		}

		session.Active = false
		session.UpdatedAt = s.now().UTC()
		if err := s.sessionRepo.Update(txCtx, session); err != nil {
			return err
		}

		return s.recorder.Record(txCtx, eventsDomain.SessionEnded, eventsDomain.SessionEndedPayload{
			SessionID: session.ID,
			Issuer:    session.Issuer,
		})
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Lock reads the session under a row lock.
func (s *sessionUseCase) Lock(ctx context.Context, id string) (*sessionDomain.Session, error) {
	return s.sessionRepo.GetForUpdate(ctx, sessionDomain.NormalizeID(id))
}

// IncrementMintCount advances the counter by one and records SessionMintIncremented.
func (s *sessionUseCase) IncrementMintCount(ctx context.Context, id string) (*sessionDomain.Session, error) {
	if !database.InTx(ctx) {
		return nil, errNoTransaction
	}

	session, err := s.sessionRepo.GetForUpdate(ctx, sessionDomain.NormalizeID(id))
	if err != nil {
		return nil, err
	}

	session.CurrentMints++
	session.UpdatedAt = s.now().UTC()
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to increment session mint count: %w", err)
	}

	err = s.recorder.Record(ctx, eventsDomain.SessionMintIncremented, eventsDomain.SessionMintIncrementedPayload{
		SessionID:    session.ID,
		CurrentMints: session.CurrentMints,
		MaxMints:     session.MaxMints,
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Get returns a session by id.
func (s *sessionUseCase) Get(ctx context.Context, id string) (*sessionDomain.Session, error) {
	return s.sessionRepo.Get(ctx, sessionDomain.NormalizeID(id))
}

// IsClaimable reports whether the session is active, unexpired and below its maximum.
func (s *sessionUseCase) IsClaimable(ctx context.Context, id string) (bool, error) {
	session, err := s.sessionRepo.Get(ctx, sessionDomain.NormalizeID(id))
	if err != nil {
		if errors.Is(err, sessionDomain.ErrSessionNotFound) {
			return false, nil
		}
		return false, err
	}
	return session.IsClaimable(s.now()), nil
}

// Stats returns capacity and remaining time of a session.
func (s *sessionUseCase) Stats(ctx context.Context, id string) (*sessionDomain.Stats, error) {
	session, err := s.sessionRepo.Get(ctx, sessionDomain.NormalizeID(id))
	if err != nil {
		return nil, err
	}
	return session.Stats(s.now()), nil
}

// ListByTemplate returns the sessions opened over a template, oldest first.
func (s *sessionUseCase) ListByTemplate(
	ctx context.Context,
	templateID int64,
	offset, limit int,
) ([]*sessionDomain.Session, error) {
	return s.sessionRepo.ListByTemplate(ctx, templateID, offset, limit)
}

func (s *sessionUseCase) requireIssuer(ctx context.Context, caller string) error {
	if err := s.authorizer.EnsureNotPaused(ctx); err != nil {
		return err
	}
	authorized, err := s.authorizer.IsAuthorizedIssuer(ctx, caller)
	if err != nil {
		return err
	}
	if !authorized {
		return registryDomain.ErrNotAuthorizedIssuer
	}
	return nil
}

func (s *sessionUseCase) validateInput(input CreateInput) error {
	if input.MaxMints <= 0 {
		return sessionDomain.ErrInvalidMaxMints
	}
	if input.Duration <= 0 {
		return sessionDomain.ErrInvalidDuration
	}
	if s.config.MaxDuration > 0 && input.Duration > s.config.MaxDuration {
		return sessionDomain.ErrDurationTooLong
	}
	return nil
}
