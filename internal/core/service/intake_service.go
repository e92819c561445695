package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stroyservice/intake-system/internal/core/domain"
	"github.com/stroyservice/intake-system/internal/core/ports"
)

type intakeService struct {
	repo     ports.OrderRepository
	notifier ports.Notifier
	guard    ports.SubmissionGuard // nil when Redis is not configured
	log      zerolog.Logger
}

// NewIntakeService returns an IntakeService implementation. guard may be nil,
// in which case every submission is treated as fresh.
func NewIntakeService(
	repo ports.OrderRepository,
	notifier ports.Notifier,
	guard ports.SubmissionGuard,
	log zerolog.Logger,
) ports.IntakeService {
	return &intakeService{
		repo:     repo,
		notifier: notifier,
		guard:    guard,
		log:      log,
	}
}

// CreateOrder persists a web submission as a new order and fans the
// notification out. The returned result is final once the order is persisted;
// notification delivery is asynchronous and best-effort.
func (s *intakeService) CreateOrder(ctx context.Context, in ports.CreateOrderInput) (*ports.CreateOrderResult, error) {
	// 1. Duplicate-submission guard — acknowledge repeats without side effects.
	digest := ""
	if s.guard != nil {
		digest = submissionDigest(in)
		isDup, err := s.guard.IsDuplicate(ctx, in.Telephone, digest)
		if err != nil {
			s.log.Warn().Err(err).Msg("submission guard check failed, processing anyway")
		} else if isDup {
			s.log.Info().Str("telephone", in.Telephone).Msg("duplicate submission swallowed")
			return &ports.CreateOrderResult{Duplicate: true}, nil
		}
	}

	// 2. Build the order with placeholders for blank fields.
	order := domain.Order{
		ID:        newOrderID(),
		Name:      orDefault(in.Name, domain.PlaceholderMissing),
		Telephone: orDefault(in.Telephone, domain.PlaceholderMissing),
		Email:     orDefault(in.Email, domain.PlaceholderMissing),
		Subject:   orDefault(in.Subject, domain.PlaceholderSubject),
		Message:   orDefault(in.Message, domain.PlaceholderMessage),
		CreatedAt: time.Now().Format(domain.CreatedAtLayout),
		Status:    domain.StatusNew,
	}

	// 3. Persist before reporting success.
	if err := s.repo.Append(ctx, order); err != nil {
		s.log.Error().Err(err).Msg("failed to persist order")
		return nil, err
	}

	// Mark the submission only once the order exists. Marking earlier would
	// make a client's retry of a failed persist look like a duplicate and be
	// swallowed without ever creating the order.
	if s.guard != nil {
		if markErr := s.guard.Mark(ctx, in.Telephone, digest); markErr != nil {
			s.log.Warn().Err(markErr).Msg("failed to mark submission")
		}
	}

	s.log.Info().Str("order_id", order.ID).Str("telephone", order.Telephone).Msg("order created")

	// 4. Fan out. Delivery failures never affect the intake result.
	s.notifier.NotifyNewOrder(ctx, order)

	return &ports.CreateOrderResult{Order: order}, nil
}

// newOrderID returns a 12-hex-char token derived from a v4 UUID.
func newOrderID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func orDefault(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

// submissionDigest fingerprints the free-text part of a submission for the
// duplicate guard.
func submissionDigest(in ports.CreateOrderInput) string {
	h := sha256.Sum256([]byte(in.Name + "\x00" + in.Subject + "\x00" + in.Message))
	return hex.EncodeToString(h[:8])
}
