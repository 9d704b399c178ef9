package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/corestudios/rolebridge/app/models"
)

// Outcome tags how a notification was handled when no error occurred.
type Outcome int

const (
	// OutcomeIgnored: the status was not approved, nothing was touched.
	OutcomeIgnored Outcome = iota
	// OutcomeGranted: the role was added and the audit log was posted.
	OutcomeGranted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeGranted:
		return "granted"
	default:
		return "unknown"
	}
}

// Platform is the chat-platform surface the grant flow needs.
type Platform interface {
	// EnsureMember resolves the guild and then the member within it.
	EnsureMember(ctx context.Context, guildID, userID string) error
	AddMemberRole(ctx context.Context, guildID, userID, roleID string) error
	// SendPaymentLog resolves the channel and posts the audit entry to it.
	SendPaymentLog(ctx context.Context, channelID string, entry models.PaymentLog) error
}

// Result describes a handled notification.
type Result struct {
	Outcome   Outcome
	Reference models.PaymentReference
	RoleID    string
}

// Service turns approved payments into role grants.
type Service struct {
	platform     Platform
	roles        PlanRoles
	guildID      string
	logChannelID string
	now          func() time.Time
}

// NewService creates a billing service bound to one guild and log channel.
func NewService(platform Platform, roles PlanRoles, guildID, logChannelID string) *Service {
	return &Service{
		platform:     platform,
		roles:        roles,
		guildID:      guildID,
		logChannelID: logChannelID,
		now:          time.Now,
	}
}

// HandleNotification grants the plan's role for an approved payment and posts
// the audit log. Non-approved notifications are ignored without error.
func (s *Service) HandleNotification(ctx context.Context, n models.PaymentNotification) (Result, error) {
	if !n.IsApproved() {
		return Result{Outcome: OutcomeIgnored}, nil
	}

	ref, err := ParseReference(n.ExternalReference)
	if err != nil {
		return Result{}, err
	}
	res := Result{Reference: ref}

	roleID, ok := s.roles.RoleFor(ref.Plan)
	if !ok {
		return res, fmt.Errorf("%w: %q", ErrUnknownPlan, ref.Plan)
	}
	res.RoleID = roleID

	if err := s.platform.EnsureMember(ctx, s.guildID, ref.UserID); err != nil {
		return res, err
	}
	if err := s.platform.AddMemberRole(ctx, s.guildID, ref.UserID, roleID); err != nil {
		return res, fmt.Errorf("add role %s to %s: %w", roleID, ref.UserID, err)
	}

	entry := models.PaymentLog{
		UserID:     ref.UserID,
		Plan:       ref.Plan,
		PayerEmail: n.PayerEmail,
		PaidAt:     s.now(),
	}
	if err := s.platform.SendPaymentLog(ctx, s.logChannelID, entry); err != nil {
		return res, err
	}

	res.Outcome = OutcomeGranted
	return res, nil
}
