package billing

import (
	"fmt"
	"strings"

	"github.com/corestudios/rolebridge/app/models"
)

// ParseReference splits an external reference on its first ':' into the
// Discord user id and the plan name.
func ParseReference(ref string) (models.PaymentReference, error) {
	userID, plan, ok := strings.Cut(ref, ":")
	if !ok {
		return models.PaymentReference{}, fmt.Errorf("%w: missing ':' in %q", ErrMalformedReference, ref)
	}
	if strings.TrimSpace(userID) == "" {
		return models.PaymentReference{}, fmt.Errorf("%w: empty user id in %q", ErrMalformedReference, ref)
	}
	return models.PaymentReference{UserID: userID, Plan: plan}, nil
}
