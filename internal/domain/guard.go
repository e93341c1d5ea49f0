package domain

import (
	"fmt"

	"go-jobboard-backend/pkg/apperror"
)

// RequireRole fails with Forbidden unless the actor has the given account type.
func RequireRole(actor Actor, role AccountType) error {
	if actor.AccountType != role {
		return apperror.Forbidden(fmt.Sprintf("This action is restricted to %s accounts", role))
	}
	return nil
}

// RequireOwnership fails with Forbidden unless actorID owns the resource.
func RequireOwnership(ownerID, actorID, resource string) error {
	if ownerID == "" || ownerID != actorID {
		return apperror.Forbidden(fmt.Sprintf("You are not the owner of this %s", resource))
	}
	return nil
}
