package jobs

import (
	"context"
	"time"

	"artevents-backend/internal/domain"
	"artevents-backend/internal/logger"
	"artevents-backend/internal/repository"
)

// ExpirePendingInvites marks pending invites past the configured TTL as
// EXPIRED and removes their INVITED membership stubs. Each invite is its own
// transaction so one bad row cannot wedge the whole sweep.
func (jr *JobRunner) ExpirePendingInvites() {
	jr.runWithRecovery("ExpirePendingInvites", func() {
		ctx := context.Background()
		ttl := time.Duration(jr.config.Sweeper.InviteTTLDays) * 24 * time.Hour
		cutoff := time.Now().Add(-ttl)

		stale, err := jr.store.Invites().ListPendingBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list stale invites", "error", err)
			return
		}

		expired := 0
		for _, inv := range stale {
			err := jr.store.WithTx(ctx, func(tx repository.Store) error {
				if err := tx.Invites().UpdateStatus(ctx, inv.ID, domain.InviteStatusExpired); err != nil {
					return err
				}
				return tx.Memberships().RemoveInvited(ctx, inv.EventID, inv.InviteeID)
			})
			if err != nil {
				// Someone may have responded between the list and this
				// transaction; the status guard then reports not-pending.
				logger.Warn("Skipping invite during expiry sweep", "invite_id", inv.ID, "error", err)
				continue
			}
			expired++
		}

		logger.Info("Invite expiry sweep finished", "candidates", len(stale), "expired", expired)
	})
}
