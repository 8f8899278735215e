package fantasy

import (
	"time"

	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
)

// TransferRequest carries everything a transfer is checked against. The quota
// and budget are supplied by the caller; the engine keeps no calendar.
type TransferRequest struct {
	PlayerOutID         string
	PlayerIn            player.Player
	PeriodID            string
	PeriodTransfersUsed int
	TransferLimit       int
	BudgetCap           int64
	At                  time.Time
}

// Transfer replaces a squad member with a catalog player of the same position.
// Rules are checked in order and the first failure is returned. The incoming
// member inherits the outgoing member's lineup side, role and specialist flags,
// so the lineup needs no re-validation.
func Transfer(squad Squad, req TransferRequest) (Squad, error) {
	idx := squad.indexOf(req.PlayerOutID)
	if idx < 0 {
		return Squad{}, reject(KindPlayerNotInSquad,
			map[string]any{"player_id": req.PlayerOutID},
			"player %s is not part of the squad", req.PlayerOutID,
		)
	}
	outgoing := squad.Members[idx]
	incoming := req.PlayerIn

	if incoming.ID == "" || incoming.Price <= 0 {
		return Squad{}, reject(KindInvalidPlayer,
			map[string]any{"player_id": incoming.ID, "price": incoming.Price},
			"incoming player needs an id and a positive price",
		)
	}

	if incoming.Position != outgoing.Position() {
		return Squad{}, reject(KindPositionMismatch,
			map[string]any{
				"player_out_id": outgoing.ID(),
				"player_in_id":  incoming.ID,
				"expected":      string(outgoing.Position()),
				"current":       string(incoming.Position),
			},
			"%s must be replaced by a %s, got %s", outgoing.ID(), outgoing.Position(), incoming.Position,
		)
	}

	if req.PeriodTransfersUsed >= req.TransferLimit {
		return Squad{}, reject(KindTransferLimitReached,
			map[string]any{"period_id": req.PeriodID, "used": req.PeriodTransfersUsed, "limit": req.TransferLimit},
			"%d of %d transfers already used this period", req.PeriodTransfersUsed, req.TransferLimit,
		)
	}

	if squad.indexOf(incoming.ID) >= 0 {
		return Squad{}, reject(KindDuplicatePlayer,
			map[string]any{"player_id": incoming.ID},
			"player %s is already in the squad", incoming.ID,
		)
	}

	spend := squad.TotalSpend() - outgoing.Player.Price + incoming.Price
	if spend > req.BudgetCap {
		return Squad{}, reject(KindBudgetExceeded,
			map[string]any{"total": spend, "budget_cap": req.BudgetCap, "shortfall": spend - req.BudgetCap},
			"transfer would cost %d against a cap of %d (short by %d)", spend, req.BudgetCap, spend-req.BudgetCap,
		)
	}

	replacement := outgoing
	replacement.Player = incoming

	out := squad.Clone()
	out.Members[idx] = replacement
	out.Transfers = append(out.Transfers, TransferRecord{
		PlayerOutID: outgoing.ID(),
		PlayerInID:  incoming.ID,
		PeriodID:    req.PeriodID,
		CreatedAt:   req.At,
	})
	return out, nil
}
