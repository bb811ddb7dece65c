package ledger

import "errors"

var (
	ErrBrokenChain    = errors.New("transaction chain does not fold from the starting balance")
	ErrOutOfOrder     = errors.New("transactions are not ordered by creation time")
	ErrMixedMembers   = errors.New("transactions belong to more than one member")
)

// Replay folds a member's transactions in createdAt order from a starting
// balance of zero and returns the reconstructed balance. Every row must
// chain exactly: balanceBefore of each transaction equals the running
// balance, and balanceAfter equals balanceBefore plus amount.
func Replay(txs []*Transaction) (int64, error) {
	var balance int64

	for i, tx := range txs {
		if i > 0 {
			if tx.MemberID() != txs[0].MemberID() {
				return 0, ErrMixedMembers
			}
			if tx.CreatedAt().Before(txs[i-1].CreatedAt()) {
				return 0, ErrOutOfOrder
			}
		}
		if tx.BalanceBefore() != balance {
			return 0, ErrBrokenChain
		}
		if tx.BalanceAfter() != tx.BalanceBefore()+tx.Amount() {
			return 0, ErrBalanceMismatch
		}
		balance = tx.BalanceAfter()
	}

	return balance, nil
}
