// Package audit renders the hash-chain view of the ledger. The hashes are
// deliberately lightweight fingerprints for display and export; they are
// not a cryptographic integrity mechanism.
package audit

import (
	"fmt"
	"hash/fnv"

	"smartleave/internal/domain/leave"
)

type Block struct {
	RequestID int          `json:"requestId"`
	EmpID     int          `json:"empId"`
	Status    leave.Status `json:"status"`
	Hash      string       `json:"hash"`
}

// HashRequest fingerprints the fields that define a request's observable
// state. Any status transition changes the hash.
func HashRequest(req leave.Request) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d:%d:%s:%s:%s:%s",
		req.ID,
		req.EmpID,
		req.Start.Format("2006-01-02"),
		req.End.Format("2006-01-02"),
		req.Type,
		req.Status,
	)
	return fmt.Sprintf("%x", h.Sum64())
}

// Chain returns one block per request, in ledger order.
func Chain(requests []leave.Request) []Block {
	out := make([]Block, 0, len(requests))
	for _, req := range requests {
		out = append(out, Block{
			RequestID: req.ID,
			EmpID:     req.EmpID,
			Status:    req.Status,
			Hash:      HashRequest(req),
		})
	}
	return out
}

type Verification struct {
	Blocks []Block `json:"blocks"`
	OK     bool    `json:"ok"`
}

// Verify recomputes every hash against the current snapshot.
func Verify(requests []leave.Request) Verification {
	blocks := Chain(requests)
	ok := true
	for i, req := range requests {
		if blocks[i].Hash != HashRequest(req) {
			ok = false
		}
	}
	return Verification{Blocks: blocks, OK: ok}
}
