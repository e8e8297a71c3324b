package transaction

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Receipt is a confirmed transaction receipt. It is produced only after the
// transaction has been observed on chain.
type Receipt struct {
	TxHash      string
	BlockNumber uint64
	BlockHash   string
	GasUsed     uint64
	Status      uint64
	Logs        []json.RawMessage
}

// Succeeded reports whether the transaction executed without reverting.
func (r *Receipt) Succeeded() bool {
	return r != nil && r.Status == 1
}

// rawReceipt matches the JSON-RPC receipt wire shape. BlockNumber is nil
// while the transaction is pending.
type rawReceipt struct {
	TransactionHash string            `json:"transactionHash"`
	BlockNumber     *hexutil.Uint64   `json:"blockNumber"`
	BlockHash       string            `json:"blockHash"`
	GasUsed         hexutil.Uint64    `json:"gasUsed"`
	Status          hexutil.Uint64    `json:"status"`
	Logs            []json.RawMessage `json:"logs"`
}

func (r *rawReceipt) toReceipt() *Receipt {
	out := &Receipt{
		TxHash:    r.TransactionHash,
		BlockHash: r.BlockHash,
		GasUsed:   uint64(r.GasUsed),
		Status:    uint64(r.Status),
		Logs:      r.Logs,
	}
	if r.BlockNumber != nil {
		out.BlockNumber = uint64(*r.BlockNumber)
	}
	return out
}
