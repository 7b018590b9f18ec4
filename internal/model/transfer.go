package model

// Transfer is a synthetic token movement attributed to a block.
// TxHash is random and does not point at any generated Transaction.
type Transfer struct {
	TxHash      string `json:"tx_hash"`
	BlockNumber uint64 `json:"block_number"`
	Token       string `json:"token"`
	From        string `json:"from"`
	To          string `json:"to"`
	Amount      string `json:"amount"`
}
