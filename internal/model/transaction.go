package model

// Transaction is a synthetic value movement attributed to a block.
type Transaction struct {
	Block     uint64 `json:"block"`
	Index     uint64 `json:"index"`
	Timestamp string `json:"timestamp"`
	Hash      string `json:"hash"`
	From      string `json:"from"`
	To        string `json:"to"`
	Value     string `json:"value"`
}
