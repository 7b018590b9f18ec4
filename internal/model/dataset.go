package model

// Dataset holds the four generated collections.
type Dataset struct {
	Blocks       []Block
	Transactions []Transaction
	Transfers    []Transfer
	Pools        []Pool
}

// Records returns the total number of records across all collections.
func (d Dataset) Records() int {
	return len(d.Blocks) + len(d.Transactions) + len(d.Transfers) + len(d.Pools)
}
