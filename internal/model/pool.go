package model

// Pool is a synthetic liquidity pool deployment attributed to a block.
type Pool struct {
	Deployer   string `json:"deployer"`
	Address    string `json:"address"`
	QuoteToken string `json:"quote_token"`
	Token      string `json:"token"`
	InitBlock  uint64 `json:"init_block"`
	CreatedAt  int64  `json:"created_at"`
}
