package generator

import (
	"fmt"

	"chainDatagen/internal/model"
)

// GenerateTransactions emits TransactionsPerBlock transactions for every block.
func (g *Generator) GenerateTransactions(blocks []model.Block) []model.Transaction {
	transactions := make([]model.Transaction, 0, len(blocks)*g.cfg.TransactionsPerBlock)
	for _, block := range blocks {
		for i := 0; i < g.cfg.TransactionsPerBlock; i++ {
			transactions = append(transactions, model.Transaction{
				Block:     block.BlockNumber,
				Index:     uint64(len(transactions) % txIndexBound),
				Timestamp: block.BlockTimestamp,
				Hash:      g.ids.Hash(),
				From:      g.ids.Address(),
				To:        g.ids.Address(),
				Value:     g.ids.Amount(),
			})
		}
	}
	return transactions
}

// GenerateTransfers emits TransfersPerBlock transfers for every block.
func (g *Generator) GenerateTransfers(blocks []model.Block) []model.Transfer {
	transfers := make([]model.Transfer, 0, len(blocks)*g.cfg.TransfersPerBlock)
	for _, block := range blocks {
		for i := 0; i < g.cfg.TransfersPerBlock; i++ {
			transfers = append(transfers, model.Transfer{
				TxHash:      g.ids.Hash(),
				BlockNumber: block.BlockNumber,
				Token:       g.ids.Address(),
				From:        g.ids.Address(),
				To:          g.ids.Address(),
				Amount:      g.ids.Amount(),
			})
		}
	}
	return transfers
}

// GeneratePools emits PoolsPerBlock pools for every block. The pool creation
// time is read back from the block timestamp, so a malformed block aborts.
func (g *Generator) GeneratePools(blocks []model.Block) ([]model.Pool, error) {
	pools := make([]model.Pool, 0, len(blocks)*g.cfg.PoolsPerBlock)
	for _, block := range blocks {
		if g.cfg.PoolsPerBlock == 0 {
			break
		}
		ts, err := block.Time()
		if err != nil {
			return nil, fmt.Errorf("parse block %d timestamp: %w", block.BlockNumber, err)
		}
		for i := 0; i < g.cfg.PoolsPerBlock; i++ {
			pools = append(pools, model.Pool{
				Deployer:   g.ids.Address(),
				Address:    g.ids.Address(),
				QuoteToken: g.ids.Address(),
				Token:      g.ids.Address(),
				InitBlock:  block.BlockNumber,
				CreatedAt:  ts.Unix(),
			})
		}
	}
	return pools, nil
}
