package generator

import (
	"time"

	"chainDatagen/internal/model"
)

// GenerateBlocks returns cfg.Blocks blocks ordered by block number.
func (g *Generator) GenerateBlocks() []model.Block {
	blocks := make([]model.Block, 0, g.cfg.Blocks)
	for i := uint64(0); i < g.cfg.Blocks; i++ {
		ts := model.FormatTimestamp(g.BlockTime(i))
		blocks = append(blocks, model.Block{
			BlockNumber:    i,
			BlockHash:      g.ids.Hash(),
			ParentHash:     g.ids.Hash(),
			BlockTimestamp: ts,
			CreatedAt:      ts,
			UpdatedAt:      ts,
		})
	}
	return blocks
}

// BlockTime returns start time + number × interval.
func (g *Generator) BlockTime(number uint64) time.Time {
	offset := time.Duration(number) * g.cfg.BlockInterval
	return g.cfg.StartTime.UTC().Add(offset)
}
