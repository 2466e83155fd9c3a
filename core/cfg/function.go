package cfg

import (
	"github.com/cockroachdb/errors"
)

// Function is the body a set of basic blocks belongs to. It gives blocks
// their source context and offers profile views to an optimizer.
type Function struct {
	name       string
	sourceName string
	blocks     []*BasicBlock
	byID       map[int]*BasicBlock
}

// NewFunction groups blocks into a function. The first block is the entry.
// Block ids must be non-negative and unique, every successor id must name
// one of the blocks, and no block may already belong to another function.
func NewFunction(name, sourceName string, blocks []*BasicBlock) (*Function, error) {
	if len(blocks) == 0 {
		return nil, errors.Wrapf(ErrNoBlocks, "function %s", name)
	}
	fn := &Function{
		name:       name,
		sourceName: sourceName,
		blocks:     append([]*BasicBlock(nil), blocks...),
		byID:       make(map[int]*BasicBlock, len(blocks)),
	}
	for _, b := range fn.blocks {
		if b.id < 0 {
			return nil, errors.Newf("function %s: negative basic block id %d", name, b.id)
		}
		if _, dup := fn.byID[b.id]; dup {
			return nil, errors.Wrapf(ErrDuplicateBlock, "function %s: block %d", name, b.id)
		}
		if b.fn != nil {
			return nil, errors.Wrapf(ErrBlockAttached, "function %s: block %d (owner %s)", name, b.id, b.fn.name)
		}
		fn.byID[b.id] = b
	}
	for _, b := range fn.blocks {
		for _, s := range b.successors {
			if _, ok := fn.byID[s]; !ok {
				return nil, errors.Wrapf(ErrUnknownSuccessor, "function %s: block %d -> %d", name, b.id, s)
			}
		}
	}
	for _, b := range fn.blocks {
		b.fn = fn
	}
	cfgDebugInfo("Function assembled", "name", name, "source", sourceName, "blocks", len(blocks))
	return fn, nil
}

func (f *Function) Name() string       { return f.name }
func (f *Function) SourceName() string { return f.sourceName }

// Entry returns the first block.
func (f *Function) Entry() *BasicBlock { return f.blocks[0] }

// Block looks a block up by id.
func (f *Function) Block(id int) (*BasicBlock, bool) {
	b, ok := f.byID[id]
	return b, ok
}

// Blocks returns the blocks in declaration order.
func (f *Function) Blocks() []*BasicBlock {
	return append([]*BasicBlock(nil), f.blocks...)
}

// SetFirstTakeHandler installs h on every block of the function. Like
// BasicBlock.SetFirstTakeHandler it must be called before execution starts.
func (f *Function) SetFirstTakeHandler(h FirstTakeHandler) {
	for _, b := range f.blocks {
		b.SetFirstTakeHandler(h)
	}
}

// FunctionProfile is a snapshot of every block profile of a function.
type FunctionProfile struct {
	Name   string
	Blocks []BlockProfile
}

// Profile snapshots all block profiles in declaration order.
func (f *Function) Profile() FunctionProfile {
	fp := FunctionProfile{Name: f.name, Blocks: make([]BlockProfile, len(f.blocks))}
	for i, b := range f.blocks {
		fp.Blocks[i] = b.ProfileSnapshot()
	}
	return fp
}
