package cfg

import "fmt"

// SourceSection locates a basic block for diagnostics.
type SourceSection struct {
	Identifier string
	SourceName string
}

func newSourceSection(blockID int, fn *Function) *SourceSection {
	var identifier string
	if blockID == 0 {
		identifier = fmt.Sprintf("first basic block in function %s", fn.name)
	} else {
		identifier = fmt.Sprintf("basic block %d in function %s", blockID, fn.name)
	}
	return &SourceSection{Identifier: identifier, SourceName: fn.sourceName}
}

func (s *SourceSection) String() string {
	return fmt.Sprintf("%s in %s", s.Identifier, s.SourceName)
}
