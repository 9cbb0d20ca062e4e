package models

// Column is one of the board's fixed columns. The identity set is fixed per
// board kind; only title, color and the lock flag ever change.
type Column struct {
	ID       string
	Title    string
	Color    string
	IsLocked bool
}

// DefaultColumns returns the kind's default column set: the first column
// unlocked, every other column locked.
func DefaultColumns(kind BoardKind) []*Column {
	switch kind {
	case KindPlanning:
		return []*Column{
			{ID: ColumnIdeas, Title: "Ideas", Color: ColorIdeas},
			{ID: ColumnSelected, Title: "Selected", Color: ColorSelected, IsLocked: true},
			{ID: ColumnDone, Title: "Done", Color: ColorDone, IsLocked: true},
		}
	default:
		return []*Column{
			{ID: ColumnStart, Title: "Start", Color: ColorStart},
			{ID: ColumnStop, Title: "Stop", Color: ColorStop, IsLocked: true},
			{ID: ColumnContinue, Title: "Continue", Color: ColorContinue, IsLocked: true},
		}
	}
}
