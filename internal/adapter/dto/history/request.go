package history

// ListHistoryRequest represents query parameters for listing ledger entries
type ListHistoryRequest struct {
	Kind  *string `query:"kind" validate:"omitempty,oneof=identification merge"`
	Limit int     `query:"limit" validate:"gte=0,lte=1000"`
}

// ExportRequest represents query parameters for exporting the ledger
type ExportRequest struct {
	Format string `query:"format" validate:"omitempty,oneof=csv json"`
}

// EntryIDRequest binds the entry id path parameter
type EntryIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}
