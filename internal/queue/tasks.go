package queue

const TypeHistoryExport = "history:export"

// HistoryExportPayload asks the worker to render the export blob for the
// given records and park it under an export key for later download. Empty
// RecordIDs means the whole ledger.
type HistoryExportPayload struct {
	ExportID  string   `json:"export_id"`
	RecordIDs []string `json:"record_ids,omitempty"`
}
