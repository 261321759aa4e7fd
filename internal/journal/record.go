package journal

// RawRecord is one entry as a storage backend returns it. The set of
// variants is closed: AdminRecord, ClientRecord and SupabaseRow.
type RawRecord interface {
	rawRecord()
}

// AdminRecord is a document read through the Firestore server SDK. Its
// Timestamp is whatever the SDK yields for a server timestamp, a time.Time.
type AdminRecord struct {
	ID               string
	UserID           string
	EntryText        string
	Timestamp        any
	SentimentSummary *string
}

// ClientRecord is a Firestore client-style document. Its Timestamp may be a
// timestamp object, a seconds/nanoseconds pair, an ISO string or an epoch number.
type ClientRecord struct {
	ID               string
	UserID           string
	EntryText        string
	Timestamp        any
	SentimentSummary *string
}

// SupabaseRow is a journal_entries table row.
type SupabaseRow struct {
	ID               string
	UserID           string
	Title            string
	Content          string
	SentimentScore   *float64
	SentimentSummary *string
	CreatedAt        string
	UpdatedAt        string
}

func (AdminRecord) rawRecord()  {}
func (ClientRecord) rawRecord() {}
func (SupabaseRow) rawRecord()  {}

// Seconds is a seconds/nanoseconds timestamp pair as serialized by
// Firestore SDKs.
type Seconds struct {
	Seconds     int64 `json:"seconds"`
	Nanoseconds int64 `json:"nanoseconds"`
}

// Owner returns the owning user id of a raw record.
func Owner(r RawRecord) string {
	switch rec := r.(type) {
	case AdminRecord:
		return rec.UserID
	case ClientRecord:
		return rec.UserID
	case SupabaseRow:
		return rec.UserID
	default:
		return ""
	}
}
