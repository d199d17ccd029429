package api

// DeleteMethod selects how much of a record a delete removes. Several
// resources (time series identifiers, standard text, location levels)
// accept one of these on their delete operations.
type DeleteMethod string

const (
	DeleteAll  DeleteMethod = "DELETE_ALL"  // record and data
	DeleteKey  DeleteMethod = "DELETE_KEY"  // record only, data kept
	DeleteData DeleteMethod = "DELETE_DATA" // data only, record kept
)

// DeleteMethods lists the accepted values, for validation messages.
var DeleteMethods = []any{DeleteAll, DeleteKey, DeleteData}
