package dataset

import "fmt"

// Load errors. ErrNotFound and ErrEmptyDataset degrade to an empty dataset
// inside Loader.Load; ErrMalformedDataset is returned to the caller.
var (
	ErrNotFound         = fmt.Errorf("dataset not found")
	ErrEmptyDataset     = fmt.Errorf("dataset is empty")
	ErrMalformedDataset = fmt.Errorf("malformed dataset")
)

// User-facing notices attached to degraded datasets.
const (
	NoticeNotFound = "The dataset could not be found. Please check the file path."
	NoticeEmpty    = "The dataset is empty. Please provide a valid CSV file."
)
