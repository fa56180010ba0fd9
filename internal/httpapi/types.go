package httpapi

// SearchStatus is the panel-visible state of the search lifecycle. A
// cancelled search is not a failure: Progress carries the neutral message
// and LastError stays empty.
type SearchStatus struct {
	// run is the owning aggregation's generation number; goroutines from
	// earlier runs must not write status once it moves on.
	run uint64

	Running   bool   `json:"running"`
	UF        string `json:"uf"`
	Mode      string `json:"mode"`
	Progress  string `json:"progress"`
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	Matched   int    `json:"matched"`
}
